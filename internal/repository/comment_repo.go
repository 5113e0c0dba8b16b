package repository

import (
	"context"

	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// CommentRepository 评论仓储接口
//
// 评论树以 post_id 为边界。软删除行保留在表里（占位内容），
// include_deleted 控制是否出现在列表中。
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindByIDWithAuthor(ctx context.Context, id int64) (*model.Comment, error)

	// 列表查询: path ASC 保证父节点先于子节点出现
	ListByPost(ctx context.Context, postID int64, includeDeleted bool) ([]*model.Comment, error)
	ListByParent(ctx context.Context, parentID int64, includeDeleted bool) ([]*model.Comment, error)
	FindDescendants(ctx context.Context, postID int64, path string, includeSelf bool) ([]*model.Comment, error)
	FindAncestors(ctx context.Context, ids []int64) ([]*model.Comment, error)

	CountByPost(ctx context.Context, postID int64, includeDeleted bool) (int64, error)
	MaxOrderNum(ctx context.Context, postID int64, parentID *int64) (int, error)

	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdatePath(ctx context.Context, id int64, path string) error

	// 删除/恢复
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	HardDeleteTree(ctx context.Context, comment *model.Comment) error

	// 事务
	WithTx(tx *gorm.DB) CommentRepository
	Transaction(ctx context.Context, fn func(txRepo CommentRepository) error) error
}

// ==================== 仓储实现 ====================

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) FindByIDWithAuthor(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int64, includeDeleted bool) ([]*model.Comment, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var comments []*model.Comment
	err := query.
		Order("path ASC, order_num ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) ListByParent(ctx context.Context, parentID int64, includeDeleted bool) ([]*model.Comment, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ?", parentID)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var comments []*model.Comment
	err := query.
		Order("order_num ASC, created_at ASC").
		Find(&comments).Error
	return comments, err
}

// FindDescendants 子孙查询: 自身路径等值 + "path/" 前缀
// 评论路径不带结尾分隔符，直接 LIKE path+"%" 会把 "10" 匹配到 "105"，
// 必须用 "path/" 做前缀
func (r *commentRepo) FindDescendants(ctx context.Context, postID int64, path string, includeSelf bool) ([]*model.Comment, error) {
	query := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if includeSelf {
		query = query.Where("(path = ? OR path LIKE ?)", path, path+"/%")
	} else {
		query = query.Where("path LIKE ?", path+"/%")
	}

	var comments []*model.Comment
	err := query.
		Order("path ASC").
		Find(&comments).Error
	return comments, err
}

// FindAncestors 祖先批量查询，深度升序
func (r *commentRepo) FindAncestors(ctx context.Context, ids []int64) ([]*model.Comment, error) {
	if len(ids) == 0 {
		return []*model.Comment{}, nil
	}

	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("depth ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) CountByPost(ctx context.Context, postID int64, includeDeleted bool) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// MaxOrderNum 同级最大 order_num，无兄弟时为 0
func (r *commentRepo) MaxOrderNum(ctx context.Context, postID int64, parentID *int64) (int, error) {
	var maxOrder int
	query := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select("COALESCE(MAX(order_num), 0)").
		Where("post_id = ?", postID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *commentRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *commentRepo) UpdatePath(ctx context.Context, id int64, path string) error {
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("path", path).Error
}

// SoftDelete 内容替换为占位文案并标记删除，子孙不受影响
func (r *commentRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    model.DeletedCommentContent,
			"is_deleted": true,
		}).Error
}

// Restore 清除删除标记，原内容不可恢复
func (r *commentRepo) Restore(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", false).Error
}

// HardDeleteTree 物理删除评论及全部子孙（路径前缀级联）
func (r *commentRepo) HardDeleteTree(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND (id = ? OR path LIKE ?)",
			comment.PostID, comment.ID, comment.Path+"/%").
		Delete(&model.Comment{}).Error
}

func (r *commentRepo) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepo{db: tx}
}

func (r *commentRepo) Transaction(ctx context.Context, fn func(txRepo CommentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
