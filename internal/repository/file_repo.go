package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// FileRepository 文件仓储接口
type FileRepository interface {
	Create(ctx context.Context, file *model.StoredFile) error
	FindByID(ctx context.Context, id int64) (*model.StoredFile, error)
	ListExpiredTemp(ctx context.Context, before time.Time, limit int) ([]*model.StoredFile, error)

	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	IncrementDownloadCount(ctx context.Context, id int64) error
	MarkPermanent(ctx context.Context, ids []int64) error
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error

	// 帖子附件
	AttachToPost(ctx context.Context, attachments []model.PostAttachment) error
	ListAttachments(ctx context.Context, postID int64) ([]*model.PostAttachment, error)

	// 事务
	WithTx(tx *gorm.DB) FileRepository
	Transaction(ctx context.Context, fn func(txRepo FileRepository) error) error
}

// ==================== 仓储实现 ====================

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepository 创建文件仓储
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, file *model.StoredFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepo) FindByID(ctx context.Context, id int64) (*model.StoredFile, error) {
	var file model.StoredFile
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		First(&file, id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListExpiredTemp 过期且未挂载的临时文件，供清理任务消费
func (r *fileRepo) ListExpiredTemp(ctx context.Context, before time.Time, limit int) ([]*model.StoredFile, error) {
	var files []*model.StoredFile
	err := r.db.WithContext(ctx).
		Where("is_temp = ? AND is_deleted = ? AND expires_at IS NOT NULL AND expires_at < ?",
			true, false, before).
		Limit(limit).
		Find(&files).Error
	return files, err
}

func (r *fileRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.StoredFile{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *fileRepo) IncrementDownloadCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.StoredFile{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

// MarkPermanent 挂载成功后转正，清掉过期时间
func (r *fileRepo) MarkPermanent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.StoredFile{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_temp":    false,
			"expires_at": nil,
		}).Error
}

func (r *fileRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.StoredFile{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *fileRepo) HardDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.StoredFile{}, id).Error
}

func (r *fileRepo) AttachToPost(ctx context.Context, attachments []model.PostAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&attachments).Error
}

func (r *fileRepo) ListAttachments(ctx context.Context, postID int64) ([]*model.PostAttachment, error) {
	var attachments []*model.PostAttachment
	err := r.db.WithContext(ctx).
		Preload("File").
		Where("post_id = ?", postID).
		Order("display_order ASC, id ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *fileRepo) WithTx(tx *gorm.DB) FileRepository {
	return &fileRepo{db: tx}
}

func (r *fileRepo) Transaction(ctx context.Context, fn func(txRepo FileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
