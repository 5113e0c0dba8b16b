package repository

import (
	"context"

	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// CategoryRepository 分类仓储接口
//
// 所有查询都以 shop_no 为租户边界。FindByID 不过滤软删除，
// 由 service 层决定删除态的语义（恢复、删除校验等）。
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, shopNo, categoryNo int64) (*model.Category, error)
	FindByCode(ctx context.Context, shopNo int64, code string) (*model.Category, error)

	// 层级查询
	FindRoots(ctx context.Context, shopNo int64, useDisplay *bool) ([]*model.Category, error)
	FindChildren(ctx context.Context, shopNo, parentNo int64, useDisplay *bool) ([]*model.Category, error)
	FindDescendants(ctx context.Context, shopNo, categoryNo int64, includeSelf bool, useDisplay *bool) ([]*model.Category, error)
	FindAncestors(ctx context.Context, shopNo, categoryNo int64, includeSelf bool) ([]*model.Category, error)
	FindAll(ctx context.Context, shopNo int64, filter CategoryFilter) ([]*model.Category, error)
	FindByDepth(ctx context.Context, shopNo int64, depth int, useDisplay *bool) ([]*model.Category, error)

	// 更新
	UpdateFields(ctx context.Context, shopNo, categoryNo int64, fields map[string]interface{}) error
	UpdatePath(ctx context.Context, shopNo, categoryNo int64, path string) error
	IncrementProductCount(ctx context.Context, shopNo, categoryNo int64, delta int) error
	ToggleDisplay(ctx context.Context, shopNo, categoryNo int64) error

	// 删除/恢复
	SoftDelete(ctx context.Context, shopNo, categoryNo int64) error
	Restore(ctx context.Context, shopNo, categoryNo int64) error
	HardDelete(ctx context.Context, shopNo, categoryNo int64) error

	// 校验辅助
	CheckCodeDuplicate(ctx context.Context, shopNo int64, code string, excludeCategoryNo int64) (bool, error)
	HasChildren(ctx context.Context, shopNo, categoryNo int64) (bool, error)
	MaxDisplayOrder(ctx context.Context, shopNo int64, parentNo *int64) (int, error)
	CountDescendants(ctx context.Context, shopNo, categoryNo int64) (int64, error)

	// 事务
	WithTx(tx *gorm.DB) CategoryRepository
	Transaction(ctx context.Context, fn func(txRepo CategoryRepository) error) error
}

// CategoryFilter 列表过滤条件
type CategoryFilter struct {
	Depth          *int
	UseDisplay     *bool
	Keyword        string
	IncludeDeleted bool
}

// ==================== 仓储实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByID 按 (shop_no, category_no) 查询，含软删除行
func (r *categoryRepo) FindByID(ctx context.Context, shopNo, categoryNo int64) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Unscoped().
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindByCode(ctx context.Context, shopNo int64, code string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("shop_no = ? AND category_code = ?", shopNo, code).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindRoots(ctx context.Context, shopNo int64, useDisplay *bool) ([]*model.Category, error) {
	var categories []*model.Category
	query := r.db.WithContext(ctx).
		Where("shop_no = ? AND parent_category_no IS NULL", shopNo)
	if useDisplay != nil {
		query = query.Where("use_display = ?", *useDisplay)
	}
	err := query.
		Order("display_order ASC, category_no ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindChildren(ctx context.Context, shopNo, parentNo int64, useDisplay *bool) ([]*model.Category, error) {
	var categories []*model.Category
	query := r.db.WithContext(ctx).
		Where("shop_no = ? AND parent_category_no = ?", shopNo, parentNo)
	if useDisplay != nil {
		query = query.Where("use_display = ?", *useDisplay)
	}
	err := query.
		Order("display_order ASC, category_no ASC").
		Find(&categories).Error
	return categories, err
}

// FindDescendants 子孙查询: category_path 前缀匹配
// path 只含数字和 "/"，无需转义 LIKE 通配符
func (r *categoryRepo) FindDescendants(ctx context.Context, shopNo, categoryNo int64, includeSelf bool, useDisplay *bool) ([]*model.Category, error) {
	parent, err := r.FindByID(ctx, shopNo, categoryNo)
	if err != nil {
		return nil, err
	}

	var categories []*model.Category
	query := r.db.WithContext(ctx).
		Where("shop_no = ? AND category_path LIKE ?", shopNo, parent.CategoryPath+"%")
	if !includeSelf {
		query = query.Where("category_no != ?", categoryNo)
	}
	if useDisplay != nil {
		query = query.Where("use_display = ?", *useDisplay)
	}
	err = query.
		Order("category_path ASC").
		Find(&categories).Error
	return categories, err
}

// FindAncestors 祖先查询: 拆解路径后批量 IN，按深度升序 (breadcrumb 顺序)
func (r *categoryRepo) FindAncestors(ctx context.Context, shopNo, categoryNo int64, includeSelf bool) ([]*model.Category, error) {
	category, err := r.FindByID(ctx, shopNo, categoryNo)
	if err != nil {
		return nil, err
	}

	pathIDs := category.PathIDs()
	if !includeSelf && len(pathIDs) > 0 {
		pathIDs = pathIDs[:len(pathIDs)-1]
	}
	if len(pathIDs) == 0 {
		return []*model.Category{}, nil
	}

	var categories []*model.Category
	err = r.db.WithContext(ctx).Unscoped().
		Where("shop_no = ? AND category_no IN ?", shopNo, pathIDs).
		Order("category_depth ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindAll(ctx context.Context, shopNo int64, filter CategoryFilter) ([]*model.Category, error) {
	query := r.db.WithContext(ctx)
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	query = query.Where("shop_no = ?", shopNo)

	if filter.Depth != nil {
		query = query.Where("category_depth = ?", *filter.Depth)
	}
	if filter.UseDisplay != nil {
		query = query.Where("use_display = ?", *filter.UseDisplay)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("(category_name LIKE ? OR full_category_name LIKE ?)", pattern, pattern)
	}

	var categories []*model.Category
	err := query.
		Order("category_path ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByDepth(ctx context.Context, shopNo int64, depth int, useDisplay *bool) ([]*model.Category, error) {
	var categories []*model.Category
	query := r.db.WithContext(ctx).
		Where("shop_no = ? AND category_depth = ?", shopNo, depth)
	if useDisplay != nil {
		query = query.Where("use_display = ?", *useDisplay)
	}
	err := query.
		Order("display_order ASC, category_no ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) UpdateFields(ctx context.Context, shopNo, categoryNo int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Updates(fields).Error
}

func (r *categoryRepo) UpdatePath(ctx context.Context, shopNo, categoryNo int64, path string) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Update("category_path", path).Error
}

func (r *categoryRepo) IncrementProductCount(ctx context.Context, shopNo, categoryNo int64, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Update("product_count", gorm.Expr("product_count + ?", delta)).Error
}

func (r *categoryRepo) ToggleDisplay(ctx context.Context, shopNo, categoryNo int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Update("use_display", gorm.Expr("NOT use_display")).Error
}

func (r *categoryRepo) SoftDelete(ctx context.Context, shopNo, categoryNo int64) error {
	return r.db.WithContext(ctx).
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Delete(&model.Category{}).Error
}

func (r *categoryRepo) Restore(ctx context.Context, shopNo, categoryNo int64) error {
	return r.db.WithContext(ctx).Unscoped().
		Model(&model.Category{}).
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Update("deleted_at", nil).Error
}

func (r *categoryRepo) HardDelete(ctx context.Context, shopNo, categoryNo int64) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("shop_no = ? AND category_no = ?", shopNo, categoryNo).
		Delete(&model.Category{}).Error
}

func (r *categoryRepo) CheckCodeDuplicate(ctx context.Context, shopNo int64, code string, excludeCategoryNo int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().
		Model(&model.Category{}).
		Where("shop_no = ? AND category_code = ?", shopNo, code)
	if excludeCategoryNo > 0 {
		query = query.Where("category_no != ?", excludeCategoryNo)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *categoryRepo) HasChildren(ctx context.Context, shopNo, categoryNo int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&model.Category{}).
		Where("shop_no = ? AND parent_category_no = ?", shopNo, categoryNo).
		Count(&count).Error
	return count > 0, err
}

// MaxDisplayOrder 同级最大 display_order，无兄弟时为 0
func (r *categoryRepo) MaxDisplayOrder(ctx context.Context, shopNo int64, parentNo *int64) (int, error) {
	var maxOrder int
	query := r.db.WithContext(ctx).Unscoped().
		Model(&model.Category{}).
		Select("COALESCE(MAX(display_order), 0)").
		Where("shop_no = ?", shopNo)
	if parentNo == nil {
		query = query.Where("parent_category_no IS NULL")
	} else {
		query = query.Where("parent_category_no = ?", *parentNo)
	}
	err := query.Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *categoryRepo) CountDescendants(ctx context.Context, shopNo, categoryNo int64) (int64, error) {
	parent, err := r.FindByID(ctx, shopNo, categoryNo)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("shop_no = ? AND category_path LIKE ? AND category_no != ?",
			shopNo, parent.CategoryPath+"%", categoryNo).
		Count(&count).Error
	return count, err
}

func (r *categoryRepo) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepo{db: tx}
}

func (r *categoryRepo) Transaction(ctx context.Context, fn func(txRepo CategoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
