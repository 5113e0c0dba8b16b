package repository

import (
	"context"

	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ShopRepository 店铺仓储接口
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	FindByNo(ctx context.Context, shopNo int64) (*model.Shop, error)
	FindByCode(ctx context.Context, shopCode string) (*model.Shop, error)
	ListByOwner(ctx context.Context, ownerUserNo int64) ([]*model.Shop, error)
	List(ctx context.Context, filter ShopFilter) ([]*model.Shop, int64, error)

	UpdateFields(ctx context.Context, shopNo int64, fields map[string]interface{}) error
	ToggleDisplay(ctx context.Context, shopNo int64) error

	SoftDelete(ctx context.Context, shopNo int64) error
	Restore(ctx context.Context, shopNo int64) error

	CheckCodeDuplicate(ctx context.Context, shopCode string, excludeShopNo int64) (bool, error)
}

// ShopFilter 店铺列表过滤条件
type ShopFilter struct {
	Keyword  string
	ShopType string
	Status   string
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type shopRepo struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓储
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// FindByNo 含软删除行，恢复语义由 service 决定
func (r *shopRepo) FindByNo(ctx context.Context, shopNo int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Unscoped().
		Preload("Owner").
		Where("shop_no = ?", shopNo).
		First(&shop).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) FindByCode(ctx context.Context, shopCode string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("shop_code = ?", shopCode).
		First(&shop).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) ListByOwner(ctx context.Context, ownerUserNo int64) ([]*model.Shop, error) {
	var shops []*model.Shop
	err := r.db.WithContext(ctx).
		Where("owner_user_no = ?", ownerUserNo).
		Order("shop_no ASC").
		Find(&shops).Error
	return shops, err
}

func (r *shopRepo) List(ctx context.Context, filter ShopFilter) ([]*model.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Shop{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("(shop_name LIKE ? OR shop_code LIKE ?)", pattern, pattern)
	}
	if filter.ShopType != "" {
		query = query.Where("shop_type = ?", filter.ShopType)
	}
	if filter.Status != "" {
		query = query.Where("shop_status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var shops []*model.Shop
	err := query.
		Preload("Owner").
		Order("shop_no ASC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&shops).Error
	return shops, total, err
}

func (r *shopRepo) UpdateFields(ctx context.Context, shopNo int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("shop_no = ?", shopNo).
		Updates(fields).Error
}

func (r *shopRepo) ToggleDisplay(ctx context.Context, shopNo int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("shop_no = ?", shopNo).
		Update("use_display", gorm.Expr("NOT use_display")).Error
}

func (r *shopRepo) SoftDelete(ctx context.Context, shopNo int64) error {
	return r.db.WithContext(ctx).
		Where("shop_no = ?", shopNo).
		Delete(&model.Shop{}).Error
}

func (r *shopRepo) Restore(ctx context.Context, shopNo int64) error {
	return r.db.WithContext(ctx).Unscoped().
		Model(&model.Shop{}).
		Where("shop_no = ?", shopNo).
		Update("deleted_at", nil).Error
}

func (r *shopRepo) CheckCodeDuplicate(ctx context.Context, shopCode string, excludeShopNo int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().
		Model(&model.Shop{}).
		Where("shop_code = ?", shopCode)
	if excludeShopNo > 0 {
		query = query.Where("shop_no != ?", excludeShopNo)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
