package service

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/pkg/logger"
)

// 店铺编码只允许小写字母、数字、连字符，3-30 位
var shopCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,28}[a-z0-9]$`)

// ShopService 店铺业务
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService 创建店铺业务
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// ShopCreateInput 创建参数
type ShopCreateInput struct {
	ShopCode        string
	ShopName        string
	ShopType        string
	ShopDescription string
	ContactEmail    string
	ContactPhone    string
	ContactAddress  string
}

// ShopUpdateInput 修改参数，nil 表示不更新
type ShopUpdateInput struct {
	ShopName        *string
	ShopDescription *string
	ContactEmail    *string
	ContactPhone    *string
	ContactAddress  *string
	LogoImageURL    *string
	BannerImageURL  *string
}

// Create 开店
func (s *ShopService) Create(ctx context.Context, ownerUserNo int64, input ShopCreateInput) (*model.Shop, error) {
	if !shopCodePattern.MatchString(input.ShopCode) {
		return nil, ErrInvalidCode
	}

	dup, err := s.shopRepo.CheckCodeDuplicate(ctx, input.ShopCode, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateShopCode
	}

	shopType := input.ShopType
	if shopType == "" {
		shopType = model.ShopTypePersonal
	}

	shop := &model.Shop{
		ShopCode:        input.ShopCode,
		ShopName:        input.ShopName,
		ShopType:        shopType,
		ShopStatus:      model.ShopStatusActive,
		UseDisplay:      true,
		OwnerUserNo:     ownerUserNo,
		ShopDescription: input.ShopDescription,
		ContactEmail:    input.ContactEmail,
		ContactPhone:    input.ContactPhone,
		ContactAddress:  input.ContactAddress,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	logger.L.Info("shop created",
		zap.Int64("shop_no", shop.ShopNo),
		zap.String("shop_code", shop.ShopCode),
		zap.Int64("owner", ownerUserNo))
	return shop, nil
}

// Get 单个店铺
func (s *ShopService) Get(ctx context.Context, shopNo int64) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByNo(ctx, shopNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return shop, nil
}

// GetByCode 按编码查店铺
func (s *ShopService) GetByCode(ctx context.Context, shopCode string) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByCode(ctx, shopCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return shop, nil
}

// List 店铺列表
func (s *ShopService) List(ctx context.Context, filter repository.ShopFilter) ([]*model.Shop, int64, error) {
	return s.shopRepo.List(ctx, filter)
}

// ListMine 我的店铺
func (s *ShopService) ListMine(ctx context.Context, ownerUserNo int64) ([]*model.Shop, error) {
	return s.shopRepo.ListByOwner(ctx, ownerUserNo)
}

// Update 修改店铺资料，店主或管理员
func (s *ShopService) Update(ctx context.Context, shopNo int64, input ShopUpdateInput, actor Actor) (*model.Shop, error) {
	shop, err := s.Get(ctx, shopNo)
	if err != nil {
		return nil, err
	}
	if shop.OwnerUserNo != actor.UserID && !actor.IsAdmin {
		return nil, ErrPermissionDenied
	}

	fields := map[string]interface{}{}
	if input.ShopName != nil {
		fields["shop_name"] = *input.ShopName
	}
	if input.ShopDescription != nil {
		fields["shop_description"] = *input.ShopDescription
	}
	if input.ContactEmail != nil {
		fields["contact_email"] = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		fields["contact_phone"] = *input.ContactPhone
	}
	if input.ContactAddress != nil {
		fields["contact_address"] = *input.ContactAddress
	}
	if input.LogoImageURL != nil {
		fields["logo_image_url"] = *input.LogoImageURL
	}
	if input.BannerImageURL != nil {
		fields["banner_image_url"] = *input.BannerImageURL
	}
	if len(fields) > 0 {
		if err := s.shopRepo.UpdateFields(ctx, shopNo, fields); err != nil {
			return nil, err
		}
	}

	return s.shopRepo.FindByNo(ctx, shopNo)
}

// UpdateStatus 变更店铺状态（管理员）
func (s *ShopService) UpdateStatus(ctx context.Context, shopNo int64, status string) (*model.Shop, error) {
	if _, err := s.Get(ctx, shopNo); err != nil {
		return nil, err
	}

	switch status {
	case model.ShopStatusActive, model.ShopStatusInactive, model.ShopStatusSuspended:
	default:
		return nil, ErrInvalidCode
	}

	if err := s.shopRepo.UpdateFields(ctx, shopNo, map[string]interface{}{"shop_status": status}); err != nil {
		return nil, err
	}
	logger.L.Info("shop status changed", zap.Int64("shop_no", shopNo), zap.String("status", status))
	return s.shopRepo.FindByNo(ctx, shopNo)
}

// ToggleDisplay 切换店铺展示开关，店主或管理员
func (s *ShopService) ToggleDisplay(ctx context.Context, shopNo int64, actor Actor) (*model.Shop, error) {
	shop, err := s.Get(ctx, shopNo)
	if err != nil {
		return nil, err
	}
	if shop.OwnerUserNo != actor.UserID && !actor.IsAdmin {
		return nil, ErrPermissionDenied
	}

	if err := s.shopRepo.ToggleDisplay(ctx, shopNo); err != nil {
		return nil, err
	}
	return s.shopRepo.FindByNo(ctx, shopNo)
}

// Delete 关店（软删），店主或管理员
func (s *ShopService) Delete(ctx context.Context, shopNo int64, actor Actor) error {
	shop, err := s.Get(ctx, shopNo)
	if err != nil {
		return err
	}
	if shop.OwnerUserNo != actor.UserID && !actor.IsAdmin {
		return ErrPermissionDenied
	}

	if err := s.shopRepo.SoftDelete(ctx, shopNo); err != nil {
		return err
	}
	logger.L.Info("shop deleted", zap.Int64("shop_no", shopNo))
	return nil
}

// Restore 恢复店铺（管理员）
func (s *ShopService) Restore(ctx context.Context, shopNo int64) (*model.Shop, error) {
	if err := s.shopRepo.Restore(ctx, shopNo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.shopRepo.FindByNo(ctx, shopNo)
}
