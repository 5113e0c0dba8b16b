package model

import (
	"time"

	"gorm.io/gorm"
)

// 店铺类型
const (
	ShopTypeMall     = "MALL"     // 综合商城
	ShopTypeBrand    = "BRAND"    // 品牌店
	ShopTypePersonal = "PERSONAL" // 个人店
)

// 店铺状态
const (
	ShopStatusActive    = "ACTIVE"
	ShopStatusInactive  = "INACTIVE"
	ShopStatusSuspended = "SUSPENDED"
)

// Shop 店铺，分类树的租户边界
type Shop struct {
	ShopNo   int64  `gorm:"primaryKey;autoIncrement;column:shop_no" json:"shop_no"`
	ShopName string `gorm:"size:100;not null" json:"shop_name"`
	ShopCode string `gorm:"size:50;uniqueIndex;not null" json:"shop_code"`
	ShopType string `gorm:"size:20;default:MALL" json:"shop_type"`

	// 店主
	OwnerUserNo    int64  `gorm:"index;not null" json:"owner_user_no"`
	Owner          *User  `gorm:"foreignKey:OwnerUserNo" json:"owner,omitempty"`
	BusinessNumber string `gorm:"size:50" json:"business_number,omitempty"`
	CompanyName    string `gorm:"size:100" json:"company_name,omitempty"`

	// 联系方式
	ContactEmail        string `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone        string `gorm:"size:50" json:"contact_phone,omitempty"`
	ContactAddress      string `gorm:"size:255" json:"contact_address,omitempty"`
	ContactAddressDetail string `gorm:"size:255" json:"contact_address_detail,omitempty"`
	Zipcode             string `gorm:"size:20" json:"zipcode,omitempty"`

	ShopStatus string `gorm:"size:20;default:ACTIVE;index" json:"shop_status"`
	UseDisplay bool   `gorm:"default:true" json:"use_display"`

	ShopDescription string `gorm:"type:text" json:"shop_description,omitempty"`
	LogoImageURL    string `gorm:"size:500" json:"logo_image_url,omitempty"`
	BannerImageURL  string `gorm:"size:500" json:"banner_image_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Shop) TableName() string { return "shops" }

// IsDeleted 是否已软删除
func (s *Shop) IsDeleted() bool {
	return s.DeletedAt.Valid
}

// IsOpen 活跃且展示中
func (s *Shop) IsOpen() bool {
	return s.ShopStatus == ShopStatusActive && s.UseDisplay && !s.IsDeleted()
}
