package dto

// ==================== 请求 DTO ====================

// ShopCreateReq 开店请求
type ShopCreateReq struct {
	ShopCode        string `json:"shop_code" binding:"required,min=3,max=30"`
	ShopName        string `json:"shop_name" binding:"required,max=100"`
	ShopType        string `json:"shop_type,omitempty" binding:"omitempty,oneof=MALL BRAND PERSONAL"`
	ShopDescription string `json:"shop_description,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone    string `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	ContactAddress  string `json:"contact_address,omitempty" binding:"omitempty,max=255"`
}

// ShopUpdateReq 修改店铺请求
type ShopUpdateReq struct {
	ShopName        *string `json:"shop_name,omitempty" binding:"omitempty,max=100"`
	ShopDescription *string `json:"shop_description,omitempty"`
	ContactEmail    *string `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone    *string `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	ContactAddress  *string `json:"contact_address,omitempty" binding:"omitempty,max=255"`
	LogoImageURL    *string `json:"logo_image_url,omitempty" binding:"omitempty,max=500"`
	BannerImageURL  *string `json:"banner_image_url,omitempty" binding:"omitempty,max=500"`
}

// ShopStatusReq 店铺状态变更请求
type ShopStatusReq struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

// ShopListReq 店铺列表查询
type ShopListReq struct {
	Keyword  string `form:"keyword"`
	ShopType string `form:"shop_type" binding:"omitempty,oneof=MALL BRAND PERSONAL"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// ShopListResp 店铺列表响应
type ShopListResp struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
