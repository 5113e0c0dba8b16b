package dto

// ==================== 请求 DTO ====================

// CategoryCreateReq 创建分类请求
type CategoryCreateReq struct {
	CategoryName string `json:"category_name" binding:"required,max=100"`
	// 为空表示创建一级分类
	ParentCategoryNo    *int64   `json:"parent_category_no,omitempty"`
	DisplayOrder        *int     `json:"display_order,omitempty"`
	UseDisplay          *bool    `json:"use_display,omitempty"`
	CategoryCode        *string  `json:"category_code,omitempty"`
	CategoryDescription string   `json:"category_description,omitempty"`
	CategoryImageURL    string   `json:"category_image_url,omitempty" binding:"omitempty,max=500"`
	HashTags            []string `json:"hash_tags,omitempty" binding:"max=20"`
	MetaKeywords        string   `json:"meta_keywords,omitempty" binding:"omitempty,max=255"`
}

// CategoryUpdateReq 修改分类请求
// 不支持换父节点，层级迁移走删除重建
type CategoryUpdateReq struct {
	CategoryName        *string  `json:"category_name,omitempty" binding:"omitempty,max=100"`
	DisplayOrder        *int     `json:"display_order,omitempty"`
	UseDisplay          *bool    `json:"use_display,omitempty"`
	CategoryCode        *string  `json:"category_code,omitempty"`
	CategoryDescription *string  `json:"category_description,omitempty"`
	CategoryImageURL    *string  `json:"category_image_url,omitempty" binding:"omitempty,max=500"`
	HashTags            []string `json:"hash_tags,omitempty" binding:"max=20"`
	MetaKeywords        *string  `json:"meta_keywords,omitempty" binding:"omitempty,max=255"`
}

// CategoryListReq 分类列表查询
type CategoryListReq struct {
	Depth          *int   `form:"depth" binding:"omitempty,min=1,max=4"`
	UseDisplay     *bool  `form:"use_display"`
	Keyword        string `form:"keyword"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// CategoryProductCountReq 商品数增减请求
type CategoryProductCountReq struct {
	Delta int `json:"delta" binding:"required"`
}

// ==================== 响应 DTO ====================

// CategoryListResp 分类列表响应
type CategoryListResp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
}

// BreadcrumbResp 面包屑响应
type BreadcrumbResp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
