package dto

// ==================== 请求 DTO ====================

// UserUpdateReq 修改资料请求
type UserUpdateReq struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=2,max=50"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
}

// UserListReq 用户列表查询（管理员）
type UserListReq struct {
	Keyword    string `form:"keyword"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// UserListResp 用户列表响应
type UserListResp struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
