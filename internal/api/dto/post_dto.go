package dto

// ==================== 请求 DTO ====================

// PostCreateReq 发帖请求
type PostCreateReq struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	// 游客发帖密码，后续凭密码修改/删除
	Password string `json:"password,omitempty" binding:"omitempty,min=4,max=72"`
}

// PostUpdateReq 改帖请求
type PostUpdateReq struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Content *string `json:"content,omitempty"`
	// 游客帖凭密码操作
	Password string `json:"password,omitempty"`
}

// PostDeleteReq 删帖请求
type PostDeleteReq struct {
	Password string `json:"password,omitempty"`
	// 物理删除，仅管理员生效
	Hard bool `json:"hard,omitempty"`
}

// PostListReq 帖子列表查询
type PostListReq struct {
	AuthorID       int64  `form:"author_id"`
	Keyword        string `form:"keyword"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page,default=1"`
	PageSize       int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// PostListResp 帖子列表响应
type PostListResp struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
