package dto

// ==================== 请求 DTO ====================

// CommentCreateReq 发评论请求
type CommentCreateReq struct {
	Content string `json:"content" binding:"required,max=2000"`
	// 回复目标，为空表示根评论
	ParentID *int64 `json:"parent_id,omitempty"`
	// 游客评论密码
	Password string `json:"password,omitempty" binding:"omitempty,min=4,max=72"`
}

// CommentUpdateReq 改评论请求
type CommentUpdateReq struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentListReq 评论列表查询
type CommentListReq struct {
	// 按树形返回，false 时按 path 升序平铺
	AsTree         bool `form:"as_tree"`
	IncludeDeleted bool `form:"include_deleted"`
}

// CommentDeleteReq 删评论请求
type CommentDeleteReq struct {
	// 物理删除（连同子孙），仅管理员生效
	Hard bool `json:"hard,omitempty"`
}

// ==================== 响应 DTO ====================

// CommentListResp 评论列表响应
type CommentListResp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
}
