package dto

// ==================== 请求 DTO ====================

// FileAttachReq 附件挂接请求
type FileAttachReq struct {
	FileIDs []int64 `json:"file_ids" binding:"required,min=1,max=10"`
}

// ==================== 响应 DTO ====================

// FileUploadResp 上传响应
type FileUploadResp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
