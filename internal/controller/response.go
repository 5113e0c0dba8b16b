package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/service"
)

// handleError 业务错误 -> HTTP 状态码
func handleError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrUserInactive):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateShopCode),
		errors.Is(err, service.ErrHasChildren),
		errors.Is(err, service.ErrHasProducts),
		errors.Is(err, service.ErrAlreadyActive),
		errors.Is(err, service.ErrAlreadyDeleted):
		status = http.StatusConflict
	case errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrParentDeleted),
		errors.Is(err, service.ErrMaxDepthExceeded),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidDepth),
		errors.Is(err, service.ErrReplyToDeleted),
		errors.Is(err, service.ErrPostDeleted),
		errors.Is(err, service.ErrFileTypeNotAllowed):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPostLocked):
		status = http.StatusLocked
	case errors.Is(err, service.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}

// parseID 解析路径里的整型参数
func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的" + name})
		return 0, false
	}
	return id, true
}
