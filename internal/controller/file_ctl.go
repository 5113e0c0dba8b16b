package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/service"
)

// FileController 文件接口
type FileController struct {
	fileSvc *service.FileService
}

func NewFileController(fileSvc *service.FileService) *FileController {
	return &FileController{
		fileSvc: fileSvc,
	}
}

// UploadFile 上传文件
// @Summary 上传文件
// @Description multipart 上传，先落临时态，挂接到帖子后转永久
// @Tags File (文件)
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件"
// @Param is_public formData bool false "是否公开"
// @Success 201 {object} dto.FileUploadResp "文件元信息"
// @Failure 400 {object} map[string]string "类型不允许"
// @Failure 413 {object} map[string]string "文件过大"
// @Router /api/v1/files [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "缺少文件: " + err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "读取文件失败: " + err.Error()})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "读取文件失败: " + err.Error()})
		return
	}

	file, err := c.fileSvc.Upload(ctx.Request.Context(), service.UploadInput{
		OriginalFilename: fileHeader.Filename,
		Data:             data,
		MimeType:         fileHeader.Header.Get("Content-Type"),
		UploaderID:       middleware.GetUserID(ctx),
		UploadIP:         ctx.ClientIP(),
		IsPublic:         ctx.PostForm("is_public") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FileUploadResp{Code: 0, Message: "ok", Data: file})
}

// GetFile 文件元信息
// @Summary 文件元信息
// @Tags File (文件)
// @Produce json
// @Param file_id path int true "文件ID"
// @Success 200 {object} model.StoredFile "文件"
// @Failure 404 {object} map[string]string "文件不存在"
// @Router /api/v1/files/{file_id} [get]
func (c *FileController) GetFile(ctx *gin.Context) {
	fileID, ok := parseID(ctx, "file_id")
	if !ok {
		return
	}

	file, err := c.fileSvc.Get(ctx.Request.Context(), fileID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, file)
}

// DownloadFile 下载文件
// @Summary 下载文件
// @Description 私有文件仅上传者和管理员可下载，每次下载计数 +1
// @Tags File (文件)
// @Produce octet-stream
// @Param file_id path int true "文件ID"
// @Success 200 {file} binary "文件内容"
// @Failure 403 {object} map[string]string "无权限"
// @Router /api/v1/files/{file_id}/download [get]
func (c *FileController) DownloadFile(ctx *gin.Context) {
	fileID, ok := parseID(ctx, "file_id")
	if !ok {
		return
	}

	file, data, err := c.fileSvc.Download(ctx.Request.Context(), fileID, actorFrom(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+file.OriginalFilename+`"`)
	ctx.Data(http.StatusOK, file.MimeType, data)
}

// DeleteFile 删除文件
// @Summary 删除文件
// @Description 上传者本人或管理员
// @Tags File (文件)
// @Produce json
// @Security BearerAuth
// @Param file_id path int true "文件ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Router /api/v1/files/{file_id} [delete]
func (c *FileController) DeleteFile(ctx *gin.Context) {
	fileID, ok := parseID(ctx, "file_id")
	if !ok {
		return
	}

	if err := c.fileSvc.Delete(ctx.Request.Context(), fileID, actorFrom(ctx)); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// AttachFiles 挂接附件
// @Summary 挂接附件到帖子
// @Description 临时文件转永久，挂接与转永久在同一事务
// @Tags File (文件)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Param request body dto.FileAttachReq true "文件ID列表"
// @Success 200 {object} map[string]string "{"message": "挂接成功"}"
// @Router /api/v1/posts/{post_id}/attachments [post]
func (c *FileController) AttachFiles(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	var req dto.FileAttachReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.fileSvc.AttachToPost(ctx.Request.Context(), postID, req.FileIDs, actorFrom(ctx)); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "挂接成功"})
}

// ListAttachments 附件列表
// @Summary 帖子附件列表
// @Tags File (文件)
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} dto.FileUploadResp "附件列表"
// @Router /api/v1/posts/{post_id}/attachments [get]
func (c *FileController) ListAttachments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	attachments, err := c.fileSvc.ListPostAttachments(ctx.Request.Context(), postID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FileUploadResp{Code: 0, Message: "ok", Data: attachments})
}

// CleanupTempFiles 清理临时文件
// @Summary 立即清理超期的临时文件（管理员）
// @Description 定时任务之外的手动触发入口
// @Tags File (文件)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int "{"cleaned": 3}"
// @Router /api/v1/files/cleanup [post]
func (c *FileController) CleanupTempFiles(ctx *gin.Context) {
	cleaned, err := c.fileSvc.CleanupExpiredTemp(ctx.Request.Context(), 500)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"cleaned": cleaned})
}
