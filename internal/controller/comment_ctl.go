package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/service"
)

// CommentController 评论接口
type CommentController struct {
	commentSvc *service.CommentService
}

func NewCommentController(commentSvc *service.CommentService) *CommentController {
	return &CommentController{
		commentSvc: commentSvc,
	}
}

// CreateComment 发表评论
// @Summary 发表评论
// @Description 登录用户或游客发评论，parent_id 指定回复目标，最多回复到第 3 层
// @Tags Comment (评论)
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body dto.CommentCreateReq true "评论内容"
// @Success 201 {object} model.Comment "创建的评论"
// @Failure 400 {object} map[string]string "超过最大层级/回复已删除评论"
// @Failure 423 {object} map[string]string "帖子已锁定"
// @Router /api/v1/posts/{post_id}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	var req dto.CommentCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	comment, err := c.commentSvc.Create(ctx.Request.Context(), postID, middleware.GetUserID(ctx), service.CommentCreateInput{
		Content:  req.Content,
		ParentID: req.ParentID,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// ListComments 评论列表
// @Summary 帖子评论列表
// @Description as_tree=true 时返回树形结构，否则按路径升序平铺
// @Tags Comment (评论)
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param as_tree query bool false "树形返回"
// @Param include_deleted query bool false "包含已删除(占位内容)"
// @Success 200 {object} dto.CommentListResp "评论列表"
// @Router /api/v1/posts/{post_id}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	var req dto.CommentListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	var (
		comments interface{}
		err      error
	)
	if req.AsTree {
		comments, err = c.commentSvc.ListTree(ctx.Request.Context(), postID, req.IncludeDeleted)
	} else {
		comments, err = c.commentSvc.ListFlat(ctx.Request.Context(), postID, req.IncludeDeleted)
	}
	if err != nil {
		handleError(ctx, err)
		return
	}

	total, err := c.commentSvc.Count(ctx.Request.Context(), postID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CommentListResp{Code: 0, Message: "ok", Data: comments, Total: total})
}

// GetCommentCount 评论数
// @Summary 帖子评论数
// @Tags Comment (评论)
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} map[string]int64 "{"count": 12}"
// @Router /api/v1/posts/{post_id}/comments/count [get]
func (c *CommentController) GetCommentCount(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	count, err := c.commentSvc.Count(ctx.Request.Context(), postID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// GetComment 评论详情
// @Summary 评论详情
// @Tags Comment (评论)
// @Produce json
// @Param comment_id path int true "评论ID"
// @Success 200 {object} model.Comment "评论"
// @Failure 404 {object} map[string]string "评论不存在"
// @Router /api/v1/comments/{comment_id} [get]
func (c *CommentController) GetComment(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment_id")
	if !ok {
		return
	}

	comment, err := c.commentSvc.Get(ctx.Request.Context(), commentID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// UpdateComment 修改评论
// @Summary 修改评论
// @Description 作者本人或管理员，已删除的评论不可修改
// @Tags Comment (评论)
// @Accept json
// @Produce json
// @Param comment_id path int true "评论ID"
// @Param request body dto.CommentUpdateReq true "新内容"
// @Success 200 {object} model.Comment "修改后的评论"
// @Failure 403 {object} map[string]string "无权限"
// @Router /api/v1/comments/{comment_id} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment_id")
	if !ok {
		return
	}

	var req dto.CommentUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	comment, err := c.commentSvc.Update(ctx.Request.Context(), commentID, req.Content, actorFrom(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Description 软删替换为占位内容、保留子孙回复；hard=true 时管理员连同子孙物理删除
// @Tags Comment (评论)
// @Produce json
// @Param comment_id path int true "评论ID"
// @Param hard query bool false "物理删除（仅管理员）"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Router /api/v1/comments/{comment_id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment_id")
	if !ok {
		return
	}

	hard := ctx.Query("hard") == "true"
	if _, err := c.commentSvc.Delete(ctx.Request.Context(), commentID, actorFrom(ctx), hard); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// RestoreComment 恢复评论
// @Summary 恢复软删除的评论（管理员）
// @Description 原内容不保留，恢复后仍是占位内容
// @Tags Comment (评论)
// @Produce json
// @Param comment_id path int true "评论ID"
// @Success 200 {object} model.Comment "恢复后的评论"
// @Router /api/v1/comments/{comment_id}/restore [post]
func (c *CommentController) RestoreComment(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment_id")
	if !ok {
		return
	}

	comment, err := c.commentSvc.Restore(ctx.Request.Context(), commentID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// GetCommentReplies 直接子回复
// @Summary 直接子回复列表
// @Tags Comment (评论)
// @Produce json
// @Param comment_id path int true "评论ID"
// @Param include_deleted query bool false "包含已删除(占位内容)"
// @Success 200 {array} model.Comment "回复列表"
// @Router /api/v1/comments/{comment_id}/replies [get]
func (c *CommentController) GetCommentReplies(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment_id")
	if !ok {
		return
	}

	replies, err := c.commentSvc.Replies(ctx.Request.Context(), commentID, ctx.Query("include_deleted") == "true")
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, replies)
}

// GetCommentThread 评论上下文
// @Summary 评论的完整上下文
// @Description 根到父级的祖先链 + 以该评论为根的子树
// @Tags Comment (评论)
// @Produce json
// @Param comment_id path int true "评论ID"
// @Success 200 {object} service.CommentThread "祖先链与子树"
// @Failure 404 {object} map[string]string "评论不存在"
// @Router /api/v1/comments/{comment_id}/thread [get]
func (c *CommentController) GetCommentThread(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment_id")
	if !ok {
		return
	}

	thread, err := c.commentSvc.Thread(ctx.Request.Context(), commentID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, thread)
}

// actorFrom 从请求上下文取操作者身份
func actorFrom(ctx *gin.Context) service.Actor {
	return service.Actor{
		UserID:  middleware.GetUserID(ctx),
		IsAdmin: middleware.IsAdmin(ctx),
	}
}
