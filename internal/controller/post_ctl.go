package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/internal/service"
)

// PostController 帖子接口
type PostController struct {
	postSvc *service.PostService
}

func NewPostController(postSvc *service.PostService) *PostController {
	return &PostController{
		postSvc: postSvc,
	}
}

// CreatePost 发帖
// @Summary 发帖
// @Description 登录用户或游客发帖，游客需设置操作密码
// @Tags Post (帖子)
// @Accept json
// @Produce json
// @Param request body dto.PostCreateReq true "帖子内容"
// @Success 201 {object} model.Post "创建的帖子"
// @Router /api/v1/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.PostCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	post, err := c.postSvc.Create(ctx.Request.Context(), middleware.GetUserID(ctx), service.PostCreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, post)
}

// ListPosts 帖子列表
// @Summary 帖子列表
// @Description 置顶帖优先，其余按发表时间倒序
// @Tags Post (帖子)
// @Produce json
// @Param author_id query int false "作者筛选"
// @Param keyword query string false "标题关键词"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.PostListResp "帖子列表"
// @Router /api/v1/posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	var req dto.PostListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	// 已删除的帖子仅管理员可见
	includeDeleted := req.IncludeDeleted && middleware.IsAdmin(ctx)

	posts, total, err := c.postSvc.List(ctx.Request.Context(), repository.PostFilter{
		AuthorID:       req.AuthorID,
		Keyword:        req.Keyword,
		IncludeDeleted: includeDeleted,
		Page:           req.Page,
		PageSize:       req.PageSize,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostListResp{
		Code: 0, Message: "ok", Data: posts,
		Total: total, Page: req.Page, PageSize: req.PageSize,
	})
}

// GetPost 读帖
// @Summary 帖子详情
// @Description 每次读取浏览数 +1
// @Tags Post (帖子)
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} model.Post "帖子"
// @Failure 404 {object} map[string]string "帖子不存在"
// @Router /api/v1/posts/{post_id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	post, err := c.postSvc.Get(ctx.Request.Context(), postID, true)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// UpdatePost 改帖
// @Summary 修改帖子
// @Description 作者本人、管理员，或游客凭密码；锁定的帖子不可修改
// @Tags Post (帖子)
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body dto.PostUpdateReq true "修改参数"
// @Success 200 {object} model.Post "修改后的帖子"
// @Failure 423 {object} map[string]string "帖子已锁定"
// @Router /api/v1/posts/{post_id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	var req dto.PostUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	post, err := c.postSvc.Update(ctx.Request.Context(), postID, service.PostUpdateInput{
		Title:   req.Title,
		Content: req.Content,
	}, actorFrom(ctx), req.Password)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// DeletePost 删帖
// @Summary 删除帖子
// @Description 默认软删，hard=true 时管理员物理删除
// @Tags Post (帖子)
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body dto.PostDeleteReq false "删除参数"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Router /api/v1/posts/{post_id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	var req dto.PostDeleteReq
	// 删除请求体可为空
	_ = ctx.ShouldBindJSON(&req)

	if err := c.postSvc.Delete(ctx.Request.Context(), postID, actorFrom(ctx), req.Password, req.Hard); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// RestorePost 恢复帖子
// @Summary 恢复软删除的帖子（管理员）
// @Tags Post (帖子)
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Success 200 {object} model.Post "恢复后的帖子"
// @Router /api/v1/posts/{post_id}/restore [post]
func (c *PostController) RestorePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	post, err := c.postSvc.Restore(ctx.Request.Context(), postID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// LikePost 点赞
// @Summary 点赞
// @Tags Post (帖子)
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} model.Post "点赞后的帖子"
// @Router /api/v1/posts/{post_id}/like [post]
func (c *PostController) LikePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	post, err := c.postSvc.Like(ctx.Request.Context(), postID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// UnlikePost 取消点赞
// @Summary 取消点赞
// @Tags Post (帖子)
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} model.Post "取消后的帖子"
// @Router /api/v1/posts/{post_id}/like [delete]
func (c *PostController) UnlikePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	post, err := c.postSvc.Unlike(ctx.Request.Context(), postID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// PinPost 置顶/取消置顶
// @Summary 置顶或取消置顶（管理员）
// @Tags Post (帖子)
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Param pinned query bool true "是否置顶"
// @Success 200 {object} map[string]string "{"message": "操作成功"}"
// @Router /api/v1/posts/{post_id}/pin [post]
func (c *PostController) PinPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	pinned := ctx.Query("pinned") != "false"
	if err := c.postSvc.SetPinned(ctx.Request.Context(), postID, pinned); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "操作成功"})
}

// LockPost 锁定/解锁
// @Summary 锁定或解锁帖子（管理员）
// @Description 锁定后禁止编辑和新评论
// @Tags Post (帖子)
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Param locked query bool true "是否锁定"
// @Success 200 {object} map[string]string "{"message": "操作成功"}"
// @Router /api/v1/posts/{post_id}/lock [post]
func (c *PostController) LockPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post_id")
	if !ok {
		return
	}

	locked := ctx.Query("locked") != "false"
	if err := c.postSvc.SetLocked(ctx.Request.Context(), postID, locked); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "操作成功"})
}
