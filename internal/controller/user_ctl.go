package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/internal/service"
)

// UserController 用户接口
type UserController struct {
	userSvc *service.UserService
}

func NewUserController(userSvc *service.UserService) *UserController {
	return &UserController{
		userSvc: userSvc,
	}
}

// GetUser 用户详情
// @Summary 用户详情
// @Tags User (用户)
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} model.User "用户"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/v1/users/{user_id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "user_id")
	if !ok {
		return
	}

	user, err := c.userSvc.Get(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// ListUsers 用户列表
// @Summary 用户列表（管理员）
// @Tags User (用户)
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "用户名/邮箱关键词"
// @Param active_only query bool false "仅活跃用户"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.UserListResp "用户列表"
// @Router /api/v1/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var req dto.UserListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	users, total, err := c.userSvc.List(ctx.Request.Context(), repository.UserFilter{
		Keyword:    req.Keyword,
		ActiveOnly: req.ActiveOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserListResp{
		Code: 0, Message: "ok", Data: users,
		Total: total, Page: req.Page, PageSize: req.PageSize,
	})
}

// UpdateUser 修改资料
// @Summary 修改用户资料
// @Description 本人或管理员
// @Tags User (用户)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Param request body dto.UserUpdateReq true "修改参数"
// @Success 200 {object} model.User "修改后的用户"
// @Router /api/v1/users/{user_id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "user_id")
	if !ok {
		return
	}

	var req dto.UserUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, err := c.userSvc.Update(ctx.Request.Context(), userID, service.UserUpdateInput{
		Username: req.Username,
		Password: req.Password,
	}, actorFrom(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// DeactivateUser 停用账号
// @Summary 停用账号
// @Description 本人或管理员，历史帖子和评论保留；hard=true 时管理员物理删除
// @Tags User (用户)
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Param hard query bool false "物理删除（仅管理员）"
// @Success 200 {object} map[string]string "{"message": "账号已停用"}"
// @Router /api/v1/users/{user_id} [delete]
func (c *UserController) DeactivateUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "user_id")
	if !ok {
		return
	}

	actor := actorFrom(ctx)
	if ctx.Query("hard") == "true" && actor.IsAdmin {
		if err := c.userSvc.HardDelete(ctx.Request.Context(), userID); err != nil {
			handleError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "账号已删除"})
		return
	}

	if err := c.userSvc.Deactivate(ctx.Request.Context(), userID, actor); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "账号已停用"})
}

// ActivateUser 恢复账号
// @Summary 恢复账号（管理员）
// @Tags User (用户)
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 200 {object} map[string]string "{"message": "账号已恢复"}"
// @Router /api/v1/users/{user_id}/activate [post]
func (c *UserController) ActivateUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.userSvc.Activate(ctx.Request.Context(), userID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "账号已恢复"})
}
