package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/service"
)

// AuthController 认证接口
type AuthController struct {
	authSvc *service.AuthService
	userSvc *service.UserService
}

func NewAuthController(authSvc *service.AuthService, userSvc *service.UserService) *AuthController {
	return &AuthController{
		authSvc: authSvc,
		userSvc: userSvc,
	}
}

// Register 注册
// @Summary 注册
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RegisterReq true "注册参数"
// @Success 201 {object} model.User "新用户"
// @Failure 409 {object} map[string]string "邮箱或用户名已存在"
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, err := c.userSvc.Register(ctx.Request.Context(), service.UserCreateInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login 登录
// @Summary 邮箱密码登录
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginReq true "登录参数"
// @Success 200 {object} service.LoginResult "Token 与用户信息"
// @Failure 401 {object} map[string]string "账号或密码错误"
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	result, err := c.authSvc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Me 当前用户
// @Summary 当前登录用户信息
// @Tags Auth (认证)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User "用户信息"
// @Failure 401 {object} map[string]string "未登录"
// @Router /api/v1/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authSvc.Me(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Logout 登出
// @Summary 登出
// @Description Token 加入黑名单，直到自然过期
// @Tags Auth (认证)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "{"message": "已登出"}"
// @Router /api/v1/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authSvc.Logout(ctx.Request.Context(), middleware.GetToken(ctx)); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已登出"})
}

// DevToken 调试 Token
// @Summary 调试模式便捷登录（仅 DEBUG 环境）
// @Description 给 admin 账号签发正式 Token，生产环境下此接口返回 404
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} service.LoginResult "Token 与用户信息"
// @Failure 404 {object} map[string]string "非调试模式"
// @Router /api/v1/auth/dev-token [get]
func (c *AuthController) DevToken(ctx *gin.Context) {
	result, err := c.authSvc.DevLogin(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
