package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/internal/service"
)

// ShopController 店铺接口
type ShopController struct {
	shopSvc *service.ShopService
}

func NewShopController(shopSvc *service.ShopService) *ShopController {
	return &ShopController{
		shopSvc: shopSvc,
	}
}

// CreateShop 开店
// @Summary 开店
// @Tags Shop (店铺)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ShopCreateReq true "开店参数"
// @Success 201 {object} model.Shop "创建的店铺"
// @Failure 409 {object} map[string]string "店铺编码已存在"
// @Router /api/v1/shops [post]
func (c *ShopController) CreateShop(ctx *gin.Context) {
	var req dto.ShopCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	shop, err := c.shopSvc.Create(ctx.Request.Context(), middleware.GetUserID(ctx), service.ShopCreateInput{
		ShopCode:        req.ShopCode,
		ShopName:        req.ShopName,
		ShopType:        req.ShopType,
		ShopDescription: req.ShopDescription,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		ContactAddress:  req.ContactAddress,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, shop)
}

// ListShops 店铺列表
// @Summary 店铺列表
// @Tags Shop (店铺)
// @Produce json
// @Param keyword query string false "店铺名称关键词"
// @Param shop_type query string false "店铺类型"
// @Param status query string false "状态筛选"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ShopListResp "店铺列表"
// @Router /api/v1/shops [get]
func (c *ShopController) ListShops(ctx *gin.Context) {
	var req dto.ShopListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	shops, total, err := c.shopSvc.List(ctx.Request.Context(), repository.ShopFilter{
		Keyword:  req.Keyword,
		ShopType: req.ShopType,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ShopListResp{
		Code: 0, Message: "ok", Data: shops,
		Total: total, Page: req.Page, PageSize: req.PageSize,
	})
}

// ListMyShops 我的店铺
// @Summary 我的店铺
// @Tags Shop (店铺)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ShopListResp "店铺列表"
// @Router /api/v1/shops/mine [get]
func (c *ShopController) ListMyShops(ctx *gin.Context) {
	shops, err := c.shopSvc.ListMine(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ShopListResp{
		Code: 0, Message: "ok", Data: shops, Total: int64(len(shops)),
	})
}

// GetShop 店铺详情
// @Summary 店铺详情
// @Tags Shop (店铺)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Success 200 {object} model.Shop "店铺"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/v1/shops/{shop_no} [get]
func (c *ShopController) GetShop(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	shop, err := c.shopSvc.Get(ctx.Request.Context(), shopNo)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shop)
}

// GetShopByCode 按编码查店铺
// @Summary 按编码查店铺
// @Tags Shop (店铺)
// @Produce json
// @Param code path string true "店铺编码"
// @Success 200 {object} model.Shop "店铺"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/v1/shops/code/{code} [get]
func (c *ShopController) GetShopByCode(ctx *gin.Context) {
	shop, err := c.shopSvc.GetByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shop)
}

// UpdateShop 修改店铺
// @Summary 修改店铺资料
// @Description 店主或管理员
// @Tags Shop (店铺)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shop_no path int true "店铺编号"
// @Param request body dto.ShopUpdateReq true "修改参数"
// @Success 200 {object} model.Shop "修改后的店铺"
// @Router /api/v1/shops/{shop_no} [put]
func (c *ShopController) UpdateShop(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	var req dto.ShopUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	shop, err := c.shopSvc.Update(ctx.Request.Context(), shopNo, service.ShopUpdateInput{
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		ContactAddress:  req.ContactAddress,
		LogoImageURL:    req.LogoImageURL,
		BannerImageURL:  req.BannerImageURL,
	}, actorFrom(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shop)
}

// UpdateShopStatus 变更店铺状态
// @Summary 变更店铺状态（管理员）
// @Tags Shop (店铺)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shop_no path int true "店铺编号"
// @Param request body dto.ShopStatusReq true "新状态"
// @Success 200 {object} model.Shop "变更后的店铺"
// @Router /api/v1/shops/{shop_no}/status [patch]
func (c *ShopController) UpdateShopStatus(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	var req dto.ShopStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	shop, err := c.shopSvc.UpdateStatus(ctx.Request.Context(), shopNo, req.Status)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shop)
}

// ToggleShopDisplay 切换店铺展示
// @Summary 切换店铺展示开关
// @Tags Shop (店铺)
// @Produce json
// @Security BearerAuth
// @Param shop_no path int true "店铺编号"
// @Success 200 {object} model.Shop "切换后的店铺"
// @Router /api/v1/shops/{shop_no}/toggle-display [post]
func (c *ShopController) ToggleShopDisplay(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	shop, err := c.shopSvc.ToggleDisplay(ctx.Request.Context(), shopNo, actorFrom(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shop)
}

// DeleteShop 关店
// @Summary 关店（软删）
// @Tags Shop (店铺)
// @Produce json
// @Security BearerAuth
// @Param shop_no path int true "店铺编号"
// @Success 200 {object} map[string]string "{"message": "店铺已关闭"}"
// @Router /api/v1/shops/{shop_no} [delete]
func (c *ShopController) DeleteShop(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	if err := c.shopSvc.Delete(ctx.Request.Context(), shopNo, actorFrom(ctx)); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "店铺已关闭"})
}

// RestoreShop 恢复店铺
// @Summary 恢复店铺（管理员）
// @Tags Shop (店铺)
// @Produce json
// @Security BearerAuth
// @Param shop_no path int true "店铺编号"
// @Success 200 {object} model.Shop "恢复后的店铺"
// @Router /api/v1/shops/{shop_no}/restore [post]
func (c *ShopController) RestoreShop(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	shop, err := c.shopSvc.Restore(ctx.Request.Context(), shopNo)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shop)
}
