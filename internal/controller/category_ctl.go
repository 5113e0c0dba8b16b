package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_shop_v1_202608/internal/api/dto"
	"forum_shop_v1_202608/internal/service"
)

// CategoryController 分类接口
type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{
		categorySvc: categorySvc,
	}
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Description 创建分类，parent_category_no 为空时创建一级分类，最多 4 级
// @Tags Category (商品分类)
// @Accept json
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param request body dto.CategoryCreateReq true "创建参数"
// @Success 201 {object} model.Category "创建的分类"
// @Failure 400 {object} map[string]string "参数错误/超过最大层级"
// @Failure 409 {object} map[string]string "编码重复"
// @Router /api/v1/shops/{shop_no}/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	var req dto.CategoryCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	useDisplay := true
	if req.UseDisplay != nil {
		useDisplay = *req.UseDisplay
	}

	category, err := c.categorySvc.Create(ctx.Request.Context(), shopNo, service.CategoryCreateInput{
		CategoryName:        req.CategoryName,
		ParentCategoryNo:    req.ParentCategoryNo,
		DisplayOrder:        req.DisplayOrder,
		UseDisplay:          useDisplay,
		CategoryCode:        req.CategoryCode,
		CategoryDescription: req.CategoryDescription,
		CategoryImageURL:    req.CategoryImageURL,
		HashTags:            req.HashTags,
		MetaKeywords:        req.MetaKeywords,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// ListCategories 分类列表
// @Summary 分类列表
// @Description 按条件筛选店铺分类，平铺返回
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param depth query int false "层级筛选 (1-4)"
// @Param use_display query bool false "仅展示中的分类"
// @Param keyword query string false "名称关键词"
// @Success 200 {object} dto.CategoryListResp "分类列表"
// @Router /api/v1/shops/{shop_no}/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	var req dto.CategoryListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	categories, err := c.categorySvc.Search(ctx.Request.Context(), shopNo, req.Keyword, req.Depth, req.UseDisplay)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResp{
		Code:    0,
		Message: "ok",
		Data:    categories,
		Total:   len(categories),
	})
}

// GetCategoryRoots 一级分类
// @Summary 一级分类列表
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param use_display query bool false "仅展示中的分类"
// @Success 200 {object} dto.CategoryListResp "一级分类"
// @Router /api/v1/shops/{shop_no}/categories/roots [get]
func (c *CategoryController) GetCategoryRoots(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	categories, err := c.categorySvc.GetRoots(ctx.Request.Context(), shopNo, parseBoolQuery(ctx, "use_display"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResp{Code: 0, Message: "ok", Data: categories, Total: len(categories)})
}

// GetCategoryTree 分类树
// @Summary 分类树
// @Description 整棵树或以 parent_no 为根的子树，子树返回其直接子节点作为顶层
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param parent_no query int false "子树根节点"
// @Param use_display query bool false "仅展示中的分类"
// @Success 200 {object} dto.CategoryListResp "树形分类"
// @Router /api/v1/shops/{shop_no}/categories/tree [get]
func (c *CategoryController) GetCategoryTree(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	var parentNo *int64
	if raw := ctx.Query("parent_no"); raw != "" {
		no, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || no <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的parent_no"})
			return
		}
		parentNo = &no
	}

	tree, err := c.categorySvc.GetTree(ctx.Request.Context(), shopNo, parentNo, parseBoolQuery(ctx, "use_display"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResp{Code: 0, Message: "ok", Data: tree, Total: len(tree)})
}

// GetCategoriesByDepth 按层级查分类
// @Summary 按层级查分类
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param depth path int true "层级 (1-4)"
// @Success 200 {object} dto.CategoryListResp "分类列表"
// @Router /api/v1/shops/{shop_no}/categories/depth/{depth} [get]
func (c *CategoryController) GetCategoriesByDepth(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	depth, err := strconv.Atoi(ctx.Param("depth"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的depth"})
		return
	}

	categories, err := c.categorySvc.GetByDepth(ctx.Request.Context(), shopNo, depth, parseBoolQuery(ctx, "use_display"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResp{Code: 0, Message: "ok", Data: categories, Total: len(categories)})
}

// GetCategoryByCode 按编码查分类
// @Summary 按编码查分类
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param code path string true "分类编码"
// @Success 200 {object} model.Category "分类"
// @Failure 404 {object} map[string]string "分类不存在"
// @Router /api/v1/shops/{shop_no}/categories/code/{code} [get]
func (c *CategoryController) GetCategoryByCode(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}

	category, err := c.categorySvc.GetByCode(ctx.Request.Context(), shopNo, ctx.Param("code"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// GetCategory 分类详情
// @Summary 分类详情
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Success 200 {object} model.Category "分类"
// @Failure 404 {object} map[string]string "分类不存在"
// @Router /api/v1/shops/{shop_no}/categories/{category_no} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	category, err := c.categorySvc.Get(ctx.Request.Context(), shopNo, categoryNo)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// GetCategoryChildren 直接子分类
// @Summary 直接子分类
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Success 200 {object} dto.CategoryListResp "子分类列表"
// @Router /api/v1/shops/{shop_no}/categories/{category_no}/children [get]
func (c *CategoryController) GetCategoryChildren(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	children, err := c.categorySvc.GetChildren(ctx.Request.Context(), shopNo, categoryNo, parseBoolQuery(ctx, "use_display"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResp{Code: 0, Message: "ok", Data: children, Total: len(children)})
}

// GetCategoryDescendants 全部子孙分类
// @Summary 全部子孙分类
// @Description 路径前缀匹配，平铺返回，include_self 为 true 时含自身
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Param include_self query bool false "包含自身"
// @Success 200 {object} dto.CategoryListResp "子孙分类列表"
// @Router /api/v1/shops/{shop_no}/categories/{category_no}/descendants [get]
func (c *CategoryController) GetCategoryDescendants(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	includeSelf := ctx.Query("include_self") == "true"
	descendants, err := c.categorySvc.GetDescendants(ctx.Request.Context(), shopNo, categoryNo, includeSelf, parseBoolQuery(ctx, "use_display"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResp{Code: 0, Message: "ok", Data: descendants, Total: len(descendants)})
}

// GetCategoryBreadcrumb 面包屑
// @Summary 面包屑导航
// @Description 从一级分类到自身的祖先链，按层级升序
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Success 200 {object} dto.BreadcrumbResp "祖先链"
// @Router /api/v1/shops/{shop_no}/categories/{category_no}/breadcrumb [get]
func (c *CategoryController) GetCategoryBreadcrumb(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	breadcrumb, err := c.categorySvc.GetBreadcrumb(ctx.Request.Context(), shopNo, categoryNo)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BreadcrumbResp{Code: 0, Message: "ok", Data: breadcrumb})
}

// UpdateCategory 修改分类
// @Summary 修改分类
// @Description 改名会同步重建全名，不支持换父节点
// @Tags Category (商品分类)
// @Accept json
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Param request body dto.CategoryUpdateReq true "修改参数"
// @Success 200 {object} model.Category "修改后的分类"
// @Router /api/v1/shops/{shop_no}/categories/{category_no} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	var req dto.CategoryUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	category, err := c.categorySvc.Update(ctx.Request.Context(), shopNo, categoryNo, service.CategoryUpdateInput{
		CategoryName:        req.CategoryName,
		DisplayOrder:        req.DisplayOrder,
		UseDisplay:          req.UseDisplay,
		CategoryCode:        req.CategoryCode,
		CategoryDescription: req.CategoryDescription,
		CategoryImageURL:    req.CategoryImageURL,
		HashTags:            req.HashTags,
		MetaKeywords:        req.MetaKeywords,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Description 有子分类或商品数大于 0 时拒绝，默认软删，hard=true 时物理删除
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Param hard query bool false "物理删除"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 409 {object} map[string]string "存在子分类或商品"
// @Router /api/v1/shops/{shop_no}/categories/{category_no} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	hard := ctx.Query("hard") == "true"
	if _, err := c.categorySvc.Delete(ctx.Request.Context(), shopNo, categoryNo, hard); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// RestoreCategory 恢复分类
// @Summary 恢复软删除的分类
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Success 200 {object} model.Category "恢复后的分类"
// @Failure 409 {object} map[string]string "分类未删除"
// @Router /api/v1/shops/{shop_no}/categories/{category_no}/restore [post]
func (c *CategoryController) RestoreCategory(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	category, err := c.categorySvc.Restore(ctx.Request.Context(), shopNo, categoryNo)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// ToggleCategoryDisplay 切换展示状态
// @Summary 切换分类展示状态
// @Tags Category (商品分类)
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Success 200 {object} model.Category "切换后的分类"
// @Router /api/v1/shops/{shop_no}/categories/{category_no}/toggle-display [post]
func (c *CategoryController) ToggleCategoryDisplay(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	category, err := c.categorySvc.ToggleDisplay(ctx.Request.Context(), shopNo, categoryNo)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// UpdateCategoryProductCount 增减分类商品数
// @Summary 增减分类商品数
// @Description 商品上下架时调用，delta 可为负
// @Tags Category (商品分类)
// @Accept json
// @Produce json
// @Param shop_no path int true "店铺编号"
// @Param category_no path int true "分类编号"
// @Param request body dto.CategoryProductCountReq true "增量"
// @Success 200 {object} map[string]string "{"message": "更新成功"}"
// @Router /api/v1/shops/{shop_no}/categories/{category_no}/product-count [patch]
func (c *CategoryController) UpdateCategoryProductCount(ctx *gin.Context) {
	shopNo, ok := parseID(ctx, "shop_no")
	if !ok {
		return
	}
	categoryNo, ok := parseID(ctx, "category_no")
	if !ok {
		return
	}

	var req dto.CategoryProductCountReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.categorySvc.UpdateProductCount(ctx.Request.Context(), shopNo, categoryNo, req.Delta); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// parseBoolQuery 解析可空布尔查询参数
func parseBoolQuery(ctx *gin.Context, name string) *bool {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	v := raw == "true" || raw == "1"
	return &v
}
