package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/pkg/logger"
	"forum_shop_v1_202608/pkg/tree"
)

// 分类编码: 2-50 位小写字母/数字，中间允许连字符和下划线
var categoryCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,48}[a-z0-9]$`)

// CategoryService 分类业务
//
// 物化路径树的创建走两段式: 先用占位路径落库拿到生成的 category_no，
// 再回填真实路径。两步包在同一事务里，避免中途失败留下脏路径。
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类业务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryCreateInput 创建参数
type CategoryCreateInput struct {
	CategoryName        string
	ParentCategoryNo    *int64
	DisplayOrder        *int
	UseDisplay          bool
	CategoryCode        *string
	CategoryDescription string
	CategoryImageURL    string
	HashTags            []string
	MetaKeywords        string
}

// CategoryUpdateInput 更新参数，nil 表示不修改
type CategoryUpdateInput struct {
	CategoryName        *string
	DisplayOrder        *int
	UseDisplay          *bool
	CategoryCode        *string
	CategoryDescription *string
	CategoryImageURL    *string
	HashTags            []string
	MetaKeywords        *string
}

// Create 创建分类
//
// 校验顺序（全部在写库之前）:
//  1. 编码格式与店铺内唯一性
//  2. 父分类存在且未删除
//  3. 深度不超过 4 级
func (s *CategoryService) Create(ctx context.Context, shopNo int64, input CategoryCreateInput) (*model.Category, error) {
	logger.L.Info("creating category",
		zap.Int64("shop_no", shopNo),
		zap.String("name", input.CategoryName))

	if input.CategoryCode != nil && *input.CategoryCode != "" {
		if !categoryCodePattern.MatchString(*input.CategoryCode) {
			return nil, ErrInvalidCode
		}
		dup, err := s.categoryRepo.CheckCodeDuplicate(ctx, shopNo, *input.CategoryCode, 0)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, ErrDuplicateCode
		}
	}

	// 父分类校验，必须发生在任何写入之前
	var parent *model.Category
	depth := 1
	fullName := input.CategoryName

	if input.ParentCategoryNo != nil {
		var err error
		parent, err = s.categoryRepo.FindByID(ctx, shopNo, *input.ParentCategoryNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.IsDeleted() {
			return nil, ErrParentDeleted
		}
		if !parent.CanHaveChildren() {
			return nil, ErrMaxDepthExceeded
		}

		depth = parent.CategoryDepth + 1

		ancestors, err := s.categoryRepo.FindAncestors(ctx, shopNo, parent.CategoryNo, true)
		if err != nil {
			return nil, err
		}
		fullName = buildFullName(ancestors, input.CategoryName)
	}

	// display_order 自动分配: 同级最大值 + 1
	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		maxOrder, err := s.categoryRepo.MaxDisplayOrder(ctx, shopNo, input.ParentCategoryNo)
		if err != nil {
			return nil, err
		}
		displayOrder = maxOrder + 1
	}

	parentPath := ""
	if parent != nil {
		parentPath = parent.CategoryPath
	}

	category := &model.Category{
		ShopNo:              shopNo,
		ParentCategoryNo:    input.ParentCategoryNo,
		CategoryDepth:       depth,
		CategoryPath:        tree.CategoryTempPath(parentPath),
		CategoryName:        input.CategoryName,
		FullCategoryName:    fullName,
		DisplayOrder:        displayOrder,
		UseDisplay:          input.UseDisplay,
		CategoryCode:        input.CategoryCode,
		CategoryDescription: input.CategoryDescription,
		CategoryImageURL:    input.CategoryImageURL,
		HashTags:            pq.StringArray(input.HashTags),
		MetaKeywords:        input.MetaKeywords,
	}

	// 两段式写入: 插入占位路径 → 用生成的 category_no 回填，单事务保证原子性
	err := s.categoryRepo.Transaction(ctx, func(txRepo repository.CategoryRepository) error {
		if err := txRepo.Create(ctx, category); err != nil {
			return err
		}

		finalPath := tree.CategoryPath(parentPath, category.CategoryNo)
		if err := txRepo.UpdatePath(ctx, shopNo, category.CategoryNo, finalPath); err != nil {
			return err
		}
		category.CategoryPath = finalPath
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L.Info("category created",
		zap.Int64("shop_no", shopNo),
		zap.Int64("category_no", category.CategoryNo),
		zap.String("path", category.CategoryPath))
	return category, nil
}

// Get 单个分类
func (s *CategoryService) Get(ctx context.Context, shopNo, categoryNo int64) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, shopNo, categoryNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetByCode 按编码查询
func (s *CategoryService) GetByCode(ctx context.Context, shopNo int64, code string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByCode(ctx, shopNo, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetRoots 根分类列表
func (s *CategoryService) GetRoots(ctx context.Context, shopNo int64, useDisplay *bool) ([]*model.Category, error) {
	return s.categoryRepo.FindRoots(ctx, shopNo, useDisplay)
}

// GetChildren 直接子分类列表
func (s *CategoryService) GetChildren(ctx context.Context, shopNo, parentNo int64, useDisplay *bool) ([]*model.Category, error) {
	return s.categoryRepo.FindChildren(ctx, shopNo, parentNo, useDisplay)
}

// GetDescendants 全部子孙（路径前缀查询）
func (s *CategoryService) GetDescendants(ctx context.Context, shopNo, categoryNo int64, includeSelf bool, useDisplay *bool) ([]*model.Category, error) {
	categories, err := s.categoryRepo.FindDescendants(ctx, shopNo, categoryNo, includeSelf, useDisplay)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return categories, nil
}

// GetBreadcrumb 面包屑: 根到自身的祖先链
func (s *CategoryService) GetBreadcrumb(ctx context.Context, shopNo, categoryNo int64) ([]*model.Category, error) {
	categories, err := s.categoryRepo.FindAncestors(ctx, shopNo, categoryNo, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return categories, nil
}

// GetByDepth 指定深度的分类
func (s *CategoryService) GetByDepth(ctx context.Context, shopNo int64, depth int, useDisplay *bool) ([]*model.Category, error) {
	if depth < 1 || depth > model.CategoryMaxDepth {
		return nil, ErrInvalidDepth
	}
	return s.categoryRepo.FindByDepth(ctx, shopNo, depth, useDisplay)
}

// Search 按名称检索
func (s *CategoryService) Search(ctx context.Context, shopNo int64, keyword string, depth *int, useDisplay *bool) ([]*model.Category, error) {
	return s.categoryRepo.FindAll(ctx, shopNo, repository.CategoryFilter{
		Depth:      depth,
		UseDisplay: useDisplay,
		Keyword:    keyword,
	})
}

// GetTree 分类树
// parentNo 为 nil 时返回整棵森林；指定 parentNo 时返回其下子树，
// 直接子分类作为顶层节点（父分类自身不出现在结果里）
func (s *CategoryService) GetTree(ctx context.Context, shopNo int64, parentNo *int64, useDisplay *bool) ([]*model.Category, error) {
	var categories []*model.Category
	var err error

	if parentNo != nil {
		categories, err = s.categoryRepo.FindDescendants(ctx, shopNo, *parentNo, false, useDisplay)
	} else {
		categories, err = s.categoryRepo.FindAll(ctx, shopNo, repository.CategoryFilter{UseDisplay: useDisplay})
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// 输入按 category_path 升序，父节点必然先于子节点出现
	roots := tree.Build(categories,
		func(c *model.Category) int64 { return c.CategoryNo },
		func(c *model.Category) (int64, bool) {
			if c.ParentCategoryNo == nil {
				return 0, false
			}
			if parentNo != nil && *c.ParentCategoryNo == *parentNo {
				return 0, false
			}
			return *c.ParentCategoryNo, true
		},
		func(p, c *model.Category) { p.AddChild(c) },
	)
	return roots, nil
}

// Update 更新分类信息
// path/depth 不在可更新字段里: 它们只由创建流程写入
func (s *CategoryService) Update(ctx context.Context, shopNo, categoryNo int64, input CategoryUpdateInput) (*model.Category, error) {
	category, err := s.Get(ctx, shopNo, categoryNo)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() {
		return nil, ErrAlreadyDeleted
	}

	fields := map[string]interface{}{}

	if input.CategoryCode != nil && *input.CategoryCode != "" {
		if !categoryCodePattern.MatchString(*input.CategoryCode) {
			return nil, ErrInvalidCode
		}
		dup, err := s.categoryRepo.CheckCodeDuplicate(ctx, shopNo, *input.CategoryCode, categoryNo)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, ErrDuplicateCode
		}
		fields["category_code"] = *input.CategoryCode
	}

	// 改名时重建 full_category_name
	if input.CategoryName != nil {
		ancestors, err := s.categoryRepo.FindAncestors(ctx, shopNo, categoryNo, false)
		if err != nil {
			return nil, err
		}
		fields["category_name"] = *input.CategoryName
		fields["full_category_name"] = buildFullName(ancestors, *input.CategoryName)
	}

	if input.DisplayOrder != nil {
		fields["display_order"] = *input.DisplayOrder
	}
	if input.UseDisplay != nil {
		fields["use_display"] = *input.UseDisplay
	}
	if input.CategoryDescription != nil {
		fields["category_description"] = *input.CategoryDescription
	}
	if input.CategoryImageURL != nil {
		fields["category_image_url"] = *input.CategoryImageURL
	}
	if input.HashTags != nil {
		fields["hash_tags"] = pq.StringArray(input.HashTags)
	}
	if input.MetaKeywords != nil {
		fields["meta_keywords"] = *input.MetaKeywords
	}

	if len(fields) == 0 {
		return category, nil
	}

	if err := s.categoryRepo.UpdateFields(ctx, shopNo, categoryNo, fields); err != nil {
		return nil, err
	}

	logger.L.Info("category updated",
		zap.Int64("shop_no", shopNo),
		zap.Int64("category_no", categoryNo))
	return s.Get(ctx, shopNo, categoryNo)
}

// Delete 删除分类
// 软删硬删同一套门禁: 有子分类或挂着商品都不允许
func (s *CategoryService) Delete(ctx context.Context, shopNo, categoryNo int64, hardDelete bool) (*model.Category, error) {
	category, err := s.Get(ctx, shopNo, categoryNo)
	if err != nil {
		return nil, err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, shopNo, categoryNo)
	if err != nil {
		return nil, err
	}
	if hasChildren {
		return nil, ErrHasChildren
	}
	if category.ProductCount > 0 {
		return nil, ErrHasProducts
	}

	if hardDelete {
		err = s.categoryRepo.HardDelete(ctx, shopNo, categoryNo)
	} else {
		err = s.categoryRepo.SoftDelete(ctx, shopNo, categoryNo)
	}
	if err != nil {
		return nil, err
	}

	logger.L.Info("category deleted",
		zap.Int64("shop_no", shopNo),
		zap.Int64("category_no", categoryNo),
		zap.Bool("hard", hardDelete))
	return category, nil
}

// Restore 恢复软删除的分类，路径无需修补（删除从不改路径）
func (s *CategoryService) Restore(ctx context.Context, shopNo, categoryNo int64) (*model.Category, error) {
	category, err := s.Get(ctx, shopNo, categoryNo)
	if err != nil {
		return nil, err
	}
	if !category.IsDeleted() {
		return nil, ErrAlreadyActive
	}

	if err := s.categoryRepo.Restore(ctx, shopNo, categoryNo); err != nil {
		return nil, err
	}
	return s.Get(ctx, shopNo, categoryNo)
}

// ToggleDisplay 切换展示开关
func (s *CategoryService) ToggleDisplay(ctx context.Context, shopNo, categoryNo int64) (*model.Category, error) {
	if _, err := s.Get(ctx, shopNo, categoryNo); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.ToggleDisplay(ctx, shopNo, categoryNo); err != nil {
		return nil, err
	}
	return s.Get(ctx, shopNo, categoryNo)
}

// UpdateProductCount 商品数增减（非规范化统计字段）
func (s *CategoryService) UpdateProductCount(ctx context.Context, shopNo, categoryNo int64, delta int) error {
	return s.categoryRepo.IncrementProductCount(ctx, shopNo, categoryNo, delta)
}

// buildFullName 祖先名 + 自身名，" > " 连接
func buildFullName(ancestors []*model.Category, currentName string) string {
	names := make([]string, 0, len(ancestors)+1)
	for _, a := range ancestors {
		names = append(names, a.CategoryName)
	}
	names = append(names, currentName)
	return strings.Join(names, " > ")
}
