package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCategoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Category{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newCategorySvc(t *testing.T) (*CategoryService, *gorm.DB) {
	db := setupCategoryTestDB(t)
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

// ==================== 单元测试 ====================

func TestCategoryService_CreateRoot(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName: "Clothing",
		UseDisplay:   true,
	})
	if err != nil {
		t.Fatalf("创建根分类失败: %v", err)
	}

	if cat.CategoryPath != "1/" {
		t.Errorf("根分类路径 = %q, want %q", cat.CategoryPath, "1/")
	}
	if cat.CategoryDepth != 1 {
		t.Errorf("根分类深度 = %d, want 1", cat.CategoryDepth)
	}
	if cat.FullCategoryName != "Clothing" {
		t.Errorf("全名 = %q, want %q", cat.FullCategoryName, "Clothing")
	}
	if cat.DisplayOrder != 1 {
		t.Errorf("自动分配的排序 = %d, want 1", cat.DisplayOrder)
	}

	// 落库的路径必须是回填后的最终路径
	stored, err := svc.Get(ctx, 1, cat.CategoryNo)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if stored.CategoryPath != "1/" {
		t.Errorf("落库路径 = %q, want %q", stored.CategoryPath, "1/")
	}
}

func TestCategoryService_CreateChildPath(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Clothing", UseDisplay: true})
	if err != nil {
		t.Fatalf("创建根分类失败: %v", err)
	}

	child, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName:     "Pants",
		ParentCategoryNo: &root.CategoryNo,
		UseDisplay:       true,
	})
	if err != nil {
		t.Fatalf("创建子分类失败: %v", err)
	}

	if child.CategoryPath != "1/2/" {
		t.Errorf("子分类路径 = %q, want %q", child.CategoryPath, "1/2/")
	}
	if child.CategoryDepth != 2 {
		t.Errorf("子分类深度 = %d, want 2", child.CategoryDepth)
	}
	if child.FullCategoryName != "Clothing > Pants" {
		t.Errorf("全名 = %q, want %q", child.FullCategoryName, "Clothing > Pants")
	}
}

func TestCategoryService_MaxDepth(t *testing.T) {
	svc, db := newCategorySvc(t)
	ctx := context.Background()

	// 建满 4 级
	var parentNo *int64
	names := []string{"L1", "L2", "L3", "L4"}
	var leaf *model.Category
	for _, name := range names {
		cat, err := svc.Create(ctx, 1, CategoryCreateInput{
			CategoryName:     name,
			ParentCategoryNo: parentNo,
			UseDisplay:       true,
		})
		if err != nil {
			t.Fatalf("创建 %s 失败: %v", name, err)
		}
		parentNo = &cat.CategoryNo
		leaf = cat
	}

	if leaf.CategoryDepth != model.CategoryMaxDepth {
		t.Fatalf("叶子深度 = %d, want %d", leaf.CategoryDepth, model.CategoryMaxDepth)
	}

	// 第 5 级必须被拒绝，且不落任何数据
	var before int64
	db.Model(&model.Category{}).Count(&before)

	_, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName:     "L5",
		ParentCategoryNo: &leaf.CategoryNo,
		UseDisplay:       true,
	})
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("超深创建应返回 ErrMaxDepthExceeded, got %v", err)
	}

	var after int64
	db.Model(&model.Category{}).Count(&after)
	if before != after {
		t.Errorf("被拒绝的创建不应写库: before=%d after=%d", before, after)
	}
}

func TestCategoryService_MissingParent(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName:     "Orphan",
		ParentCategoryNo: int64Ptr(999),
		UseDisplay:       true,
	})
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("父分类不存在应返回 ErrParentNotFound, got %v", err)
	}
}

func TestCategoryService_CodeValidation(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	// 编码格式非法
	_, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName: "Bad",
		CategoryCode: strPtr("UPPER CASE"),
		UseDisplay:   true,
	})
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("非法编码应返回 ErrInvalidCode, got %v", err)
	}

	if _, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName: "First",
		CategoryCode: strPtr("clothing"),
		UseDisplay:   true,
	}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 同店铺内编码唯一
	_, err = svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName: "Second",
		CategoryCode: strPtr("clothing"),
		UseDisplay:   true,
	})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("重复编码应返回 ErrDuplicateCode, got %v", err)
	}

	// 不同店铺可以用同一个编码
	if _, err := svc.Create(ctx, 2, CategoryCreateInput{
		CategoryName: "Other Shop",
		CategoryCode: strPtr("clothing"),
		UseDisplay:   true,
	}); err != nil {
		t.Fatalf("不同店铺同编码应允许: %v", err)
	}
}

func TestCategoryService_DeleteGates(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	root, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Clothing", UseDisplay: true})
	child, _ := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName:     "Pants",
		ParentCategoryNo: &root.CategoryNo,
		UseDisplay:       true,
	})

	// 有子分类不可删
	if _, err := svc.Delete(ctx, 1, root.CategoryNo, false); !errors.Is(err, ErrHasChildren) {
		t.Fatalf("有子分类应返回 ErrHasChildren, got %v", err)
	}

	// 挂着商品不可删
	if err := svc.UpdateProductCount(ctx, 1, child.CategoryNo, 3); err != nil {
		t.Fatalf("商品数更新失败: %v", err)
	}
	if _, err := svc.Delete(ctx, 1, child.CategoryNo, false); !errors.Is(err, ErrHasProducts) {
		t.Fatalf("有商品应返回 ErrHasProducts, got %v", err)
	}

	// 商品清零后可删
	if err := svc.UpdateProductCount(ctx, 1, child.CategoryNo, -3); err != nil {
		t.Fatalf("商品数更新失败: %v", err)
	}
	if _, err := svc.Delete(ctx, 1, child.CategoryNo, false); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 软删后仍可按 ID 查到（带删除标记）
	deleted, err := svc.Get(ctx, 1, child.CategoryNo)
	if err != nil {
		t.Fatalf("软删后查询失败: %v", err)
	}
	if !deleted.IsDeleted() {
		t.Errorf("软删后应带删除标记")
	}

	// 恢复
	restored, err := svc.Restore(ctx, 1, child.CategoryNo)
	if err != nil {
		t.Fatalf("恢复失败: %v", err)
	}
	if restored.IsDeleted() {
		t.Errorf("恢复后不应带删除标记")
	}

	// 重复恢复被拒绝
	if _, err := svc.Restore(ctx, 1, child.CategoryNo); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("恢复活跃分类应返回 ErrAlreadyActive, got %v", err)
	}
}

func TestCategoryService_ReplyToDeletedParent(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	root, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Clothing", UseDisplay: true})
	if _, err := svc.Delete(ctx, 1, root.CategoryNo, false); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 已删除的分类下不可建子分类
	_, err := svc.Create(ctx, 1, CategoryCreateInput{
		CategoryName:     "Pants",
		ParentCategoryNo: &root.CategoryNo,
		UseDisplay:       true,
	})
	if !errors.Is(err, ErrParentDeleted) {
		t.Fatalf("已删父分类应返回 ErrParentDeleted, got %v", err)
	}
}

func TestCategoryService_DescendantsAndBreadcrumb(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	// 1: Clothing
	//   2: Pants
	//     4: Jeans
	//   3: Shirts
	clothing, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Clothing", UseDisplay: true})
	pants, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Pants", ParentCategoryNo: &clothing.CategoryNo, UseDisplay: true})
	shirts, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Shirts", ParentCategoryNo: &clothing.CategoryNo, UseDisplay: true})
	jeans, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Jeans", ParentCategoryNo: &pants.CategoryNo, UseDisplay: true})

	// 子孙 = 路径前缀命中的全部节点
	descendants, err := svc.GetDescendants(ctx, 1, clothing.CategoryNo, false, nil)
	if err != nil {
		t.Fatalf("子孙查询失败: %v", err)
	}
	if len(descendants) != 3 {
		t.Fatalf("子孙数 = %d, want 3", len(descendants))
	}

	// includeSelf 含自身
	withSelf, _ := svc.GetDescendants(ctx, 1, clothing.CategoryNo, true, nil)
	if len(withSelf) != 4 {
		t.Fatalf("含自身的子孙数 = %d, want 4", len(withSelf))
	}

	// 面包屑: 根到自身，按深度升序
	breadcrumb, err := svc.GetBreadcrumb(ctx, 1, jeans.CategoryNo)
	if err != nil {
		t.Fatalf("面包屑查询失败: %v", err)
	}
	wantNames := []string{"Clothing", "Pants", "Jeans"}
	if len(breadcrumb) != len(wantNames) {
		t.Fatalf("面包屑长度 = %d, want %d", len(breadcrumb), len(wantNames))
	}
	for i, want := range wantNames {
		if breadcrumb[i].CategoryName != want {
			t.Errorf("面包屑[%d] = %q, want %q", i, breadcrumb[i].CategoryName, want)
		}
	}

	// 整棵树
	forest, err := svc.GetTree(ctx, 1, nil, nil)
	if err != nil {
		t.Fatalf("树查询失败: %v", err)
	}
	if len(forest) != 1 || forest[0].CategoryNo != clothing.CategoryNo {
		t.Fatalf("森林根节点错误")
	}
	if len(forest[0].Children) != 2 {
		t.Fatalf("Clothing 子节点数 = %d, want 2", len(forest[0].Children))
	}

	// 子树: 直接子分类作为顶层，父分类自身不出现
	subtree, err := svc.GetTree(ctx, 1, &clothing.CategoryNo, nil)
	if err != nil {
		t.Fatalf("子树查询失败: %v", err)
	}
	if len(subtree) != 2 {
		t.Fatalf("子树顶层数 = %d, want 2", len(subtree))
	}
	for _, n := range subtree {
		if n.CategoryNo == clothing.CategoryNo {
			t.Errorf("子树不应包含父分类自身")
		}
	}
	// Pants 下挂着 Jeans
	for _, n := range subtree {
		if n.CategoryNo == pants.CategoryNo {
			if len(n.Children) != 1 || n.Children[0].CategoryNo != jeans.CategoryNo {
				t.Errorf("Pants 应有子节点 Jeans")
			}
		}
	}
	_ = shirts
}

func TestCategoryService_ToggleDisplay(t *testing.T) {
	svc, _ := newCategorySvc(t)
	ctx := context.Background()

	cat, _ := svc.Create(ctx, 1, CategoryCreateInput{CategoryName: "Clothing", UseDisplay: true})

	toggled, err := svc.ToggleDisplay(ctx, 1, cat.CategoryNo)
	if err != nil {
		t.Fatalf("切换失败: %v", err)
	}
	if toggled.UseDisplay {
		t.Errorf("切换后 use_display 应为 false")
	}

	toggled, _ = svc.ToggleDisplay(ctx, 1, cat.CategoryNo)
	if !toggled.UseDisplay {
		t.Errorf("再次切换后 use_display 应为 true")
	}
}
