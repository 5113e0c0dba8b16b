package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"forum_shop_v1_202608/pkg/tree"
)

// CategoryMaxDepth 分类最大深度 (1:大 2:中 3:小 4:细)
const CategoryMaxDepth = 4

// Category 商品分类，按店铺隔离的物化路径树
//
// CategoryPath 为祖先 ID 链，带结尾分隔符: 根 "1/"，子级 "1/27/105/"。
// CategoryDepth = 路径段数，根为 1。Path 只在创建时写入，没有移动操作。
type Category struct {
	CategoryNo       int64   `gorm:"primaryKey;autoIncrement;column:category_no" json:"category_no"`
	ShopNo           int64   `gorm:"column:shop_no;not null;index:idx_cat_shop_path;uniqueIndex:idx_cat_shop_code" json:"shop_no"`
	ParentCategoryNo *int64  `gorm:"column:parent_category_no;index" json:"parent_category_no,omitempty"`
	CategoryDepth    int     `gorm:"default:1;not null" json:"category_depth"`
	CategoryPath     string  `gorm:"size:255;index:idx_cat_shop_path" json:"category_path"`
	CategoryName     string  `gorm:"size:100;not null" json:"category_name"`
	FullCategoryName string  `gorm:"size:500" json:"full_category_name"`
	DisplayOrder     int     `gorm:"default:0" json:"display_order"`
	UseDisplay       bool    `gorm:"default:true" json:"use_display"`
	CategoryCode     *string `gorm:"size:50;uniqueIndex:idx_cat_shop_code" json:"category_code,omitempty"`

	CategoryDescription string `gorm:"type:text" json:"category_description,omitempty"`
	CategoryImageURL    string `gorm:"size:500" json:"category_image_url,omitempty"`

	// 统计 (非规范化)
	ProductCount int `gorm:"default:0" json:"product_count"`

	// 标签类数据 (Postgres Array)
	HashTags     pq.StringArray `gorm:"type:text[]" json:"hash_tags,omitempty"`
	MetaKeywords string         `gorm:"size:500" json:"meta_keywords,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Tree 结构组装用，不落库
	Children []*Category `gorm:"-" json:"children,omitempty"`
}

func (Category) TableName() string { return "shop_categories" }

// IsRoot 是否根分类
func (c *Category) IsRoot() bool {
	return c.ParentCategoryNo == nil && c.CategoryDepth == 1
}

// IsDeleted 是否已软删除
func (c *Category) IsDeleted() bool {
	return c.DeletedAt.Valid
}

// IsActive 展示中且未删除
func (c *Category) IsActive() bool {
	return c.UseDisplay && !c.IsDeleted()
}

// CanHaveChildren 是否还能挂子分类（最大 4 级）
func (c *Category) CanHaveChildren() bool {
	return c.CategoryDepth < CategoryMaxDepth
}

// PathIDs 路径上的祖先 ID 列表（含自身）
func (c *Category) PathIDs() []int64 {
	return tree.SplitIDs(c.CategoryPath)
}

// AddChild Tree 组装用
func (c *Category) AddChild(child *Category) {
	c.Children = append(c.Children, child)
}
