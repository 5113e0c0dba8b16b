package model

import (
	"forum_shop_v1_202608/pkg/tree"
)

// CommentMaxDepth 评论最大深度 (0: 顶层, 1-3: 逐级回复)
const CommentMaxDepth = 3

// DeletedCommentContent 软删除后展示的占位内容
// 保留原系统的占位文案，保证 API 行为兼容
const DeletedCommentContent = "삭제된 댓글입니다"

// Comment 评论，物化路径组织的树形结构
//
// Path 为祖先 ID 链，不带结尾分隔符: 顶层 "100"，回复 "100/101"。
// Depth = 路径段数 - 1。Path 只在创建时写入，没有移动操作。
type Comment struct {
	BaseModel
	PostID   int64  `gorm:"index:idx_comment_post_path;not null" json:"post_id"`
	ParentID *int64 `gorm:"index" json:"parent_id,omitempty"`
	AuthorID int64  `gorm:"index;not null" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Depth    int    `gorm:"default:0;not null" json:"depth"`
	Path     string `gorm:"size:255;index:idx_comment_post_path" json:"path"`
	OrderNum int    `gorm:"default:0" json:"order_num"`
	IsDeleted bool  `gorm:"default:false" json:"is_deleted"`
	// 游客评论密码哈希
	Password string `gorm:"size:255" json:"-"`

	// Tree 结构组装用，不落库
	Children []*Comment `gorm:"-" json:"children,omitempty"`
}

// IsRoot 是否顶层评论
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil && c.Depth == 0
}

// CanModify 本人或管理员可修改
func (c *Comment) CanModify(userID int64, isAdmin bool) bool {
	return isAdmin || c.AuthorID == userID
}

// CanDelete 本人或管理员可删除
func (c *Comment) CanDelete(userID int64, isAdmin bool) bool {
	return isAdmin || c.AuthorID == userID
}

// PathIDs 路径上的祖先 ID 列表（含自身）
func (c *Comment) PathIDs() []int64 {
	return tree.SplitIDs(c.Path)
}

// AddChild Tree 组装用
func (c *Comment) AddChild(child *Comment) {
	c.Children = append(c.Children, child)
}
