package model

// Post 帖子
type Post struct {
	BaseModel
	Title     string `gorm:"size:200;not null;index" json:"title"`
	Content   string `gorm:"type:text" json:"content"`
	AuthorID  int64  `gorm:"index;not null" json:"author_id"`
	Author    *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ViewCount int    `gorm:"default:0" json:"view_count"`
	LikeCount int    `gorm:"default:0" json:"like_count"`
	IsDeleted bool   `gorm:"default:false;index" json:"is_deleted"`
	IsPinned  bool   `gorm:"default:false" json:"is_pinned"`
	IsLocked  bool   `gorm:"default:false" json:"is_locked"`
	// 游客帖子密码哈希，注册用户为空
	Password string `gorm:"size:255" json:"-"`
}

// CanModify 本人或管理员可修改
func (p *Post) CanModify(userID int64, isAdmin bool) bool {
	return isAdmin || p.AuthorID == userID
}

// CanDelete 本人或管理员可删除
func (p *Post) CanDelete(userID int64, isAdmin bool) bool {
	return isAdmin || p.AuthorID == userID
}

// IsEditable 未删除且未锁定才能编辑
func (p *Post) IsEditable() bool {
	return !p.IsDeleted && !p.IsLocked
}
