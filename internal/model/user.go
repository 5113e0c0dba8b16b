package model

import "time"

// GuestUserID 游客用户 ID，游客发表的评论/帖子都归属这个 ID
const GuestUserID int64 = 0

// User 用户
type User struct {
	BaseModel
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// CanModify 是否有权修改目标用户（本人或管理员）
func (u *User) CanModify(targetUserID int64) bool {
	return u.IsAdmin || u.ID == targetUserID
}
