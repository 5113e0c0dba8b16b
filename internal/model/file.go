package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".svg": true,
}

// StoredFile 上传文件
// 上传后先作为临时文件 (IsTemp)，挂载到帖子后转正；过期的临时文件被定时清理
type StoredFile struct {
	BaseModel
	OriginalFilename string `gorm:"size:255;not null" json:"original_filename"`
	StoredFilename   string `gorm:"size:255;uniqueIndex;not null" json:"stored_filename"`
	FilePath         string `gorm:"size:500" json:"file_path"`
	FileSize         int64  `gorm:"default:0" json:"file_size"`
	MimeType         string `gorm:"size:100" json:"mime_type"`
	FileExtension    string `gorm:"size:20" json:"file_extension"`
	UploaderID       int64  `gorm:"index" json:"uploader_id"`
	Uploader         *User  `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	UploadIP         string `gorm:"size:45" json:"-"`
	DownloadCount    int    `gorm:"default:0" json:"download_count"`
	IsDeleted        bool   `gorm:"default:false" json:"is_deleted"`
	IsPublic         bool   `gorm:"default:true" json:"is_public"`
	IsTemp           bool   `gorm:"default:true;index" json:"is_temp"`
	ExpiresAt        *time.Time `gorm:"index" json:"-"`

	// 存储提供者侧的附加信息 (bucket、region、缩略图等)
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

// IsImage 图片文件判定
func (f *StoredFile) IsImage() bool {
	if f.FileExtension != "" {
		return imageExtensions[strings.ToLower(f.FileExtension)]
	}
	return strings.HasPrefix(f.MimeType, "image/")
}

// CanAccess 公开文件任何人可访问，私有文件仅上传者与管理员
func (f *StoredFile) CanAccess(userID int64, isAdmin bool) bool {
	if f.IsDeleted {
		return isAdmin
	}
	if f.IsPublic {
		return true
	}
	return isAdmin || f.UploaderID == userID
}

// CanDelete 上传者本人或管理员
func (f *StoredFile) CanDelete(userID int64, isAdmin bool) bool {
	return isAdmin || f.UploaderID == userID
}

// PostAttachment 帖子与文件的关联
type PostAttachment struct {
	BaseModel
	PostID       int64       `gorm:"uniqueIndex:idx_attach_post_file;not null" json:"post_id"`
	FileID       int64       `gorm:"uniqueIndex:idx_attach_post_file;not null" json:"file_id"`
	File         *StoredFile `gorm:"foreignKey:FileID" json:"file,omitempty"`
	DisplayOrder int         `gorm:"default:0" json:"display_order"`
}
