package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/pkg/logger"
)

// 允许上传的扩展名
var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".pdf": true, ".txt": true, ".zip": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// FileService 文件业务
//
// 上传先落临时态，挂接到帖子后转永久；
// 超期未挂接的临时文件由定时任务清理。
type FileService struct {
	fileRepo repository.FileRepository
	postRepo repository.PostRepository
	storage  StorageProvider

	maxSize     int64
	tempFileTTL time.Duration
}

// NewFileService 创建文件业务
func NewFileService(fileRepo repository.FileRepository, postRepo repository.PostRepository, storage StorageProvider, maxSize int64, tempFileTTL time.Duration) *FileService {
	return &FileService{
		fileRepo:    fileRepo,
		postRepo:    postRepo,
		storage:     storage,
		maxSize:     maxSize,
		tempFileTTL: tempFileTTL,
	}
}

// UploadInput 上传参数
type UploadInput struct {
	OriginalFilename string
	Data             []byte
	MimeType         string
	UploaderID       int64
	UploadIP         string
	IsPublic         bool
}

// Upload 上传文件
// 新文件先标记为临时，挂接到帖子后才转为永久
func (s *FileService) Upload(ctx context.Context, input UploadInput) (*model.StoredFile, error) {
	if int64(len(input.Data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(input.OriginalFilename))
	if !allowedExtensions[ext] {
		return nil, ErrFileTypeNotAllowed
	}

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = detectContentType(input.Data)
	}

	storedFilename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	path, err := s.storage.Save(ctx, input.Data, storedFilename)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.tempFileTTL)
	file := &model.StoredFile{
		OriginalFilename: input.OriginalFilename,
		StoredFilename:   storedFilename,
		FilePath:         path,
		FileSize:         int64(len(input.Data)),
		MimeType:         mimeType,
		FileExtension:    ext,
		UploaderID:       input.UploaderID,
		UploadIP:         input.UploadIP,
		IsPublic:         input.IsPublic,
		IsTemp:           true,
		ExpiresAt:        &expiresAt,
		Metadata:         datatypes.JSON([]byte(`{}`)),
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// 入库失败时回收已写入的存储对象
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			logger.L.Warn("orphan file cleanup failed", zap.String("path", path), zap.Error(delErr))
		}
		return nil, err
	}

	logger.L.Info("file uploaded",
		zap.Int64("id", file.ID),
		zap.String("filename", input.OriginalFilename),
		zap.Int64("size", file.FileSize))
	return file, nil
}

// Get 文件元信息
func (s *FileService) Get(ctx context.Context, fileID int64) (*model.StoredFile, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.IsDeleted {
		return nil, ErrNotFound
	}
	return file, nil
}

// Download 下载文件内容，下载数 +1
func (s *FileService) Download(ctx context.Context, fileID int64, actor Actor) (*model.StoredFile, []byte, error) {
	file, err := s.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if !file.CanAccess(actor.UserID, actor.IsAdmin) {
		return nil, nil, ErrPermissionDenied
	}

	data, err := s.storage.Load(ctx, file.FilePath)
	if err != nil {
		return nil, nil, err
	}

	if err := s.fileRepo.IncrementDownloadCount(ctx, fileID); err != nil {
		logger.L.Warn("increment download count failed", zap.Int64("file_id", fileID), zap.Error(err))
	}
	return file, data, nil
}

// AttachToPost 将文件挂接到帖子，临时文件转永久
func (s *FileService) AttachToPost(ctx context.Context, postID int64, fileIDs []int64, actor Actor) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !post.CanModify(actor.UserID, actor.IsAdmin) {
		return ErrPermissionDenied
	}

	attachments := make([]model.PostAttachment, 0, len(fileIDs))
	for i, fileID := range fileIDs {
		file, err := s.fileRepo.FindByID(ctx, fileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if file.IsDeleted {
			return ErrNotFound
		}
		attachments = append(attachments, model.PostAttachment{
			PostID:       postID,
			FileID:       fileID,
			DisplayOrder: i + 1,
		})
	}

	// 挂接与转永久放同一事务，避免悬空的永久文件
	return s.fileRepo.Transaction(ctx, func(txRepo repository.FileRepository) error {
		if err := txRepo.AttachToPost(ctx, attachments); err != nil {
			return err
		}
		return txRepo.MarkPermanent(ctx, fileIDs)
	})
}

// ListPostAttachments 帖子的附件列表
func (s *FileService) ListPostAttachments(ctx context.Context, postID int64) ([]*model.PostAttachment, error) {
	return s.fileRepo.ListAttachments(ctx, postID)
}

// Delete 删除文件，上传者本人或管理员
func (s *FileService) Delete(ctx context.Context, fileID int64, actor Actor) error {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !file.CanDelete(actor.UserID, actor.IsAdmin) {
		return ErrPermissionDenied
	}
	if file.IsDeleted {
		return ErrAlreadyDeleted
	}

	if err := s.fileRepo.SoftDelete(ctx, fileID); err != nil {
		return err
	}
	logger.L.Info("file deleted", zap.Int64("id", fileID))
	return nil
}

// CleanupExpiredTemp 清理超期的临时文件，返回清理数量
// 由定时任务调用，存储对象与记录一并删除
func (s *FileService) CleanupExpiredTemp(ctx context.Context, limit int) (int, error) {
	files, err := s.fileRepo.ListExpiredTemp(ctx, time.Now(), limit)
	if err != nil {
		return 0, err
	}

	cleaned := 0
	for _, file := range files {
		if err := s.storage.Delete(ctx, file.FilePath); err != nil {
			logger.L.Warn("delete storage object failed",
				zap.Int64("file_id", file.ID),
				zap.String("path", file.FilePath),
				zap.Error(err))
			continue
		}
		if err := s.fileRepo.HardDelete(ctx, file.ID); err != nil {
			logger.L.Warn("delete file record failed", zap.Int64("file_id", file.ID), zap.Error(err))
			continue
		}
		cleaned++
	}

	if cleaned > 0 {
		logger.L.Info("expired temp files cleaned", zap.Int("count", cleaned))
	}
	return cleaned, nil
}
