package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/pkg/logger"
)

// PostService 帖子业务
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewPostService 创建帖子业务
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// PostCreateInput 创建参数
type PostCreateInput struct {
	Title   string
	Content string
	// 游客发帖密码（明文，落库前 bcrypt）
	Password string
}

// PostUpdateInput 修改参数，nil 表示不更新
type PostUpdateInput struct {
	Title   *string
	Content *string
}

// Create 发帖
// authorID 为 model.GuestUserID 表示游客
func (s *PostService) Create(ctx context.Context, authorID int64, input PostCreateInput) (*model.Post, error) {
	passwordHash := ""
	if authorID == model.GuestUserID && input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hashed)
	}

	post := &model.Post{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
		Password: passwordHash,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	logger.L.Info("post created", zap.Int64("id", post.ID), zap.Int64("author_id", authorID))
	return post, nil
}

// Get 读帖，countView 为 true 时浏览数 +1
func (s *PostService) Get(ctx context.Context, postID int64, countView bool) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrNotFound
	}

	if countView {
		if err := s.postRepo.IncrementViewCount(ctx, postID); err != nil {
			logger.L.Warn("increment view count failed", zap.Int64("post_id", postID), zap.Error(err))
		} else {
			post.ViewCount++
		}
	}
	return post, nil
}

// List 帖子列表，置顶优先
func (s *PostService) List(ctx context.Context, filter repository.PostFilter) ([]*model.Post, int64, error) {
	return s.postRepo.List(ctx, filter)
}

// Update 修改帖子
// 锁定的帖子不允许编辑，管理员也不例外
func (s *PostService) Update(ctx context.Context, postID int64, input PostUpdateInput, actor Actor, guestPassword string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrPostDeleted
	}
	if post.IsLocked {
		return nil, ErrPostLocked
	}
	if err := s.authorize(post, actor, guestPassword); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Content != nil {
		fields["content"] = *input.Content
	}
	if len(fields) > 0 {
		if err := s.postRepo.UpdateFields(ctx, postID, fields); err != nil {
			return nil, err
		}
	}

	logger.L.Info("post updated", zap.Int64("id", postID))
	return s.postRepo.FindByID(ctx, postID)
}

// Delete 删帖
// 软删保留记录，硬删仅管理员
func (s *PostService) Delete(ctx context.Context, postID int64, actor Actor, guestPassword string, hardDelete bool) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.authorize(post, actor, guestPassword); err != nil {
		return err
	}

	if hardDelete && actor.IsAdmin {
		if err := s.postRepo.HardDelete(ctx, postID); err != nil {
			return err
		}
		logger.L.Info("post hard deleted", zap.Int64("id", postID))
		return nil
	}

	if post.IsDeleted {
		return ErrAlreadyDeleted
	}
	if err := s.postRepo.SoftDelete(ctx, postID); err != nil {
		return err
	}
	logger.L.Info("post soft deleted", zap.Int64("id", postID))
	return nil
}

// Restore 恢复软删除的帖子（管理员）
func (s *PostService) Restore(ctx context.Context, postID int64) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !post.IsDeleted {
		return nil, ErrAlreadyActive
	}

	if err := s.postRepo.Restore(ctx, postID); err != nil {
		return nil, err
	}
	logger.L.Info("post restored", zap.Int64("id", postID))
	return s.postRepo.FindByID(ctx, postID)
}

// Like 点赞
func (s *PostService) Like(ctx context.Context, postID int64) (*model.Post, error) {
	return s.adjustLikeCount(ctx, postID, 1)
}

// Unlike 取消点赞，计数不会降到 0 以下
func (s *PostService) Unlike(ctx context.Context, postID int64) (*model.Post, error) {
	return s.adjustLikeCount(ctx, postID, -1)
}

func (s *PostService) adjustLikeCount(ctx context.Context, postID int64, delta int) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrPostDeleted
	}
	if delta < 0 && post.LikeCount == 0 {
		return post, nil
	}

	if err := s.postRepo.IncrementLikeCount(ctx, postID, delta); err != nil {
		return nil, err
	}
	post.LikeCount += delta
	return post, nil
}

// SetPinned 置顶/取消置顶（管理员）
func (s *PostService) SetPinned(ctx context.Context, postID int64, pinned bool) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.postRepo.UpdateFields(ctx, postID, map[string]interface{}{"is_pinned": pinned})
}

// SetLocked 锁定/解锁（管理员）
// 锁定后禁止编辑和新评论
func (s *PostService) SetLocked(ctx context.Context, postID int64, locked bool) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.postRepo.UpdateFields(ctx, postID, map[string]interface{}{"is_locked": locked})
}

// CommentCount 帖子的有效评论数
func (s *PostService) CommentCount(ctx context.Context, postID int64) (int64, error) {
	return s.commentRepo.CountByPost(ctx, postID, false)
}

// authorize 作者本人/管理员/游客密码三选一
func (s *PostService) authorize(post *model.Post, actor Actor, guestPassword string) error {
	if post.CanModify(actor.UserID, actor.IsAdmin) {
		return nil
	}
	// 游客帖凭密码操作
	if post.AuthorID == model.GuestUserID && post.Password != "" && guestPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(post.Password), []byte(guestPassword)) == nil {
			return nil
		}
	}
	return ErrPermissionDenied
}
