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
	"forum_shop_v1_202608/pkg/tree"
)

// CommentService 评论业务
//
// 树形评论的创建同样走两段式路径写入（占位 → 回填），回复前校验
// 父评论存在、未删除、深度不超限（0-3）。
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService 创建评论业务
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CommentCreateInput 创建参数
type CommentCreateInput struct {
	Content  string
	ParentID *int64
	// 游客评论密码（明文，落库前 bcrypt）
	Password string
}

// Actor 操作者身份，授权信息由外层注入
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// Create 发表评论
// authorID 为 model.GuestUserID 表示游客
func (s *CommentService) Create(ctx context.Context, postID, authorID int64, input CommentCreateInput) (*model.Comment, error) {
	logger.L.Info("creating comment",
		zap.Int64("post_id", postID),
		zap.Int64("author_id", authorID))

	// 帖子必须存在且未删除
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

	// 回复校验，必须发生在任何写入之前
	var parent *model.Comment
	depth := 0

	if input.ParentID != nil {
		parent, err = s.commentRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.IsDeleted {
			return nil, ErrReplyToDeleted
		}

		depth = parent.Depth + 1
		if depth > model.CommentMaxDepth {
			return nil, ErrMaxDepthExceeded
		}
	}

	// order_num 自动分配: 同级最大值 + 1
	maxOrder, err := s.commentRepo.MaxOrderNum(ctx, postID, input.ParentID)
	if err != nil {
		return nil, err
	}

	passwordHash := ""
	if authorID == model.GuestUserID && input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hashed)
	}

	parentPath := ""
	if parent != nil {
		parentPath = parent.Path
	}

	comment := &model.Comment{
		PostID:   postID,
		ParentID: input.ParentID,
		AuthorID: authorID,
		Content:  input.Content,
		Depth:    depth,
		Path:     tree.CommentTempPath(parentPath),
		OrderNum: maxOrder + 1,
		Password: passwordHash,
	}

	// 两段式写入: 插入占位路径 → 用生成的 ID 回填，单事务保证原子性
	err = s.commentRepo.Transaction(ctx, func(txRepo repository.CommentRepository) error {
		if err := txRepo.Create(ctx, comment); err != nil {
			return err
		}

		finalPath := tree.CommentPath(parentPath, comment.ID)
		if err := txRepo.UpdatePath(ctx, comment.ID, finalPath); err != nil {
			return err
		}
		comment.Path = finalPath
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L.Info("comment created",
		zap.Int64("id", comment.ID),
		zap.Int("depth", depth),
		zap.String("path", comment.Path))
	return comment, nil
}

// Get 单条评论（含作者）
func (s *CommentService) Get(ctx context.Context, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByIDWithAuthor(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

// ListFlat 帖子的评论平铺列表（path 升序）
func (s *CommentService) ListFlat(ctx context.Context, postID int64, includeDeleted bool) ([]*model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, includeDeleted)
}

// ListTree 帖子的评论树
func (s *CommentService) ListTree(ctx context.Context, postID int64, includeDeleted bool) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, includeDeleted)
	if err != nil {
		return nil, err
	}

	// 输入按 path 升序，父节点必然先于子节点出现
	roots := tree.Build(comments,
		func(c *model.Comment) int64 { return c.ID },
		func(c *model.Comment) (int64, bool) {
			if c.ParentID == nil {
				return 0, false
			}
			return *c.ParentID, true
		},
		func(p, c *model.Comment) { p.AddChild(c) },
	)
	return roots, nil
}

// Count 帖子的有效评论数
func (s *CommentService) Count(ctx context.Context, postID int64) (int64, error) {
	return s.commentRepo.CountByPost(ctx, postID, false)
}

// Replies 直接子回复列表
func (s *CommentService) Replies(ctx context.Context, parentID int64, includeDeleted bool) ([]*model.Comment, error) {
	if _, err := s.commentRepo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.commentRepo.ListByParent(ctx, parentID, includeDeleted)
}

// CommentThread 评论上下文: 根到父级的祖先链 + 以该评论为根的子树
type CommentThread struct {
	Ancestors []*model.Comment `json:"ancestors"`
	Comment   *model.Comment   `json:"comment"`
}

// Thread 单条评论的完整上下文
func (s *CommentService) Thread(ctx context.Context, commentID int64) (*CommentThread, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// 祖先链: 路径拆解后批量查，不含自身
	pathIDs := comment.PathIDs()
	if len(pathIDs) > 0 {
		pathIDs = pathIDs[:len(pathIDs)-1]
	}
	ancestors, err := s.commentRepo.FindAncestors(ctx, pathIDs)
	if err != nil {
		return nil, err
	}

	// 子树: 路径前缀查询（含自身），再组装成树
	subtree, err := s.commentRepo.FindDescendants(ctx, comment.PostID, comment.Path, true)
	if err != nil {
		return nil, err
	}

	roots := tree.Build(subtree,
		func(c *model.Comment) int64 { return c.ID },
		func(c *model.Comment) (int64, bool) {
			if c.ID == commentID || c.ParentID == nil {
				return 0, false
			}
			return *c.ParentID, true
		},
		func(p, c *model.Comment) { p.AddChild(c) },
	)

	thread := &CommentThread{Ancestors: ancestors, Comment: comment}
	if len(roots) > 0 {
		thread.Comment = roots[0]
	}
	return thread, nil
}

// Update 修改评论内容
func (s *CommentService) Update(ctx context.Context, commentID int64, content string, actor Actor) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, ErrAlreadyDeleted
	}
	if !comment.CanModify(actor.UserID, actor.IsAdmin) {
		return nil, ErrPermissionDenied
	}

	if err := s.commentRepo.UpdateFields(ctx, commentID, map[string]interface{}{
		"content": content,
	}); err != nil {
		return nil, err
	}

	logger.L.Info("comment updated", zap.Int64("id", commentID))
	return s.commentRepo.FindByID(ctx, commentID)
}

// Delete 删除评论
//
// 软删: 任何本人/管理员都可执行，内容替换为占位文案，子孙保持可见。
// 硬删: 仅管理员，子孙一并物理删除（存储层前缀级联）。
func (s *CommentService) Delete(ctx context.Context, commentID int64, actor Actor, hardDelete bool) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !comment.CanDelete(actor.UserID, actor.IsAdmin) {
		return nil, ErrPermissionDenied
	}

	if hardDelete && actor.IsAdmin {
		if err := s.commentRepo.HardDeleteTree(ctx, comment); err != nil {
			return nil, err
		}
		logger.L.Info("comment hard deleted", zap.Int64("id", commentID))
	} else {
		if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
			return nil, err
		}
		logger.L.Info("comment soft deleted", zap.Int64("id", commentID))
	}

	return comment, nil
}

// Restore 恢复软删除的评论（管理员）
// 原内容不保留，恢复后内容仍是占位文案
func (s *CommentService) Restore(ctx context.Context, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !comment.IsDeleted {
		return nil, ErrAlreadyActive
	}

	if err := s.commentRepo.Restore(ctx, commentID); err != nil {
		return nil, err
	}

	logger.L.Info("comment restored", zap.Int64("id", commentID))
	return s.commentRepo.FindByID(ctx, commentID)
}
