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

// UserService 用户业务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户业务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserCreateInput 注册参数
type UserCreateInput struct {
	Email    string
	Username string
	Password string
}

// UserUpdateInput 修改参数，nil 表示不更新
type UserUpdateInput struct {
	Username *string
	Password *string
}

// Register 注册
func (s *UserService) Register(ctx context.Context, input UserCreateInput) (*model.User, error) {
	// 邮箱、用户名唯一性校验
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.L.Info("user registered", zap.Int64("id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Get 单个用户
func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List 用户列表（管理员）
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]*model.User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

// Update 修改资料，本人或管理员
func (s *UserService) Update(ctx context.Context, userID int64, input UserUpdateInput, actor Actor) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.UserID != user.ID && !actor.IsAdmin {
		return nil, ErrPermissionDenied
	}

	fields := map[string]interface{}{}
	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(ctx, *input.Username); err == nil {
			return nil, ErrDuplicateUsername
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		fields["username"] = *input.Username
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = string(hashed)
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.userRepo.FindByID(ctx, userID)
}

// Deactivate 停用账号，本人或管理员
// 停用即软删，历史帖子和评论保留
func (s *UserService) Deactivate(ctx context.Context, userID int64, actor Actor) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if actor.UserID != user.ID && !actor.IsAdmin {
		return ErrPermissionDenied
	}
	if !user.IsActive {
		return ErrAlreadyDeleted
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	logger.L.Info("user deactivated", zap.Int64("id", userID))
	return nil
}

// Activate 恢复账号（管理员）
func (s *UserService) Activate(ctx context.Context, userID int64) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.IsActive {
		return ErrAlreadyActive
	}

	if err := s.userRepo.Activate(ctx, userID); err != nil {
		return err
	}
	logger.L.Info("user activated", zap.Int64("id", userID))
	return nil
}

// HardDelete 物理删除账号（管理员）
// 帖子和评论不级联，author_id 留空悬挂
func (s *UserService) HardDelete(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.userRepo.HardDelete(ctx, userID); err != nil {
		return err
	}
	logger.L.Warn("user hard deleted", zap.Int64("id", userID))
	return nil
}
