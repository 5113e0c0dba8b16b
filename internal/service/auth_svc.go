package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/pkg/logger"
)

// AuthService 认证业务
type AuthService struct {
	userRepo repository.UserRepository
	// 调试模式下允许固定 dev token 直接登录
	debug bool
}

// NewAuthService 创建认证业务
func NewAuthService(userRepo repository.UserRepository, debug bool) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		debug:    debug,
	}
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

// Login 邮箱 + 密码登录
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露账号是否存在
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.L.Warn("touch last login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	logger.L.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("email", email))
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(middleware.GetJWTConfig().AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// Me 当前登录用户信息
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Logout 登出，Token 加入黑名单直到自然过期
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := middleware.ParseToken(tokenString)
	if err != nil {
		// 已过期/非法的 Token 无需拉黑
		return nil
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	middleware.BlacklistToken(tokenString, expiresAt)

	logger.L.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// ResolveDevUser 调试模式下的便捷登录用户（固定 admin 账号）
// 找不到管理员则返回 nil，不报错
func (s *AuthService) ResolveDevUser(ctx context.Context) *model.User {
	if !s.debug {
		return nil
	}
	user, err := s.userRepo.FindByUsername(ctx, "admin")
	if err != nil {
		return nil
	}
	return user
}

// DevLogin 调试模式便捷登录，给 admin 账号签发正式 Token
// 非调试模式下与资源不存在同样处理，不暴露接口
func (s *AuthService) DevLogin(ctx context.Context) (*LoginResult, error) {
	user := s.ResolveDevUser(ctx)
	if user == nil {
		return nil, ErrNotFound
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	logger.L.Warn("dev token issued", zap.Int64("user_id", user.ID))
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(middleware.GetJWTConfig().AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}
