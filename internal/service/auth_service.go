package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"training_portal_backend/internal/config"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Department      string `json:"department"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

type LoginResult struct {
	Token string              `json:"token"`
	User  model.PrincipalView `json:"user"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Store    KeyValueStore

	jwtSecret  string
	jwtExpire  time.Duration
	prefix     string
	loginDelay atomic.Int64
}

func NewAuthService(userRepo *repository.UserRepository, store KeyValueStore, cfg *config.Config) *AuthService {
	s := &AuthService{
		UserRepo:  userRepo,
		Store:     store,
		jwtSecret: cfg.JWT.Secret,
		jwtExpire: cfg.JWT.ExpireTime,
		prefix:    cfg.Session.Prefix,
	}
	if s.prefix == "" {
		s.prefix = "session"
	}
	s.SetLoginDelay(cfg.Auth.LoginDelay)
	return s
}

// SetLoginDelay 配置热更新时调用
func (s *AuthService) SetLoginDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.loginDelay.Store(int64(d))
}

func (s *AuthService) LoginDelay() time.Duration {
	return time.Duration(s.loginDelay.Load())
}

func (s *AuthService) loggedInKey(userID uint) string {
	return fmt.Sprintf("%s:%d:logged_in", s.prefix, userID)
}

func (s *AuthService) userKey(userID uint) string {
	return fmt.Sprintf("%s:%d:user", s.prefix, userID)
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if len(req.Password) < 6 {
		return nil, util.ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return nil, util.ErrPasswordMismatch
	}
	if !req.AcceptTerms {
		return nil, util.ErrTermsNotAccepted
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.UserRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   string(hashedPassword),
		Role:       model.StandardUser,
		Department: req.Department,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login 等待配置的延迟后校验凭据，成功时写入会话标记和当前用户
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, util.ErrMissingLoginFields
	}

	if d := s.LoginDelay(); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	user, err := s.UserRepo.FindByUsername(strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	principal := model.PrincipalFor(user)
	token, err := util.GenerateJWT(principal, s.jwtSecret, s.jwtExpire)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	view := model.ViewOf(principal)
	blob, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, s.loggedInKey(user.ID), "true"); err != nil {
		return nil, fmt.Errorf("store session flag: %w", err)
	}
	if err := s.Store.Set(ctx, s.userKey(user.ID), string(blob)); err != nil {
		return nil, fmt.Errorf("store current user: %w", err)
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.Log.Warn("update last login failed", zap.Uint("userID", user.ID), zap.Error(err))
	}

	return &LoginResult{Token: token, User: view}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.Store.Delete(ctx, s.loggedInKey(userID)); err != nil {
		return err
	}
	return s.Store.Delete(ctx, s.userKey(userID))
}

func (s *AuthService) IsLoggedIn(ctx context.Context, userID uint) (bool, error) {
	v, ok, err := s.Store.Get(ctx, s.loggedInKey(userID))
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// CurrentUser 读取登录时保存的用户快照
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (model.Principal, error) {
	blob, ok, err := s.Store.Get(ctx, s.userKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrSessionExpired
	}
	var view model.PrincipalView
	if err := json.Unmarshal([]byte(blob), &view); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return view.Principal(), nil
}
