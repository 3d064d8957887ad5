package service

import (
	"context"
	"errors"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/auth"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignupInput struct {
	Email       string
	Password    string
	DisplayName string
	DateOfBirth time.Time
	Gender      string
	ShowMe      string
}

type AuthService struct {
	cfg   *config.Config
	users *repository.UserRepository
}

func NewAuthService(cfg *config.Config, users *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, users: users}
}

// Signup creates a user and issues a token pair. Callers under the
// configured minimum age are rejected.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, *TokenPair, error) {
	if in.Email == "" || in.Password == "" || in.DisplayName == "" {
		return nil, nil, domain.InvalidArgument("email, password and display_name are required")
	}
	if len(in.Password) < 8 {
		return nil, nil, domain.InvalidArgument("password must be at least 8 characters")
	}
	probe := models.User{DateOfBirth: &in.DateOfBirth}
	if probe.Age(time.Now()) < s.cfg.Engine.MinAge {
		return nil, nil, domain.InvalidArgument("you must be at least 18 to sign up")
	}
	if in.ShowMe == "" {
		in.ShowMe = domain.ShowMeEveryone
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, nil, domain.InvalidArgument("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	u := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		DateOfBirth:  &in.DateOfBirth,
		Gender:       in.Gender,
		ShowMe:       in.ShowMe,
		AgeMin:       18,
		AgeMax:       99,
		LastActive:   time.Now(),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, nil, err
	}
	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.Unauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.Unauthorized("invalid credentials")
	}
	_ = s.users.TouchLastActive(ctx, u.ID)
	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, domain.Unauthorized("invalid refresh token")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Unauthorized("invalid refresh token")
	}
	return s.issueTokens(u)
}

func (s *AuthService) issueTokens(u *models.User) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
