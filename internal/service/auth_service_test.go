package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/repository"
	"github.com/dannyallport-cain/we-date/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *service.AuthService {
	cfg := config.Load()
	return service.NewAuthService(cfg, repository.NewUserRepository(db))
}

func signupInput(email string) service.SignupInput {
	return service.SignupInput{
		Email:       email,
		Password:    "correct-horse",
		DisplayName: "Test User",
		DateOfBirth: time.Now().AddDate(-25, 0, 0),
		Gender:      "WOMAN",
	}
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthService(db)

	u, tokens, err := svc.Signup(ctx, signupInput("u@x.com"))
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "EVERYONE", u.ShowMe, "show_me defaults to everyone")
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, tokens, err = svc.Login(ctx, "u@x.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = svc.Login(ctx, "u@x.com", "wrong")
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.CodeUnauthorized, de.Code)
}

func TestSignupRejectsMinors(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthService(db)

	in := signupInput("kid@x.com")
	in.DateOfBirth = time.Now().AddDate(-17, 0, 0)
	_, _, err := svc.Signup(ctx, in)
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.CodeInvalidArgument, de.Code)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, _, err := svc.Signup(ctx, signupInput("u@x.com"))
	require.NoError(t, err)
	_, _, err = svc.Signup(ctx, signupInput("u@x.com"))
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.CodeInvalidArgument, de.Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, tokens, err := svc.Signup(ctx, signupInput("u@x.com"))
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.Refresh(ctx, "not-a-token")
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.CodeUnauthorized, de.Code)
}
