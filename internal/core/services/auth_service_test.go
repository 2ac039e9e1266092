package services

import (
	"context"
	"testing"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/config"
	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func TestAuthRegister(t *testing.T) {
	var createdUser *models.User
	var storedToken *models.RefreshToken
	userRepo := &mockUserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		CreateFn: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			createdUser = user
			return nil
		},
	}
	tokenRepo := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error {
			storedToken = token
			return nil
		},
	}
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Name:      "Sara",
		Email:     "sara@example.com",
		Password:  "supersecret1",
		BloodType: "O+",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, domain.RoleDonor, createdUser.Role)
	assert.True(t, createdUser.IsAvailable)

	// stored hash never equals the raw token
	require.NotNil(t, storedToken)
	assert.NotEqual(t, resp.RefreshToken, storedToken.TokenHash)
	assert.Equal(t, password.HashToken(resp.RefreshToken), storedToken.TokenHash)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockRefreshTokenRepo{}, authTestConfig())

	// nobody self-registers as admin
	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "supersecret1", Role: domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidRole)

	// donors need a blood type
	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "Sam", Email: "sam@example.com", Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrInvalidBloodType)

	// hospitals do not
	userRepo := &mockUserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		CreateFn:        func(ctx context.Context, user *models.User) error { user.ID = 2; return nil },
	}
	tokenRepo := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error { return nil },
	}
	svc = NewAuthService(userRepo, tokenRepo, authTestConfig())
	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "City Hospital", Email: "hosp@example.com", Password: "supersecret1", Role: domain.RoleHospital,
	})
	assert.NoError(t, err)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewAuthService(userRepo, &mockRefreshTokenRepo{}, authTestConfig())

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Sara", Email: "sara@example.com", Password: "supersecret1", BloodType: "O+",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthRegisterWeakPassword(t *testing.T) {
	userRepo := &mockUserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	svc := NewAuthService(userRepo, &mockRefreshTokenRepo{}, authTestConfig())

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Sara", Email: "sara@example.com", Password: "short", BloodType: "O+",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestAuthLogin(t *testing.T) {
	hashed, err := password.Hash("supersecret1")
	require.NoError(t, err)

	userRepo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			if email != "sara@example.com" {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.User{ID: 1, Email: email, Password: hashed, Role: domain.RoleDonor}, nil
		},
	}
	tokenRepo := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error { return nil },
	}
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	resp, err := svc.Login(context.Background(), &LoginInput{Email: "sara@example.com", Password: "supersecret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// wrong password and unknown email collapse to the same error
	_, err = svc.Login(context.Background(), &LoginInput{Email: "sara@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRefreshRotation(t *testing.T) {
	hashed, _ := password.Hash("supersecret1")
	user := &models.User{ID: 1, Email: "sara@example.com", Password: hashed, Role: domain.RoleDonor}

	store := map[string]*models.RefreshToken{}
	userRepo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) { return user, nil },
		GetByIDFn:    func(ctx context.Context, id uint) (*models.User, error) { return user, nil },
	}
	tokenRepo := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error {
			store[token.TokenHash] = token
			return nil
		},
		GetByTokenHashFn: func(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
			if tok, ok := store[tokenHash]; ok {
				return tok, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		RevokeByTokenHashFn: func(ctx context.Context, tokenHash string) error {
			if tok, ok := store[tokenHash]; ok {
				now := time.Now()
				tok.RevokedAt = &now
			}
			return nil
		},
	}
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	login, err := svc.Login(context.Background(), &LoginInput{Email: "sara@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// the old token was rotated out
	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// a made-up token never validates
	_, err = svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
