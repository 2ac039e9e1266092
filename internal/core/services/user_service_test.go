package services

import (
	"context"
	"testing"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestChangePassword(t *testing.T) {
	hashed, err := password.Hash("oldpassword1")
	require.NoError(t, err)

	var updated *models.User
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Email: "sara@example.com", Password: hashed}, nil
		},
		UpdateFn: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(userRepo)

	err = svc.ChangePassword(context.Background(), 1, &ChangePasswordInput{
		CurrentPassword: "wrong-password",
		NewPassword:     "newpassword1",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), 1, &ChangePasswordInput{
		CurrentPassword: "oldpassword1",
		NewPassword:     "tiny",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	err = svc.ChangePassword(context.Background(), 1, &ChangePasswordInput{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword1",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, password.Verify("newpassword1", updated.Password))
}

func TestSetAvailability(t *testing.T) {
	user := &models.User{ID: 1, Email: "sara@example.com", Role: domain.RoleDonor, IsAvailable: true}
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) { return user, nil },
		UpdateFn:  func(ctx context.Context, u *models.User) error { return nil },
	}
	svc := NewUserService(userRepo)

	resp, err := svc.SetAvailability(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.False(t, user.IsAvailable)
}

func TestListDonorsBloodTypeFilter(t *testing.T) {
	userRepo := &mockUserRepo{
		ListDonorsFn: func(ctx context.Context, filter repositories.DonorFilter) ([]models.User, error) {
			return []models.User{{ID: 1, BloodType: filter.BloodType}}, nil
		},
	}
	svc := NewUserService(userRepo)

	_, err := svc.ListDonors(context.Background(), repositories.DonorFilter{BloodType: "Q+"})
	assert.ErrorIs(t, err, ErrBadBloodType)

	donors, err := svc.ListDonors(context.Background(), repositories.DonorFilter{BloodType: "AB-"})
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, "AB-", donors[0].BloodType)
}

func TestFindNearbyDonorsDefaultRadius(t *testing.T) {
	var gotMeters float64
	userRepo := &mockUserRepo{
		FindNearbyFn: func(ctx context.Context, role string, longitude, latitude, maxMeters float64, bloodType string) ([]models.User, error) {
			assert.Equal(t, domain.RoleDonor, role)
			gotMeters = maxMeters
			return nil, nil
		},
	}
	svc := NewUserService(userRepo)

	_, err := svc.FindNearbyDonors(context.Background(), &NearbyDonorsInput{
		Longitude: 31.2357,
		Latitude:  30.0444,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(10000), gotMeters)

	_, err = svc.FindNearbyDonors(context.Background(), &NearbyDonorsInput{
		Longitude: 31.2357,
		Latitude:  30.0444,
		MaxKm:     2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2500), gotMeters)
}

func TestGetProfileNotFound(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewUserService(userRepo)

	_, err := svc.GetProfile(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileBloodType(t *testing.T) {
	user := &models.User{ID: 1, Email: "sara@example.com", Role: domain.RoleDonor, BloodType: "O+"}
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) { return user, nil },
		UpdateFn:  func(ctx context.Context, u *models.User) error { return nil },
	}
	svc := NewUserService(userRepo)

	_, err := svc.UpdateProfile(context.Background(), 1, &UpdateProfileInput{BloodType: "green"})
	assert.ErrorIs(t, err, ErrBadBloodType)

	resp, err := svc.UpdateProfile(context.Background(), 1, &UpdateProfileInput{BloodType: "A-"})
	require.NoError(t, err)
	assert.Equal(t, "A-", resp.BloodType)
}
