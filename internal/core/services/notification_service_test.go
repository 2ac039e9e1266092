package services

import (
	"context"
	"testing"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotificationCreate(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	notifyRepo := &mockNotificationRepo{
		CreateFn: func(ctx context.Context, n *models.Notification) error {
			n.ID = 1
			return nil
		},
	}
	svc := NewNotificationService(notifyRepo, userRepo)

	n, err := svc.Create(context.Background(), &CreateNotificationInput{
		UserID:  7,
		Title:   "Blood needed",
		Message: "O- needed at City Hospital",
		Type:    domain.NotifyRequest,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), n.UserID)
	assert.Equal(t, domain.PriorityMedium, n.Priority)
}

func TestNotificationCreateValidation(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, &mockUserRepo{})

	_, err := svc.Create(context.Background(), &CreateNotificationInput{
		UserID: 7, Title: "x", Message: "y", Type: "SHOUT",
	})
	assert.ErrorIs(t, err, ErrInvalidNotifyType)

	_, err = svc.Create(context.Background(), &CreateNotificationInput{
		UserID: 7, Title: "x", Message: "y", Type: domain.NotifyInfo, Priority: "EXTREME",
	})
	assert.ErrorIs(t, err, ErrInvalidNotifyType)
}

func TestNotificationCreateUnknownUser(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewNotificationService(&mockNotificationRepo{}, userRepo)

	_, err := svc.Create(context.Background(), &CreateNotificationInput{
		UserID: 404, Title: "x", Message: "y", Type: domain.NotifyInfo,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNotificationMarkReadOwnership(t *testing.T) {
	markedID := uint(0)
	notifyRepo := &mockNotificationRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Notification, error) {
			return &models.Notification{ID: id, UserID: 7}, nil
		},
		MarkReadFn: func(ctx context.Context, id uint) error {
			markedID = id
			return nil
		},
	}
	svc := NewNotificationService(notifyRepo, &mockUserRepo{})

	// another user's notification stays untouched
	err := svc.MarkRead(context.Background(), 3, 99)
	assert.ErrorIs(t, err, ErrNotificationNotOwned)
	assert.Zero(t, markedID)

	require.NoError(t, svc.MarkRead(context.Background(), 3, 7))
	assert.Equal(t, uint(3), markedID)
}

func TestNotificationDeleteOwnership(t *testing.T) {
	notifyRepo := &mockNotificationRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Notification, error) {
			if id == 404 {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.Notification{ID: id, UserID: 7}, nil
		},
		DeleteFn: func(ctx context.Context, id uint) error { return nil },
	}
	svc := NewNotificationService(notifyRepo, &mockUserRepo{})

	assert.ErrorIs(t, svc.Delete(context.Background(), 404, 7), ErrNotificationNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 3, 99), ErrNotificationNotOwned)
	assert.NoError(t, svc.Delete(context.Background(), 3, 7))
}

func TestNotifyMatchingDonorsSkipsRequester(t *testing.T) {
	notified := []uint{}
	userRepo := &mockUserRepo{
		ListDonorsFn: func(ctx context.Context, filter repositories.DonorFilter) ([]models.User, error) {
			assert.Equal(t, "O-", filter.BloodType)
			require.NotNil(t, filter.Available)
			assert.True(t, *filter.Available)
			return []models.User{{ID: 1}, {ID: 2}, {ID: 5}}, nil
		},
	}
	notifyRepo := &mockNotificationRepo{
		CreateFn: func(ctx context.Context, n *models.Notification) error {
			notified = append(notified, n.UserID)
			return nil
		},
	}
	svc := NewNotificationService(notifyRepo, userRepo)

	svc.NotifyMatchingDonors(context.Background(), &models.BloodRequest{
		ID:        10,
		UserID:    5,
		BloodType: "O-",
		Urgency:   domain.UrgencyHigh,
		Longitude: 31.2,
		Latitude:  30.0,
	})

	// the requester never gets their own alert
	assert.Equal(t, []uint{1, 2}, notified)
}
