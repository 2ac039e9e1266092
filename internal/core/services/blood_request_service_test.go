package services

import (
	"context"
	"testing"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBloodRequestCreateValidation(t *testing.T) {
	svc := NewBloodRequestService(&mockRequestRepo{}, &mockUserRepo{}, nil)
	future := time.Now().Add(48 * time.Hour)

	cases := []struct {
		name  string
		input CreateRequestInput
		want  error
	}{
		{"bad blood type", CreateRequestInput{BloodType: "Z+", Units: 2, Urgency: "HIGH", RequiredBy: future}, ErrBadBloodType},
		{"zero units", CreateRequestInput{BloodType: "A+", Units: 0, Urgency: "HIGH", RequiredBy: future}, ErrInvalidUnits},
		{"bad urgency", CreateRequestInput{BloodType: "A+", Units: 2, Urgency: "WHENEVER", RequiredBy: future}, ErrInvalidUrgency},
		{"past deadline", CreateRequestInput{BloodType: "A+", Units: 2, Urgency: "HIGH", RequiredBy: time.Now().Add(-time.Hour)}, ErrPastRequiredBy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, &tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBloodRequestCreate(t *testing.T) {
	var created *models.BloodRequest
	repo := &mockRequestRepo{
		CreateFn: func(ctx context.Context, request *models.BloodRequest) error {
			request.ID = 11
			created = request
			return nil
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	resp, err := svc.Create(context.Background(), 5, &CreateRequestInput{
		BloodType:  "B-",
		Units:      3,
		Urgency:    "EMERGENCY",
		RequiredBy: time.Now().Add(6 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), resp.ID)
	assert.Equal(t, domain.RequestPending, created.Status)
	assert.Equal(t, uint(5), created.UserID)
}

func TestBloodRequestCancelOnlyOnce(t *testing.T) {
	status := domain.RequestPending
	repo := &mockRequestRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
			return &models.BloodRequest{ID: id, UserID: 5, Status: status}, nil
		},
		UpdateStatusIfPendingFn: func(ctx context.Context, id uint, newStatus string) (bool, error) {
			if status != domain.RequestPending {
				return false, nil
			}
			status = newStatus
			return true, nil
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	resp, err := svc.Cancel(context.Background(), 1, 5, false)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCancelled, resp.Status)

	// second cancel loses the conditional update
	_, err = svc.Cancel(context.Background(), 1, 5, false)
	assert.ErrorIs(t, err, ErrRequestImmutable)
}

func TestBloodRequestCancelTerminalShortCircuit(t *testing.T) {
	repo := &mockRequestRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
			return &models.BloodRequest{ID: id, UserID: 5, Status: domain.RequestFulfilled}, nil
		},
		UpdateStatusIfPendingFn: func(ctx context.Context, id uint, status string) (bool, error) {
			t.Fatal("terminal request must not reach the status write")
			return false, nil
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	_, err := svc.Cancel(context.Background(), 1, 5, false)
	assert.ErrorIs(t, err, ErrRequestImmutable)
}

func TestBloodRequestCancelRace(t *testing.T) {
	// loaded as PENDING, but a concurrent writer flips it before our
	// conditional update lands
	repo := &mockRequestRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
			return &models.BloodRequest{ID: id, UserID: 5, Status: domain.RequestPending}, nil
		},
		UpdateStatusIfPendingFn: func(ctx context.Context, id uint, status string) (bool, error) {
			return false, nil
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	_, err := svc.Cancel(context.Background(), 1, 5, false)
	assert.ErrorIs(t, err, ErrRequestImmutable)
}

func TestBloodRequestCancelOwnership(t *testing.T) {
	repo := &mockRequestRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
			return &models.BloodRequest{ID: id, UserID: 5, Status: domain.RequestPending}, nil
		},
		UpdateStatusIfPendingFn: func(ctx context.Context, id uint, status string) (bool, error) {
			return true, nil
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	_, err := svc.Cancel(context.Background(), 1, 6, false)
	assert.ErrorIs(t, err, ErrRequestNotOwned)

	// admin overrides ownership
	_, err = svc.Cancel(context.Background(), 1, 6, true)
	assert.NoError(t, err)
}

func TestBloodRequestUpdateTerminal(t *testing.T) {
	repo := &mockRequestRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
			return &models.BloodRequest{ID: id, UserID: 5, Status: domain.RequestFulfilled}, nil
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	units := 4
	_, err := svc.Update(context.Background(), 1, 5, false, &UpdateRequestInput{Units: &units})
	assert.ErrorIs(t, err, ErrRequestImmutable)
}

func TestBloodRequestFindMatchingSortsByDistance(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			// Cairo
			return &models.User{ID: id, Role: domain.RoleDonor, BloodType: "O-", Longitude: 31.2357, Latitude: 30.0444}, nil
		},
	}
	repo := &mockRequestRepo{
		ListPendingByBloodTypeFn: func(ctx context.Context, bloodType string) ([]models.BloodRequest, error) {
			assert.Equal(t, "O-", bloodType)
			return []models.BloodRequest{
				{ID: 1, BloodType: "O-", Longitude: 29.9187, Latitude: 31.2001}, // Alexandria
				{ID: 2, BloodType: "O-", Longitude: 31.2400, Latitude: 30.0500}, // next door
				{ID: 3, BloodType: "O-", Longitude: 32.8998, Latitude: 24.0889}, // Aswan
			}, nil
		},
	}
	svc := NewBloodRequestService(repo, userRepo, nil)

	matches, err := svc.FindMatching(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, uint(2), matches[0].ID)
	assert.Equal(t, uint(1), matches[1].ID)
	assert.Equal(t, uint(3), matches[2].ID)
	require.NotNil(t, matches[0].DistanceKm)
	assert.Less(t, *matches[0].DistanceKm, *matches[1].DistanceKm)
}

func TestBloodRequestFindMatchingNeedsBloodType(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: domain.RoleDonor}, nil
		},
	}
	svc := NewBloodRequestService(&mockRequestRepo{}, userRepo, nil)

	_, err := svc.FindMatching(context.Background(), 9)
	assert.ErrorIs(t, err, ErrBadBloodType)
}

func TestBloodRequestGetByIDNotFound(t *testing.T) {
	repo := &mockRequestRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewBloodRequestService(repo, &mockUserRepo{}, nil)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
