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

func TestDonationCreateValidation(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			if id == 404 {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.User{ID: id}, nil
		},
	}
	svc := NewDonationService(&mockDonationRepo{}, &mockRequestRepo{}, userRepo, nil)

	_, err := svc.Create(context.Background(), 1, &CreateDonationInput{
		RecipientID: 2, BloodType: "A+", Units: 3, LocationName: "clinic",
	})
	assert.ErrorIs(t, err, ErrTooManyUnits)

	_, err = svc.Create(context.Background(), 1, &CreateDonationInput{
		RecipientID: 2, BloodType: "A+", Units: 1,
	})
	assert.ErrorIs(t, err, ErrMissingLocation)

	_, err = svc.Create(context.Background(), 1, &CreateDonationInput{
		RecipientID: 404, BloodType: "A+", Units: 1, LocationName: "clinic",
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestDonationCreateLinkedRequestMustMatch(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	requestID := uint(10)

	cases := []struct {
		name    string
		request models.BloodRequest
	}{
		{"cancelled request", models.BloodRequest{ID: 10, BloodType: "A+", Status: domain.RequestCancelled}},
		{"different blood type", models.BloodRequest{ID: 10, BloodType: "B+", Status: domain.RequestPending}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requestRepo := &mockRequestRepo{
				GetByIDFn: func(ctx context.Context, id uint) (*models.BloodRequest, error) {
					r := tc.request
					return &r, nil
				},
			}
			svc := NewDonationService(&mockDonationRepo{}, requestRepo, userRepo, nil)

			_, err := svc.Create(context.Background(), 1, &CreateDonationInput{
				RecipientID: 2, RequestID: &requestID, BloodType: "A+", Units: 1, LocationName: "clinic",
			})
			assert.ErrorIs(t, err, ErrRequestMismatch)
		})
	}
}

func TestDonationCreate(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	var created *models.Donation
	donationRepo := &mockDonationRepo{
		CreateFn: func(ctx context.Context, donation *models.Donation) error {
			donation.ID = 5
			created = donation
			return nil
		},
	}
	svc := NewDonationService(donationRepo, &mockRequestRepo{}, userRepo, nil)

	got, err := svc.Create(context.Background(), 1, &CreateDonationInput{
		RecipientID:  2,
		BloodType:    "O+",
		Units:        2,
		DonationDate: time.Now().Add(24 * time.Hour),
		LocationName: "city hospital",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.ID)
	assert.Equal(t, domain.DonationPending, created.Status)
	assert.Equal(t, uint(1), created.DonorID)
}

func TestDonationUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pending to scheduled", domain.DonationPending, domain.DonationScheduled, false},
		{"pending to completed", domain.DonationPending, domain.DonationCompleted, false},
		{"scheduled to completed", domain.DonationScheduled, domain.DonationCompleted, false},
		{"completed is terminal", domain.DonationCompleted, domain.DonationCancelled, true},
		{"cancelled is terminal", domain.DonationCancelled, domain.DonationScheduled, true},
		{"no resurrect", domain.DonationCancelled, domain.DonationPending, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockDonationRepo{
				GetByIDFn: func(ctx context.Context, id uint) (*models.Donation, error) {
					return &models.Donation{ID: id, DonorID: 1, RecipientID: 2, Status: tc.from}, nil
				},
				UpdateStatusFn: func(ctx context.Context, id uint, status string) error {
					return nil
				},
				CompleteFn: func(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error) {
					return true, nil
				},
			}
			svc := NewDonationService(repo, &mockRequestRepo{}, &mockUserRepo{}, nil)

			_, err := svc.UpdateStatus(context.Background(), 1, 1, false, tc.to)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrBadTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDonationUpdateStatusAuthorization(t *testing.T) {
	repo := &mockDonationRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Donation, error) {
			return &models.Donation{ID: id, DonorID: 1, RecipientID: 2, Status: domain.DonationPending}, nil
		},
		UpdateStatusFn: func(ctx context.Context, id uint, status string) error {
			return nil
		},
	}
	svc := NewDonationService(repo, &mockRequestRepo{}, &mockUserRepo{}, nil)

	// a stranger cannot touch the donation
	_, err := svc.UpdateStatus(context.Background(), 1, 99, false, domain.DonationScheduled)
	assert.ErrorIs(t, err, ErrDonationNotOwned)

	// recipient can
	_, err = svc.UpdateStatus(context.Background(), 1, 2, false, domain.DonationScheduled)
	assert.NoError(t, err)

	// hospital/admin can
	_, err = svc.UpdateStatus(context.Background(), 1, 99, true, domain.DonationScheduled)
	assert.NoError(t, err)
}

func TestDonationCompleteUsesTransactionalPath(t *testing.T) {
	completeCalled := false
	repo := &mockDonationRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Donation, error) {
			return &models.Donation{ID: id, DonorID: 1, RecipientID: 2, Status: domain.DonationScheduled}, nil
		},
		CompleteFn: func(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error) {
			completeCalled = true
			return true, nil
		},
		UpdateStatusFn: func(ctx context.Context, id uint, status string) error {
			t.Fatal("plain status update must not be used for completion")
			return nil
		},
	}
	svc := NewDonationService(repo, &mockRequestRepo{}, &mockUserRepo{}, nil)

	got, err := svc.UpdateStatus(context.Background(), 1, 1, false, domain.DonationCompleted)
	require.NoError(t, err)
	assert.True(t, completeCalled)
	assert.Equal(t, domain.DonationCompleted, got.Status)
}

func TestDonationCompleteRace(t *testing.T) {
	// both callers read the donation as scheduled; the guarded flip inside
	// the transaction lets only the first one through
	repo := &mockDonationRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Donation, error) {
			return &models.Donation{ID: id, DonorID: 1, RecipientID: 2, Status: domain.DonationScheduled}, nil
		},
		CompleteFn: func(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error) {
			return false, nil
		},
	}
	svc := NewDonationService(repo, &mockRequestRepo{}, &mockUserRepo{}, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, 1, false, domain.DonationCompleted)
	assert.ErrorIs(t, err, ErrBadTransition)
}
