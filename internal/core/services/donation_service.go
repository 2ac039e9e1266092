package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"gorm.io/gorm"
)

// Donation errors
var (
	ErrDonationNotFound   = errors.New("donation not found")
	ErrDonationNotOwned   = errors.New("donation belongs to another user")
	ErrTooManyUnits       = errors.New("units exceed the per-donation cap")
	ErrBadTransition      = errors.New("donation status transition not allowed")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrRequestMismatch    = errors.New("request does not match this donation")
	ErrMissingLocation    = errors.New("location name is required")
)

// DonationService handles donation business logic
type DonationService struct {
	donationRepo repositories.DonationRepository
	requestRepo  repositories.BloodRequestRepository
	userRepo     repositories.UserRepository
	notifier     *NotificationService
}

// NewDonationService creates a new donation service
func NewDonationService(
	donationRepo repositories.DonationRepository,
	requestRepo repositories.BloodRequestRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// CreateDonationInput represents donation creation input
type CreateDonationInput struct {
	RecipientID  uint      `json:"recipient_id" validate:"required"`
	RequestID    *uint     `json:"request_id"`
	BloodType    string    `json:"blood_type" validate:"required"`
	Units        int       `json:"units" validate:"required,min=1"`
	DonationDate time.Time `json:"donation_date" validate:"required"`
	Longitude    float64   `json:"longitude"`
	Latitude     float64   `json:"latitude"`
	LocationName string    `json:"location_name" validate:"required"`
	Notes        string    `json:"notes"`
}

// Create records a donation offer in pending status
func (s *DonationService) Create(ctx context.Context, donorID uint, input *CreateDonationInput) (*models.Donation, error) {
	// 1. Validate input
	if !domain.IsValidBloodType(input.BloodType) {
		return nil, ErrBadBloodType
	}
	if input.Units <= 0 {
		return nil, ErrInvalidUnits
	}
	if input.Units > domain.MaxDonationUnits {
		return nil, ErrTooManyUnits
	}
	if input.LocationName == "" {
		return nil, ErrMissingLocation
	}

	// 2. Recipient must exist
	if _, err := s.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	// 3. A linked request must be PENDING and blood-type compatible
	if input.RequestID != nil {
		request, err := s.requestRepo.GetByID(ctx, *input.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRequestNotFound
			}
			return nil, err
		}
		if request.Status != domain.RequestPending || request.BloodType != input.BloodType {
			return nil, ErrRequestMismatch
		}
	}

	// 4. Create the donation
	donation := &models.Donation{
		DonorID:      donorID,
		RecipientID:  input.RecipientID,
		RequestID:    input.RequestID,
		BloodType:    input.BloodType,
		Units:        input.Units,
		Status:       domain.DonationPending,
		DonationDate: input.DonationDate,
		Longitude:    input.Longitude,
		Latitude:     input.Latitude,
		LocationName: input.LocationName,
		Notes:        input.Notes,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	// 5. Tell the recipient
	if s.notifier != nil {
		s.notifier.NotifyDonationOffer(ctx, donation)
	}

	log.Printf("✅ Donation created: ID %d (%s, %d units, donor %d)",
		donation.ID, donation.BloodType, donation.Units, donorID)

	return donation, nil
}

// GetByID returns a single donation
func (s *DonationService) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return donation, nil
}

// List lists donations with filters and pagination
func (s *DonationService) List(ctx context.Context, filter repositories.DonationFilter, offset, limit int) ([]models.Donation, int64, error) {
	return s.donationRepo.List(ctx, filter, offset, limit)
}

// ListByDonor lists a donor's donations
func (s *DonationService) ListByDonor(ctx context.Context, donorID uint) ([]models.Donation, error) {
	return s.donationRepo.ListByDonor(ctx, donorID)
}

// ListByRecipient lists donations toward a recipient
func (s *DonationService) ListByRecipient(ctx context.Context, recipientID uint) ([]models.Donation, error) {
	return s.donationRepo.ListByRecipient(ctx, recipientID)
}

// FindNearby finds pending donations within maxKm of a point, closest first
func (s *DonationService) FindNearby(ctx context.Context, longitude, latitude, maxKm float64) ([]models.Donation, error) {
	if maxKm <= 0 {
		maxKm = 10
	}
	return s.donationRepo.FindNearbyPending(ctx, longitude, latitude, maxKm*1000)
}

// UpdateStatus moves a donation along the transition table. Completing a
// donation stamps the donor's last-donation date and records request
// fulfillment in one transaction.
func (s *DonationService) UpdateStatus(ctx context.Context, id, callerID uint, isPrivileged bool, status string) (*models.Donation, error) {
	// 1. Load and authorize: donor, recipient or hospital/admin
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	if !isPrivileged && donation.DonorID != callerID && donation.RecipientID != callerID {
		return nil, ErrDonationNotOwned
	}

	// 2. Enforce the transition table
	if !domain.CanTransitionDonation(donation.Status, status) {
		return nil, ErrBadTransition
	}

	// 3. Apply
	if status == domain.DonationCompleted {
		completed, err := s.donationRepo.Complete(ctx, donation, time.Now())
		if err != nil {
			return nil, err
		}
		if !completed {
			// a concurrent caller finalized it between the read and the write
			return nil, ErrBadTransition
		}
		if s.notifier != nil {
			s.notifier.NotifyDonationCompleted(ctx, donation)
		}
	} else {
		if err := s.donationRepo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}
	donation.Status = status

	log.Printf("✅ Donation %d status -> %s", id, status)
	return donation, nil
}

// Delete removes a donation record (admin)
func (s *DonationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.donationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return err
	}

	if err := s.donationRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Donation deleted: ID %d", id)
	return nil
}

// Stats returns per-blood-type donation completion counts
func (s *DonationService) Stats(ctx context.Context) ([]repositories.DonationStat, error) {
	return s.donationRepo.Stats(ctx)
}
