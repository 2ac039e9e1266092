package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/pkg/geo"

	"gorm.io/gorm"
)

// Blood request errors
var (
	ErrRequestNotFound  = errors.New("blood request not found")
	ErrRequestNotOwned  = errors.New("blood request belongs to another user")
	ErrRequestImmutable = errors.New("request is in a terminal status")
	ErrInvalidUnits     = errors.New("units must be positive")
	ErrInvalidUrgency   = errors.New("invalid urgency level")
	ErrPastRequiredBy   = errors.New("required-by date must be in the future")
)

// BloodRequestService handles blood request business logic
type BloodRequestService struct {
	requestRepo repositories.BloodRequestRepository
	userRepo    repositories.UserRepository
	notifier    *NotificationService
}

// NewBloodRequestService creates a new blood request service
func NewBloodRequestService(
	requestRepo repositories.BloodRequestRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
) *BloodRequestService {
	return &BloodRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateRequestInput represents blood request creation input
type CreateRequestInput struct {
	BloodType    string    `json:"blood_type" validate:"required"`
	Units        int       `json:"units" validate:"required,min=1"`
	Urgency      string    `json:"urgency" validate:"required"`
	Longitude    float64   `json:"longitude"`
	Latitude     float64   `json:"latitude"`
	LocationName string    `json:"location_name"`
	Purpose      string    `json:"purpose"`
	Notes        string    `json:"notes"`
	RequiredBy   time.Time `json:"required_by" validate:"required"`
}

// UpdateRequestInput represents blood request update input
type UpdateRequestInput struct {
	Units        *int       `json:"units"`
	Urgency      string     `json:"urgency"`
	LocationName string     `json:"location_name"`
	Purpose      string     `json:"purpose"`
	Notes        string     `json:"notes"`
	RequiredBy   *time.Time `json:"required_by"`
}

// Create creates a new blood request in PENDING status
func (s *BloodRequestService) Create(ctx context.Context, userID uint, input *CreateRequestInput) (*models.BloodRequestResponse, error) {
	// 1. Validate input
	if !domain.IsValidBloodType(input.BloodType) {
		return nil, ErrBadBloodType
	}
	if input.Units <= 0 {
		return nil, ErrInvalidUnits
	}
	if !domain.IsValidUrgency(input.Urgency) {
		return nil, ErrInvalidUrgency
	}
	if !input.RequiredBy.After(time.Now()) {
		return nil, ErrPastRequiredBy
	}

	// 2. Create request
	request := &models.BloodRequest{
		UserID:       userID,
		BloodType:    input.BloodType,
		Units:        input.Units,
		Urgency:      input.Urgency,
		Longitude:    input.Longitude,
		Latitude:     input.Latitude,
		LocationName: input.LocationName,
		Status:       domain.RequestPending,
		Purpose:      input.Purpose,
		Notes:        input.Notes,
		RequiredBy:   input.RequiredBy,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	// 3. Notify matching available donors
	if s.notifier != nil {
		s.notifier.NotifyMatchingDonors(ctx, request)
	}

	log.Printf("✅ Blood request created: ID %d (%s, %d units, %s)",
		request.ID, request.BloodType, request.Units, request.Urgency)

	return request.ToResponse(), nil
}

// GetByID returns a single blood request
func (s *BloodRequestService) GetByID(ctx context.Context, id uint) (*models.BloodRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request.ToResponse(), nil
}

// List lists blood requests with filters and pagination
func (s *BloodRequestService) List(ctx context.Context, filter repositories.RequestFilter, offset, limit int) ([]*models.BloodRequestResponse, int64, error) {
	requests, total, err := s.requestRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.BloodRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}
	return responses, total, nil
}

// FindMatching returns PENDING requests matching the donor's blood type,
// closest first by great-circle distance from the donor's stored location.
func (s *BloodRequestService) FindMatching(ctx context.Context, donorID uint) ([]*models.BloodRequestResponse, error) {
	// 1. Resolve the donor and their blood type
	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if donor.BloodType == "" {
		return nil, ErrBadBloodType
	}

	// 2. Pending requests with exact blood-type equality
	requests, err := s.requestRepo.ListPendingByBloodType(ctx, donor.BloodType)
	if err != nil {
		return nil, err
	}

	// 3. Annotate with distance and sort closest first
	from := geo.Point{Longitude: donor.Longitude, Latitude: donor.Latitude}
	responses := make([]*models.BloodRequestResponse, 0, len(requests))
	for i := range requests {
		resp := requests[i].ToResponse()
		d := geo.Haversine(from, geo.Point{Longitude: requests[i].Longitude, Latitude: requests[i].Latitude})
		resp.DistanceKm = &d
		responses = append(responses, resp)
	}
	sort.Slice(responses, func(i, j int) bool {
		return *responses[i].DistanceKm < *responses[j].DistanceKm
	})

	return responses, nil
}

// Update edits a PENDING request's mutable fields. Only the owner may edit.
func (s *BloodRequestService) Update(ctx context.Context, id, userID uint, isAdmin bool, input *UpdateRequestInput) (*models.BloodRequestResponse, error) {
	// 1. Load and authorize
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !isAdmin && request.UserID != userID {
		return nil, ErrRequestNotOwned
	}
	if domain.IsTerminalRequest(request.Status) {
		return nil, ErrRequestImmutable
	}

	// 2. Collect changed fields
	fields := map[string]interface{}{}
	if input.Units != nil {
		if *input.Units <= 0 {
			return nil, ErrInvalidUnits
		}
		fields["units"] = *input.Units
	}
	if input.Urgency != "" {
		if !domain.IsValidUrgency(input.Urgency) {
			return nil, ErrInvalidUrgency
		}
		fields["urgency"] = input.Urgency
	}
	if input.LocationName != "" {
		fields["location_name"] = input.LocationName
	}
	if input.Purpose != "" {
		fields["purpose"] = input.Purpose
	}
	if input.Notes != "" {
		fields["notes"] = input.Notes
	}
	if input.RequiredBy != nil {
		if !input.RequiredBy.After(time.Now()) {
			return nil, ErrPastRequiredBy
		}
		fields["required_by"] = *input.RequiredBy
	}

	// 3. Conditional update: a concurrent fulfil/cancel wins the race
	if len(fields) > 0 {
		updated, err := s.requestRepo.UpdateFieldsIfPending(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, ErrRequestImmutable
		}
	}

	request, err = s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Blood request updated: ID %d", id)
	return request.ToResponse(), nil
}

// Cancel moves a PENDING request to CANCELLED. Owner or admin only.
func (s *BloodRequestService) Cancel(ctx context.Context, id, userID uint, isAdmin bool) (*models.BloodRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !isAdmin && request.UserID != userID {
		return nil, ErrRequestNotOwned
	}

	// fast path on the loaded row; the conditional write below stays authoritative
	if !domain.CanTransitionRequest(request.Status, domain.RequestCancelled) {
		return nil, ErrRequestImmutable
	}

	cancelled, err := s.requestRepo.UpdateStatusIfPending(ctx, id, domain.RequestCancelled)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, ErrRequestImmutable
	}

	request.Status = domain.RequestCancelled

	log.Printf("✅ Blood request cancelled: ID %d", id)
	return request.ToResponse(), nil
}

// Delete removes a request and its fulfillment links (admin)
func (s *BloodRequestService) Delete(ctx context.Context, id uint) error {
	if _, err := s.requestRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Blood request deleted: ID %d", id)
	return nil
}

// Stats returns per-blood-type request status breakdowns
func (s *BloodRequestService) Stats(ctx context.Context) ([]repositories.RequestStat, error) {
	return s.requestRepo.Stats(ctx)
}
