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

// Campaign errors
var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrCampaignNotOwned    = errors.New("campaign belongs to another hospital")
	ErrCampaignNotActive   = errors.New("campaign is not active")
	ErrAlreadyRegistered   = errors.New("already registered for this campaign")
	ErrParticipantNotFound = errors.New("participant not registered for this campaign")
	ErrBadDateRange        = errors.New("end date must be after start date")
	ErrBadParticipantMove  = errors.New("participant status transition not allowed")
)

// CampaignService handles donation campaign business logic
type CampaignService struct {
	campaignRepo repositories.CampaignRepository
	notifier     *NotificationService
}

// NewCampaignService creates a new campaign service
func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	notifier *NotificationService,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		notifier:     notifier,
	}
}

// CreateCampaignInput represents campaign creation input
type CreateCampaignInput struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description" validate:"required"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	Location     string    `json:"location" validate:"required"`
	TargetUnits  int       `json:"target_units" validate:"required,min=1"`
	BloodTypes   []string  `json:"blood_types"`
	MinAge       int       `json:"min_age"`
	MaxAge       int       `json:"max_age"`
	MinWeight    int       `json:"min_weight"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
}

// UpdateCampaignInput represents campaign update input
type UpdateCampaignInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Location     string     `json:"location"`
	TargetUnits  *int       `json:"target_units"`
	Status       string     `json:"status"`
	BloodTypes   []string   `json:"blood_types"`
	ContactPhone string     `json:"contact_phone"`
	ContactEmail string     `json:"contact_email"`
}

// Create creates a campaign for a hospital. Status starts UPCOMING, or
// ACTIVE when the window already covers today.
func (s *CampaignService) Create(ctx context.Context, hospitalID uint, input *CreateCampaignInput) (*models.Campaign, error) {
	// 1. Validate dates and blood types
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrBadDateRange
	}
	for _, bt := range input.BloodTypes {
		if !domain.IsValidBloodType(bt) {
			return nil, ErrBadBloodType
		}
	}
	if input.TargetUnits <= 0 {
		return nil, ErrInvalidUnits
	}

	// 2. Derive initial status from the date window
	now := time.Now()
	status := domain.CampaignUpcoming
	if !input.StartDate.After(now) && input.EndDate.After(now) {
		status = domain.CampaignActive
	}

	// 3. Create
	campaign := &models.Campaign{
		HospitalID:   hospitalID,
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Location:     input.Location,
		TargetUnits:  input.TargetUnits,
		Status:       status,
		MinAge:       input.MinAge,
		MaxAge:       input.MaxAge,
		MinWeight:    input.MinWeight,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
	}
	campaign.SetBloodTypes(input.BloodTypes)

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	log.Printf("✅ Campaign created: ID %d (%s, hospital %d)", campaign.ID, campaign.Title, hospitalID)
	return campaign, nil
}

// GetByID returns a campaign with its participants
func (s *CampaignService) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

// List lists campaigns, optionally scoped to one hospital, with pagination
func (s *CampaignService) List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.Campaign, int64, error) {
	return s.campaignRepo.List(ctx, hospitalID, offset, limit)
}

// ListActive lists campaigns currently inside their date window
func (s *CampaignService) ListActive(ctx context.Context) ([]models.Campaign, error) {
	return s.campaignRepo.ListActive(ctx, time.Now())
}

// Update edits a campaign. Only the owning hospital or an admin may edit.
func (s *CampaignService) Update(ctx context.Context, id, hospitalID uint, isAdmin bool, input *UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if !isAdmin && campaign.HospitalID != hospitalID {
		return nil, ErrCampaignNotOwned
	}

	if input.Title != "" {
		campaign.Title = input.Title
	}
	if input.Description != "" {
		campaign.Description = input.Description
	}
	if input.StartDate != nil {
		campaign.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		campaign.EndDate = *input.EndDate
	}
	if !campaign.EndDate.After(campaign.StartDate) {
		return nil, ErrBadDateRange
	}
	if input.Location != "" {
		campaign.Location = input.Location
	}
	if input.TargetUnits != nil {
		if *input.TargetUnits <= 0 {
			return nil, ErrInvalidUnits
		}
		campaign.TargetUnits = *input.TargetUnits
	}
	if input.Status != "" {
		switch input.Status {
		case domain.CampaignUpcoming, domain.CampaignActive, domain.CampaignCompleted, domain.CampaignCancelled:
			campaign.Status = input.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if input.BloodTypes != nil {
		for _, bt := range input.BloodTypes {
			if !domain.IsValidBloodType(bt) {
				return nil, ErrBadBloodType
			}
		}
		campaign.SetBloodTypes(input.BloodTypes)
	}
	if input.ContactPhone != "" {
		campaign.ContactPhone = input.ContactPhone
	}
	if input.ContactEmail != "" {
		campaign.ContactEmail = input.ContactEmail
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	log.Printf("✅ Campaign updated: ID %d", id)
	return campaign, nil
}

// Register registers a donor for an ACTIVE campaign. The composite unique
// index backs the duplicate check, so a concurrent double registration
// still comes back ErrAlreadyRegistered.
func (s *CampaignService) Register(ctx context.Context, campaignID, userID uint) (*models.CampaignParticipant, error) {
	// 1. Campaign must be ACTIVE
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.Status != domain.CampaignActive {
		return nil, ErrCampaignNotActive
	}

	// 2. Reject duplicates
	if _, err := s.campaignRepo.GetParticipant(ctx, campaignID, userID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. Register
	participant := &models.CampaignParticipant{
		CampaignID:   campaignID,
		UserID:       userID,
		Status:       domain.ParticipantRegistered,
		RegisteredAt: time.Now(),
	}
	if err := s.campaignRepo.AddParticipant(ctx, participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	// 4. Confirm to the donor
	if s.notifier != nil {
		s.notifier.NotifyCampaignRegistration(ctx, campaign, userID)
	}

	log.Printf("✅ User %d registered for campaign %d", userID, campaignID)
	return participant, nil
}

// UpdateParticipant moves a participant along the transition table
// (hospital marks confirmed/completed/cancelled)
func (s *CampaignService) UpdateParticipant(ctx context.Context, campaignID, participantUserID, hospitalID uint, isAdmin bool, status string) (*models.CampaignParticipant, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if !isAdmin && campaign.HospitalID != hospitalID {
		return nil, ErrCampaignNotOwned
	}

	participant, err := s.campaignRepo.GetParticipant(ctx, campaignID, participantUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if !domain.CanTransitionParticipant(participant.Status, status) {
		return nil, ErrBadParticipantMove
	}

	if err := s.campaignRepo.UpdateParticipantStatus(ctx, campaignID, participantUserID, status); err != nil {
		return nil, err
	}
	participant.Status = status

	log.Printf("✅ Campaign %d participant %d -> %s", campaignID, participantUserID, status)
	return participant, nil
}

// Delete removes a campaign and its participants (admin)
func (s *CampaignService) Delete(ctx context.Context, id uint) error {
	if _, err := s.campaignRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}

	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Campaign deleted: ID %d", id)
	return nil
}
