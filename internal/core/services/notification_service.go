package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"gorm.io/gorm"
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationNotOwned = errors.New("notification belongs to another user")
	ErrInvalidNotifyType    = errors.New("invalid notification type")
)

// NotificationService handles in-app notifications and the system events
// that generate them
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// CreateNotificationInput represents admin notification input
type CreateNotificationInput struct {
	UserID   uint   `json:"user_id" validate:"required"`
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Priority string `json:"priority"`
}

// Create creates a notification for a user (admin)
func (s *NotificationService) Create(ctx context.Context, input *CreateNotificationInput) (*models.Notification, error) {
	if !domain.IsValidNotificationType(input.Type) {
		return nil, ErrInvalidNotifyType
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.IsValidPriority(priority) {
		return nil, ErrInvalidNotifyType
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	n := &models.Notification{
		UserID:   input.UserID,
		Title:    input.Title,
		Message:  input.Message,
		Type:     input.Type,
		Priority: priority,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	log.Printf("✅ Notification created for user %d: %s", n.UserID, n.Title)
	return n, nil
}

// ListForUser lists a user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, offset, limit)
}

// CountUnread returns the user's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrNotificationNotOwned
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks all the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the caller's notifications
func (s *NotificationService) Delete(ctx context.Context, id, userID uint) error {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrNotificationNotOwned
	}
	return s.notificationRepo.Delete(ctx, id)
}

// DeleteAll removes every notification the caller owns
func (s *NotificationService) DeleteAll(ctx context.Context, userID uint) error {
	return s.notificationRepo.DeleteAllByUser(ctx, userID)
}

// ============================================================
// System Events
// ============================================================
// Event helpers are best-effort: a failed notification never fails the
// operation that triggered it.

// NotifyMatchingDonors tells available donors of the matching blood type
// about a new request
func (s *NotificationService) NotifyMatchingDonors(ctx context.Context, request *models.BloodRequest) {
	available := true
	donors, err := s.userRepo.ListDonors(ctx, repositories.DonorFilter{
		BloodType: request.BloodType,
		Available: &available,
	})
	if err != nil {
		log.Printf("⚠️  Could not list donors for request %d: %v", request.ID, err)
		return
	}

	priority := domain.PriorityMedium
	if request.Urgency == domain.UrgencyHigh || request.Urgency == domain.UrgencyEmergency {
		priority = domain.PriorityHigh
	}

	requestID := request.ID
	for i := range donors {
		if donors[i].ID == request.UserID {
			continue
		}
		n := &models.Notification{
			UserID:       donors[i].ID,
			Title:        fmt.Sprintf("Blood needed: %s", request.BloodType),
			Message:      fmt.Sprintf("%d unit(s) of %s needed at %s (%s urgency)", request.Units, request.BloodType, request.LocationName, request.Urgency),
			Type:         domain.NotifyRequest,
			RelatedModel: "blood_request",
			RelatedID:    &requestID,
			Priority:     priority,
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			log.Printf("⚠️  Could not notify donor %d: %v", donors[i].ID, err)
		}
	}
}

// NotifyDonationOffer tells the recipient a donor has offered blood
func (s *NotificationService) NotifyDonationOffer(ctx context.Context, donation *models.Donation) {
	donationID := donation.ID
	n := &models.Notification{
		UserID:       donation.RecipientID,
		Title:        "Donation offer received",
		Message:      fmt.Sprintf("A donor offered %d unit(s) of %s at %s.", donation.Units, donation.BloodType, donation.LocationName),
		Type:         domain.NotifyRequest,
		RelatedModel: "donation",
		RelatedID:    &donationID,
		Priority:     domain.PriorityHigh,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️  Could not notify recipient %d: %v", donation.RecipientID, err)
	}
}

// NotifyDonationCompleted thanks the donor after a completed donation
func (s *NotificationService) NotifyDonationCompleted(ctx context.Context, donation *models.Donation) {
	donationID := donation.ID
	n := &models.Notification{
		UserID:       donation.DonorID,
		Title:        "Donation completed",
		Message:      fmt.Sprintf("Thank you! Your donation of %d unit(s) of %s has been completed.", donation.Units, donation.BloodType),
		Type:         domain.NotifySuccess,
		RelatedModel: "donation",
		RelatedID:    &donationID,
		Priority:     domain.PriorityMedium,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️  Could not notify donor %d: %v", donation.DonorID, err)
	}
}

// NotifyAppointmentBooked confirms a booking to the donor
func (s *NotificationService) NotifyAppointmentBooked(ctx context.Context, appt *models.Appointment, userID uint) {
	apptID := appt.ID
	n := &models.Notification{
		UserID:       userID,
		Title:        "Appointment confirmed",
		Message:      fmt.Sprintf("Your donation appointment on %s at %s is confirmed.", appt.Date.Format("2006-01-02"), appt.SlotStart),
		Type:         domain.NotifyInfo,
		RelatedModel: "appointment",
		RelatedID:    &apptID,
		Priority:     domain.PriorityMedium,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️  Could not notify user %d: %v", userID, err)
	}
}

// NotifyAppointmentCancelled warns the donor about a cancelled appointment
func (s *NotificationService) NotifyAppointmentCancelled(ctx context.Context, appt *models.Appointment) {
	if appt.UserID == nil {
		return
	}
	apptID := appt.ID
	n := &models.Notification{
		UserID:       *appt.UserID,
		Title:        "Appointment cancelled",
		Message:      fmt.Sprintf("Your donation appointment on %s at %s was cancelled.", appt.Date.Format("2006-01-02"), appt.SlotStart),
		Type:         domain.NotifyWarning,
		RelatedModel: "appointment",
		RelatedID:    &apptID,
		Priority:     domain.PriorityHigh,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️  Could not notify user %d: %v", *appt.UserID, err)
	}
}

// NotifyAppointmentReminder sends the day-before reminder
func (s *NotificationService) NotifyAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	if appt.UserID == nil {
		return nil
	}
	apptID := appt.ID
	n := &models.Notification{
		UserID:       *appt.UserID,
		Title:        "Appointment reminder",
		Message:      fmt.Sprintf("Reminder: you have a donation appointment tomorrow at %s.", appt.SlotStart),
		Type:         domain.NotifyInfo,
		RelatedModel: "appointment",
		RelatedID:    &apptID,
		Priority:     domain.PriorityMedium,
	}
	return s.notificationRepo.Create(ctx, n)
}

// NotifyCampaignRegistration confirms campaign registration to the donor
func (s *NotificationService) NotifyCampaignRegistration(ctx context.Context, campaign *models.Campaign, userID uint) {
	campaignID := campaign.ID
	n := &models.Notification{
		UserID:       userID,
		Title:        "Campaign registration",
		Message:      fmt.Sprintf("You are registered for \"%s\" at %s.", campaign.Title, campaign.Location),
		Type:         domain.NotifyCampaign,
		RelatedModel: "campaign",
		RelatedID:    &campaignID,
		Priority:     domain.PriorityMedium,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️  Could not notify user %d: %v", userID, err)
	}
}
