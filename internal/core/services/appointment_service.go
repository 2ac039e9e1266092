package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"gorm.io/gorm"
)

// Appointment errors
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment belongs to another user")
	ErrAppointmentTaken    = errors.New("appointment is no longer available")
	ErrBadAppointmentMove  = errors.New("appointment status transition not allowed")
	ErrSlotOutsideHours    = errors.New("slot is outside working hours")
	ErrSlotTaken           = errors.New("slot already has an appointment")
	ErrBadDate             = errors.New("invalid date, expected YYYY-MM-DD")
)

// Working hours: 30-minute slots from 09:00 up to but not including 17:00.
const (
	slotOpenHour    = 9
	slotCloseHour   = 17
	slotMinutes     = 30
	slotTimeLayout  = "15:04"
	apptDateLayout  = "2006-01-02"
)

// AppointmentService handles donation appointment business logic
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	notifier        *NotificationService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	notifier *NotificationService,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
	}
}

// CreateAppointmentInput represents appointment creation input (hospital
// publishes an open slot)
type CreateAppointmentInput struct {
	CampaignID *uint  `json:"campaign_id"`
	Date       string `json:"date" validate:"required"`
	SlotStart  string `json:"slot_start" validate:"required"`
	BloodType  string `json:"blood_type" validate:"required"`
	Notes      string `json:"notes"`
}

// HealthCheckInput represents pre-donation screening values
type HealthCheckInput struct {
	Weight        float64 `json:"weight"`
	BloodPressure string  `json:"blood_pressure"`
	Hemoglobin    float64 `json:"hemoglobin"`
	Temperature   float64 `json:"temperature"`
	IsEligible    *bool   `json:"is_eligible"`
	Notes         string  `json:"notes"`
}

// UpdateAppointmentStatusInput represents a status change by the hospital
type UpdateAppointmentStatusInput struct {
	Status      string            `json:"status" validate:"required"`
	HealthCheck *HealthCheckInput `json:"health_check"`
}

// SlotMinutesOfDay parses "HH:MM" into minutes since midnight
func slotMinutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse(slotTimeLayout, hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// GenerateDaySlots returns the full 30-minute slot grid for one day,
// chronological: 09:00, 09:30, ... 16:30.
func GenerateDaySlots() []string {
	var slots []string
	for m := slotOpenHour * 60; m < slotCloseHour*60; m += slotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// slotEnd computes the end label for a slot start
func slotEnd(start string) (string, error) {
	m, err := slotMinutesOfDay(start)
	if err != nil {
		return "", err
	}
	m += slotMinutes
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

// Create publishes an open appointment slot (hospital)
func (s *AppointmentService) Create(ctx context.Context, hospitalID uint, input *CreateAppointmentInput) (*models.Appointment, error) {
	// 1. Validate input
	if !domain.IsValidBloodType(input.BloodType) {
		return nil, ErrBadBloodType
	}
	date, err := time.Parse(apptDateLayout, input.Date)
	if err != nil {
		return nil, ErrBadDate
	}
	startMin, err := slotMinutesOfDay(input.SlotStart)
	if err != nil {
		return nil, ErrSlotOutsideHours
	}
	if startMin < slotOpenHour*60 || startMin+slotMinutes > slotCloseHour*60 || startMin%slotMinutes != 0 {
		return nil, ErrSlotOutsideHours
	}

	// 2. Reject a second appointment on the same live slot
	existing, err := s.appointmentRepo.ListByHospitalAndDate(ctx, hospitalID, date,
		[]string{domain.AppointmentScheduled, domain.AppointmentConfirmed})
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].SlotStart == input.SlotStart {
			return nil, ErrSlotTaken
		}
	}

	end, _ := slotEnd(input.SlotStart)

	// 3. Create
	appt := &models.Appointment{
		HospitalID: hospitalID,
		CampaignID: input.CampaignID,
		Date:       date,
		SlotStart:  input.SlotStart,
		SlotEnd:    end,
		BloodType:  input.BloodType,
		Status:     domain.AppointmentScheduled,
		Notes:      input.Notes,
	}
	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment slot published: ID %d (%s %s, hospital %d)",
		appt.ID, input.Date, input.SlotStart, hospitalID)

	return appt, nil
}

// GetByID returns a single appointment
func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appt, nil
}

// ListForUser lists the caller's booked appointments
func (s *AppointmentService) ListForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	return s.appointmentRepo.ListForUser(ctx, userID)
}

// ListForHospital lists a hospital's appointments
func (s *AppointmentService) ListForHospital(ctx context.Context, hospitalID uint) ([]models.Appointment, error) {
	return s.appointmentRepo.ListForHospital(ctx, hospitalID)
}

// AvailableSlots returns the day's slot grid minus slots whose start
// matches or falls inside a live appointment for that hospital and date.
func (s *AppointmentService) AvailableSlots(ctx context.Context, hospitalID uint, dateStr string) ([]string, error) {
	date, err := time.Parse(apptDateLayout, dateStr)
	if err != nil {
		return nil, ErrBadDate
	}

	appts, err := s.appointmentRepo.ListByHospitalAndDate(ctx, hospitalID, date,
		[]string{domain.AppointmentScheduled, domain.AppointmentConfirmed})
	if err != nil {
		return nil, err
	}

	available := make([]string, 0, 16)
	for _, slot := range GenerateDaySlots() {
		slotMin, _ := slotMinutesOfDay(slot)
		taken := false
		for i := range appts {
			startMin, err1 := slotMinutesOfDay(appts[i].SlotStart)
			endMin, err2 := slotMinutesOfDay(appts[i].SlotEnd)
			if err1 != nil || err2 != nil {
				continue
			}
			if slotMin >= startMin && slotMin < endMin {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, slot)
		}
	}
	return available, nil
}

// Book claims an open slot for a donor. The repository applies a
// conditional update, so two donors racing for one slot cannot both win.
func (s *AppointmentService) Book(ctx context.Context, id, userID uint) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if appt.Status != domain.AppointmentScheduled {
		return nil, ErrAppointmentTaken
	}

	booked, err := s.appointmentRepo.Book(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrAppointmentTaken
	}

	appt.UserID = &userID
	appt.Status = domain.AppointmentConfirmed

	if s.notifier != nil {
		s.notifier.NotifyAppointmentBooked(ctx, appt, userID)
	}

	log.Printf("✅ Appointment %d booked by user %d", id, userID)
	return appt, nil
}

// UpdateStatus moves an appointment along the transition table (hospital).
// Completion may carry health-check screening values.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, hospitalID uint, isAdmin bool, input *UpdateAppointmentStatusInput) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if !isAdmin && appt.HospitalID != hospitalID {
		return nil, ErrAppointmentNotOwned
	}

	if !domain.CanTransitionAppointment(appt.Status, input.Status) {
		return nil, ErrBadAppointmentMove
	}

	appt.Status = input.Status
	if input.HealthCheck != nil {
		appt.HealthCheck = models.HealthCheck{
			Weight:        input.HealthCheck.Weight,
			BloodPressure: input.HealthCheck.BloodPressure,
			Hemoglobin:    input.HealthCheck.Hemoglobin,
			Temperature:   input.HealthCheck.Temperature,
			IsEligible:    input.HealthCheck.IsEligible,
			Notes:         input.HealthCheck.Notes,
		}
	}

	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if input.Status == domain.AppointmentCancelled && s.notifier != nil {
		s.notifier.NotifyAppointmentCancelled(ctx, appt)
	}

	log.Printf("✅ Appointment %d status -> %s", id, input.Status)
	return appt, nil
}

// Cancel lets the booked donor cancel their own appointment
func (s *AppointmentService) Cancel(ctx context.Context, id, userID uint) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if appt.UserID == nil || *appt.UserID != userID {
		return nil, ErrAppointmentNotOwned
	}

	if !domain.CanTransitionAppointment(appt.Status, domain.AppointmentCancelled) {
		return nil, ErrBadAppointmentMove
	}

	appt.Status = domain.AppointmentCancelled
	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment %d cancelled by user %d", id, userID)
	return appt, nil
}

// Delete removes an appointment (admin)
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.appointmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Appointment deleted: ID %d", id)
	return nil
}
