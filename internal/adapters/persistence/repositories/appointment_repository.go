package repositories

import (
	"context"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// appointmentRepository handles appointment database operations
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Hospital").
		Preload("Campaign").
		First(&appt, id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("user_id = ?", userID).
		Order("date DESC, slot_start DESC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) ListForHospital(ctx context.Context, hospitalID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("hospital_id = ?", hospitalID).
		Order("date DESC, slot_start ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) ListByHospitalAndDate(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
	var appts []models.Appointment
	query := r.db.WithContext(ctx).
		Where("hospital_id = ? AND date = ?", hospitalID, date.Format("2006-01-02"))
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("slot_start ASC").Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// Book assigns the user and confirms in one conditional statement; a
// competing booking loses the race and gets false back.
func (r *appointmentRepository) Book(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ? AND user_id IS NULL", id, "SCHEDULED").
		Updates(map[string]interface{}{
			"user_id": userID,
			"status":  "CONFIRMED",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

func (r *appointmentRepository) ListPendingReminders(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Hospital").
		Where("date = ? AND status = ? AND reminder_sent = ? AND user_id IS NOT NULL",
			date.Format("2006-01-02"), "CONFIRMED", false).
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) MarkReminderSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}
