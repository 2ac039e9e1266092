package services

import (
	"context"
	"testing"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDaySlots(t *testing.T) {
	slots := GenerateDaySlots()

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "16:30", slots[15])
}

func TestAppointmentCreateRejectsOffGridSlots(t *testing.T) {
	repo := &mockAppointmentRepo{
		ListByHospitalAndDateFn: func(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
			return nil, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	cases := []struct {
		name string
		slot string
	}{
		{"before opening", "08:30"},
		{"after closing", "17:00"},
		{"off the half hour", "09:15"},
		{"garbage", "late"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 7, &CreateAppointmentInput{
				Date:      "2026-10-01",
				SlotStart: tc.slot,
				BloodType: "A+",
			})
			assert.ErrorIs(t, err, ErrSlotOutsideHours)
		})
	}
}

func TestAppointmentCreateRejectsDuplicateSlot(t *testing.T) {
	repo := &mockAppointmentRepo{
		ListByHospitalAndDateFn: func(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
			return []models.Appointment{
				{ID: 1, SlotStart: "10:00", SlotEnd: "10:30", Status: domain.AppointmentScheduled},
			}, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	_, err := svc.Create(context.Background(), 7, &CreateAppointmentInput{
		Date:      "2026-10-01",
		SlotStart: "10:00",
		BloodType: "A+",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestAppointmentCreate(t *testing.T) {
	var created *models.Appointment
	repo := &mockAppointmentRepo{
		ListByHospitalAndDateFn: func(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
			return nil, nil
		},
		CreateFn: func(ctx context.Context, appt *models.Appointment) error {
			appt.ID = 3
			created = appt
			return nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	appt, err := svc.Create(context.Background(), 7, &CreateAppointmentInput{
		Date:      "2026-10-01",
		SlotStart: "16:30",
		BloodType: "AB-",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), appt.ID)
	assert.Equal(t, "17:00", created.SlotEnd)
	assert.Equal(t, domain.AppointmentScheduled, created.Status)
	assert.Nil(t, created.UserID)
}

func TestAvailableSlots(t *testing.T) {
	repo := &mockAppointmentRepo{
		ListByHospitalAndDateFn: func(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
			return []models.Appointment{
				{SlotStart: "09:00", SlotEnd: "09:30", Status: domain.AppointmentConfirmed},
				{SlotStart: "14:00", SlotEnd: "14:30", Status: domain.AppointmentScheduled},
			}, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	slots, err := svc.AvailableSlots(context.Background(), 7, "2026-10-01")
	require.NoError(t, err)
	assert.Len(t, slots, 14)
	assert.NotContains(t, slots, "09:00")
	assert.NotContains(t, slots, "14:00")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "14:30")
}

func TestAvailableSlotsEmptyDay(t *testing.T) {
	repo := &mockAppointmentRepo{
		ListByHospitalAndDateFn: func(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
			return nil, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	slots, err := svc.AvailableSlots(context.Background(), 7, "2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, GenerateDaySlots(), slots)

	_, err = svc.AvailableSlots(context.Background(), 7, "not-a-date")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestAppointmentBook(t *testing.T) {
	appt := &models.Appointment{ID: 1, HospitalID: 7, Status: domain.AppointmentScheduled}
	repo := &mockAppointmentRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Appointment, error) {
			return appt, nil
		},
		BookFn: func(ctx context.Context, id, userID uint) (bool, error) {
			if appt.Status != domain.AppointmentScheduled {
				return false, nil
			}
			appt.Status = domain.AppointmentConfirmed
			appt.UserID = &userID
			return true, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	got, err := svc.Book(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, got.Status)
	require.NotNil(t, got.UserID)
	assert.Equal(t, uint(42), *got.UserID)

	// second donor loses the race
	_, err = svc.Book(context.Background(), 1, 43)
	assert.ErrorIs(t, err, ErrAppointmentTaken)
}

func TestAppointmentBookRace(t *testing.T) {
	// The status pre-check passes but the conditional write loses:
	// another booking landed between read and write.
	repo := &mockAppointmentRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Appointment, error) {
			return &models.Appointment{ID: id, Status: domain.AppointmentScheduled}, nil
		},
		BookFn: func(ctx context.Context, id, userID uint) (bool, error) {
			return false, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	_, err := svc.Book(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrAppointmentTaken)
}

func TestAppointmentUpdateStatusTransitions(t *testing.T) {
	userID := uint(42)
	status := domain.AppointmentConfirmed
	repo := &mockAppointmentRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Appointment, error) {
			return &models.Appointment{ID: id, HospitalID: 7, UserID: &userID, Status: status}, nil
		},
		UpdateFn: func(ctx context.Context, appt *models.Appointment) error {
			status = appt.Status
			return nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	eligible := true
	got, err := svc.UpdateStatus(context.Background(), 1, 7, false, &UpdateAppointmentStatusInput{
		Status: domain.AppointmentCompleted,
		HealthCheck: &HealthCheckInput{
			Weight:     70,
			Hemoglobin: 13.5,
			IsEligible: &eligible,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCompleted, got.Status)
	assert.Equal(t, 13.5, got.HealthCheck.Hemoglobin)

	// completed is terminal
	_, err = svc.UpdateStatus(context.Background(), 1, 7, false, &UpdateAppointmentStatusInput{
		Status: domain.AppointmentCancelled,
	})
	assert.ErrorIs(t, err, ErrBadAppointmentMove)
}

func TestAppointmentUpdateStatusOwnership(t *testing.T) {
	repo := &mockAppointmentRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Appointment, error) {
			return &models.Appointment{ID: id, HospitalID: 7, Status: domain.AppointmentScheduled}, nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, 8, false, &UpdateAppointmentStatusInput{
		Status: domain.AppointmentCancelled,
	})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestAppointmentCancelByDonor(t *testing.T) {
	userID := uint(42)
	appt := &models.Appointment{ID: 1, HospitalID: 7, UserID: &userID, Status: domain.AppointmentConfirmed}
	repo := &mockAppointmentRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Appointment, error) {
			return appt, nil
		},
		UpdateFn: func(ctx context.Context, a *models.Appointment) error {
			return nil
		},
	}
	svc := NewAppointmentService(repo, nil)

	// only the booked donor may cancel
	_, err := svc.Cancel(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	got, err := svc.Cancel(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, got.Status)
}
