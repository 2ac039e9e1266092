package repositories

import (
	"context"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
)

// DonorFilter narrows donor listings
type DonorFilter struct {
	BloodType   string
	Available   *bool
	Search      string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, role string, offset, limit int) ([]models.User, int64, error)
	ListDonors(ctx context.Context, filter DonorFilter) ([]models.User, error)
	FindNearby(ctx context.Context, role string, longitude, latitude, maxMeters float64, bloodType string) ([]models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	StatsByBloodType(ctx context.Context) ([]UserStat, error)
}

// UserStat is a per-blood-type donor availability count
type UserStat struct {
	BloodType string `json:"blood_type"`
	Total     int64  `json:"total"`
	Available int64  `json:"available"`
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// RequestFilter narrows blood request listings
type RequestFilter struct {
	UserID    uint
	BloodType string
	Urgency   string
	Status    string
}

// RequestStat is a per-blood-type request status breakdown
type RequestStat struct {
	BloodType string `json:"blood_type"`
	Total     int64  `json:"total"`
	Pending   int64  `json:"pending"`
	Fulfilled int64  `json:"fulfilled"`
	Cancelled int64  `json:"cancelled"`
	Expired   int64  `json:"expired"`
}

// BloodRequestRepository defines blood request repository interface
type BloodRequestRepository interface {
	Create(ctx context.Context, request *models.BloodRequest) error
	GetByID(ctx context.Context, id uint) (*models.BloodRequest, error)
	List(ctx context.Context, filter RequestFilter, offset, limit int) ([]models.BloodRequest, int64, error)
	ListPendingByBloodType(ctx context.Context, bloodType string) ([]models.BloodRequest, error)
	UpdateFieldsIfPending(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
	UpdateStatusIfPending(ctx context.Context, id uint, status string) (bool, error)
	ExpirePastDue(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) ([]RequestStat, error)
}

// DonationFilter narrows donation listings
type DonationFilter struct {
	Status      string
	BloodType   string
	DonorID     uint
	RecipientID uint
}

// DonationStat is a per-blood-type donation completion count
type DonationStat struct {
	BloodType string `json:"blood_type"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
}

// DonationRepository defines donation repository interface
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id uint) (*models.Donation, error)
	List(ctx context.Context, filter DonationFilter, offset, limit int) ([]models.Donation, int64, error)
	ListByDonor(ctx context.Context, donorID uint) ([]models.Donation, error)
	ListByRecipient(ctx context.Context, recipientID uint) ([]models.Donation, error)
	FindNearbyPending(ctx context.Context, longitude, latitude, maxMeters float64) ([]models.Donation, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	// Complete atomically marks the donation completed, stamps the donor's
	// last-donation date and records request fulfillment in one transaction.
	// The status flip is conditional on pending/scheduled; false means a
	// concurrent writer finalized the donation first and nothing was written.
	Complete(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) ([]DonationStat, error)
}

// InventoryStat is a per-blood-type unit total
type InventoryStat struct {
	BloodType      string `json:"blood_type"`
	AvailableUnits int64  `json:"available_units"`
	ReservedUnits  int64  `json:"reserved_units"`
}

// InventoryRepository defines blood inventory repository interface
type InventoryRepository interface {
	Create(ctx context.Context, item *models.BloodInventory) error
	GetByID(ctx context.Context, id uint) (*models.BloodInventory, error)
	List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.BloodInventory, int64, error)
	ListAvailableByBloodType(ctx context.Context, bloodType string, hospitalID uint, now time.Time) ([]models.BloodInventory, error)
	Update(ctx context.Context, item *models.BloodInventory) error
	// Reserve and Use are single conditional statements; they return false
	// without mutating anything when the guarded counter is too small.
	Reserve(ctx context.Context, id uint, units int) (bool, error)
	Use(ctx context.Context, id uint, units int) (bool, error)
	ExpireOutdated(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id uint) error
	StatsByHospital(ctx context.Context, hospitalID uint) ([]InventoryStat, error)
}

// CampaignRepository defines campaign repository interface
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id uint) (*models.Campaign, error)
	List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.Campaign, int64, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id uint) error
	AddParticipant(ctx context.Context, participant *models.CampaignParticipant) error
	GetParticipant(ctx context.Context, campaignID, userID uint) (*models.CampaignParticipant, error)
	UpdateParticipantStatus(ctx context.Context, campaignID, userID uint, status string) error
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
	CompleteEnded(ctx context.Context, now time.Time) (int64, error)
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Appointment, error)
	ListForHospital(ctx context.Context, hospitalID uint) ([]models.Appointment, error)
	ListByHospitalAndDate(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	// Book conditionally assigns the user and flips status to CONFIRMED only
	// while the appointment is still SCHEDULED.
	Book(ctx context.Context, id, userID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	ListPendingReminders(ctx context.Context, date time.Time) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uint) error
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	Delete(ctx context.Context, id uint) error
	DeleteAllByUser(ctx context.Context, userID uint) error
}
