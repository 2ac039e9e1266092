package services

import (
	"context"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
)

// Function-field fakes so each test wires only the calls it expects.

type mockUserRepo struct {
	CreateFn           func(ctx context.Context, user *models.User) error
	GetByIDFn          func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFn       func(ctx context.Context, email string) (*models.User, error)
	UpdateFn           func(ctx context.Context, user *models.User) error
	DeleteFn           func(ctx context.Context, id uint) error
	ListFn             func(ctx context.Context, role string, offset, limit int) ([]models.User, int64, error)
	ListDonorsFn       func(ctx context.Context, filter repositories.DonorFilter) ([]models.User, error)
	FindNearbyFn       func(ctx context.Context, role string, longitude, latitude, maxMeters float64, bloodType string) ([]models.User, error)
	ExistsByEmailFn    func(ctx context.Context, email string) (bool, error)
	StatsByBloodTypeFn func(ctx context.Context) ([]repositories.UserStat, error)
}

var _ repositories.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.UpdateFn(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockUserRepo) List(ctx context.Context, role string, offset, limit int) ([]models.User, int64, error) {
	return m.ListFn(ctx, role, offset, limit)
}
func (m *mockUserRepo) ListDonors(ctx context.Context, filter repositories.DonorFilter) ([]models.User, error) {
	return m.ListDonorsFn(ctx, filter)
}
func (m *mockUserRepo) FindNearby(ctx context.Context, role string, longitude, latitude, maxMeters float64, bloodType string) ([]models.User, error) {
	return m.FindNearbyFn(ctx, role, longitude, latitude, maxMeters, bloodType)
}
func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.ExistsByEmailFn(ctx, email)
}
func (m *mockUserRepo) StatsByBloodType(ctx context.Context) ([]repositories.UserStat, error) {
	return m.StatsByBloodTypeFn(ctx)
}

type mockRefreshTokenRepo struct {
	CreateFn            func(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHashFn    func(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHashFn func(ctx context.Context, tokenHash string) error
	RevokeAllByUserIDFn func(ctx context.Context, userID uint) error
	DeleteExpiredFn     func(ctx context.Context) error
}

var _ repositories.RefreshTokenRepository = (*mockRefreshTokenRepo)(nil)

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.CreateFn(ctx, token)
}
func (m *mockRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	return m.GetByTokenHashFn(ctx, tokenHash)
}
func (m *mockRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return m.RevokeByTokenHashFn(ctx, tokenHash)
}
func (m *mockRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return m.RevokeAllByUserIDFn(ctx, userID)
}
func (m *mockRefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	return m.DeleteExpiredFn(ctx)
}

type mockRequestRepo struct {
	CreateFn                 func(ctx context.Context, request *models.BloodRequest) error
	GetByIDFn                func(ctx context.Context, id uint) (*models.BloodRequest, error)
	ListFn                   func(ctx context.Context, filter repositories.RequestFilter, offset, limit int) ([]models.BloodRequest, int64, error)
	ListPendingByBloodTypeFn func(ctx context.Context, bloodType string) ([]models.BloodRequest, error)
	UpdateFieldsIfPendingFn  func(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
	UpdateStatusIfPendingFn  func(ctx context.Context, id uint, status string) (bool, error)
	ExpirePastDueFn          func(ctx context.Context, now time.Time) (int64, error)
	DeleteFn                 func(ctx context.Context, id uint) error
	StatsFn                  func(ctx context.Context) ([]repositories.RequestStat, error)
}

var _ repositories.BloodRequestRepository = (*mockRequestRepo)(nil)

func (m *mockRequestRepo) Create(ctx context.Context, request *models.BloodRequest) error {
	return m.CreateFn(ctx, request)
}
func (m *mockRequestRepo) GetByID(ctx context.Context, id uint) (*models.BloodRequest, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockRequestRepo) List(ctx context.Context, filter repositories.RequestFilter, offset, limit int) ([]models.BloodRequest, int64, error) {
	return m.ListFn(ctx, filter, offset, limit)
}
func (m *mockRequestRepo) ListPendingByBloodType(ctx context.Context, bloodType string) ([]models.BloodRequest, error) {
	return m.ListPendingByBloodTypeFn(ctx, bloodType)
}
func (m *mockRequestRepo) UpdateFieldsIfPending(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	return m.UpdateFieldsIfPendingFn(ctx, id, fields)
}
func (m *mockRequestRepo) UpdateStatusIfPending(ctx context.Context, id uint, status string) (bool, error) {
	return m.UpdateStatusIfPendingFn(ctx, id, status)
}
func (m *mockRequestRepo) ExpirePastDue(ctx context.Context, now time.Time) (int64, error) {
	return m.ExpirePastDueFn(ctx, now)
}
func (m *mockRequestRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockRequestRepo) Stats(ctx context.Context) ([]repositories.RequestStat, error) {
	return m.StatsFn(ctx)
}

type mockDonationRepo struct {
	CreateFn            func(ctx context.Context, donation *models.Donation) error
	GetByIDFn           func(ctx context.Context, id uint) (*models.Donation, error)
	ListFn              func(ctx context.Context, filter repositories.DonationFilter, offset, limit int) ([]models.Donation, int64, error)
	ListByDonorFn       func(ctx context.Context, donorID uint) ([]models.Donation, error)
	ListByRecipientFn   func(ctx context.Context, recipientID uint) ([]models.Donation, error)
	FindNearbyPendingFn func(ctx context.Context, longitude, latitude, maxMeters float64) ([]models.Donation, error)
	UpdateStatusFn      func(ctx context.Context, id uint, status string) error
	CompleteFn          func(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error)
	DeleteFn            func(ctx context.Context, id uint) error
	StatsFn             func(ctx context.Context) ([]repositories.DonationStat, error)
}

var _ repositories.DonationRepository = (*mockDonationRepo)(nil)

func (m *mockDonationRepo) Create(ctx context.Context, donation *models.Donation) error {
	return m.CreateFn(ctx, donation)
}
func (m *mockDonationRepo) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockDonationRepo) List(ctx context.Context, filter repositories.DonationFilter, offset, limit int) ([]models.Donation, int64, error) {
	return m.ListFn(ctx, filter, offset, limit)
}
func (m *mockDonationRepo) ListByDonor(ctx context.Context, donorID uint) ([]models.Donation, error) {
	return m.ListByDonorFn(ctx, donorID)
}
func (m *mockDonationRepo) ListByRecipient(ctx context.Context, recipientID uint) ([]models.Donation, error) {
	return m.ListByRecipientFn(ctx, recipientID)
}
func (m *mockDonationRepo) FindNearbyPending(ctx context.Context, longitude, latitude, maxMeters float64) ([]models.Donation, error) {
	return m.FindNearbyPendingFn(ctx, longitude, latitude, maxMeters)
}
func (m *mockDonationRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return m.UpdateStatusFn(ctx, id, status)
}
func (m *mockDonationRepo) Complete(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error) {
	return m.CompleteFn(ctx, donation, completedAt)
}
func (m *mockDonationRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockDonationRepo) Stats(ctx context.Context) ([]repositories.DonationStat, error) {
	return m.StatsFn(ctx)
}

type mockInventoryRepo struct {
	CreateFn                   func(ctx context.Context, item *models.BloodInventory) error
	GetByIDFn                  func(ctx context.Context, id uint) (*models.BloodInventory, error)
	ListFn                     func(ctx context.Context, hospitalID uint, offset, limit int) ([]models.BloodInventory, int64, error)
	ListAvailableByBloodTypeFn func(ctx context.Context, bloodType string, hospitalID uint, now time.Time) ([]models.BloodInventory, error)
	UpdateFn                   func(ctx context.Context, item *models.BloodInventory) error
	ReserveFn                  func(ctx context.Context, id uint, units int) (bool, error)
	UseFn                      func(ctx context.Context, id uint, units int) (bool, error)
	ExpireOutdatedFn           func(ctx context.Context, now time.Time) (int64, error)
	DeleteFn                   func(ctx context.Context, id uint) error
	StatsByHospitalFn          func(ctx context.Context, hospitalID uint) ([]repositories.InventoryStat, error)
}

var _ repositories.InventoryRepository = (*mockInventoryRepo)(nil)

func (m *mockInventoryRepo) Create(ctx context.Context, item *models.BloodInventory) error {
	return m.CreateFn(ctx, item)
}
func (m *mockInventoryRepo) GetByID(ctx context.Context, id uint) (*models.BloodInventory, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockInventoryRepo) List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.BloodInventory, int64, error) {
	return m.ListFn(ctx, hospitalID, offset, limit)
}
func (m *mockInventoryRepo) ListAvailableByBloodType(ctx context.Context, bloodType string, hospitalID uint, now time.Time) ([]models.BloodInventory, error) {
	return m.ListAvailableByBloodTypeFn(ctx, bloodType, hospitalID, now)
}
func (m *mockInventoryRepo) Update(ctx context.Context, item *models.BloodInventory) error {
	return m.UpdateFn(ctx, item)
}
func (m *mockInventoryRepo) Reserve(ctx context.Context, id uint, units int) (bool, error) {
	return m.ReserveFn(ctx, id, units)
}
func (m *mockInventoryRepo) Use(ctx context.Context, id uint, units int) (bool, error) {
	return m.UseFn(ctx, id, units)
}
func (m *mockInventoryRepo) ExpireOutdated(ctx context.Context, now time.Time) (int64, error) {
	return m.ExpireOutdatedFn(ctx, now)
}
func (m *mockInventoryRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockInventoryRepo) StatsByHospital(ctx context.Context, hospitalID uint) ([]repositories.InventoryStat, error) {
	return m.StatsByHospitalFn(ctx, hospitalID)
}

type mockCampaignRepo struct {
	CreateFn                  func(ctx context.Context, campaign *models.Campaign) error
	GetByIDFn                 func(ctx context.Context, id uint) (*models.Campaign, error)
	ListFn                    func(ctx context.Context, hospitalID uint, offset, limit int) ([]models.Campaign, int64, error)
	ListActiveFn              func(ctx context.Context, now time.Time) ([]models.Campaign, error)
	UpdateFn                  func(ctx context.Context, campaign *models.Campaign) error
	DeleteFn                  func(ctx context.Context, id uint) error
	AddParticipantFn          func(ctx context.Context, participant *models.CampaignParticipant) error
	GetParticipantFn          func(ctx context.Context, campaignID, userID uint) (*models.CampaignParticipant, error)
	UpdateParticipantStatusFn func(ctx context.Context, campaignID, userID uint, status string) error
	ActivateDueFn             func(ctx context.Context, now time.Time) (int64, error)
	CompleteEndedFn           func(ctx context.Context, now time.Time) (int64, error)
}

var _ repositories.CampaignRepository = (*mockCampaignRepo)(nil)

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	return m.CreateFn(ctx, campaign)
}
func (m *mockCampaignRepo) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockCampaignRepo) List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.Campaign, int64, error) {
	return m.ListFn(ctx, hospitalID, offset, limit)
}
func (m *mockCampaignRepo) ListActive(ctx context.Context, now time.Time) ([]models.Campaign, error) {
	return m.ListActiveFn(ctx, now)
}
func (m *mockCampaignRepo) Update(ctx context.Context, campaign *models.Campaign) error {
	return m.UpdateFn(ctx, campaign)
}
func (m *mockCampaignRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockCampaignRepo) AddParticipant(ctx context.Context, participant *models.CampaignParticipant) error {
	return m.AddParticipantFn(ctx, participant)
}
func (m *mockCampaignRepo) GetParticipant(ctx context.Context, campaignID, userID uint) (*models.CampaignParticipant, error) {
	return m.GetParticipantFn(ctx, campaignID, userID)
}
func (m *mockCampaignRepo) UpdateParticipantStatus(ctx context.Context, campaignID, userID uint, status string) error {
	return m.UpdateParticipantStatusFn(ctx, campaignID, userID, status)
}
func (m *mockCampaignRepo) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	return m.ActivateDueFn(ctx, now)
}
func (m *mockCampaignRepo) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	return m.CompleteEndedFn(ctx, now)
}

type mockAppointmentRepo struct {
	CreateFn                func(ctx context.Context, appt *models.Appointment) error
	GetByIDFn               func(ctx context.Context, id uint) (*models.Appointment, error)
	ListForUserFn           func(ctx context.Context, userID uint) ([]models.Appointment, error)
	ListForHospitalFn       func(ctx context.Context, hospitalID uint) ([]models.Appointment, error)
	ListByHospitalAndDateFn func(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error)
	UpdateFn                func(ctx context.Context, appt *models.Appointment) error
	BookFn                  func(ctx context.Context, id, userID uint) (bool, error)
	DeleteFn                func(ctx context.Context, id uint) error
	ListPendingRemindersFn  func(ctx context.Context, date time.Time) ([]models.Appointment, error)
	MarkReminderSentFn      func(ctx context.Context, id uint) error
}

var _ repositories.AppointmentRepository = (*mockAppointmentRepo)(nil)

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	return m.CreateFn(ctx, appt)
}
func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockAppointmentRepo) ListForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	return m.ListForUserFn(ctx, userID)
}
func (m *mockAppointmentRepo) ListForHospital(ctx context.Context, hospitalID uint) ([]models.Appointment, error) {
	return m.ListForHospitalFn(ctx, hospitalID)
}
func (m *mockAppointmentRepo) ListByHospitalAndDate(ctx context.Context, hospitalID uint, date time.Time, statuses []string) ([]models.Appointment, error) {
	return m.ListByHospitalAndDateFn(ctx, hospitalID, date, statuses)
}
func (m *mockAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	return m.UpdateFn(ctx, appt)
}
func (m *mockAppointmentRepo) Book(ctx context.Context, id, userID uint) (bool, error) {
	return m.BookFn(ctx, id, userID)
}
func (m *mockAppointmentRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockAppointmentRepo) ListPendingReminders(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	return m.ListPendingRemindersFn(ctx, date)
}
func (m *mockAppointmentRepo) MarkReminderSent(ctx context.Context, id uint) error {
	return m.MarkReminderSentFn(ctx, id)
}

type mockNotificationRepo struct {
	CreateFn          func(ctx context.Context, n *models.Notification) error
	GetByIDFn         func(ctx context.Context, id uint) (*models.Notification, error)
	ListByUserFn      func(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error)
	CountUnreadFn     func(ctx context.Context, userID uint) (int64, error)
	MarkReadFn        func(ctx context.Context, id uint) error
	MarkAllReadFn     func(ctx context.Context, userID uint) error
	DeleteFn          func(ctx context.Context, id uint) error
	DeleteAllByUserFn func(ctx context.Context, userID uint) error
}

var _ repositories.NotificationRepository = (*mockNotificationRepo)(nil)

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return m.CreateFn(ctx, n)
}
func (m *mockNotificationRepo) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error) {
	return m.ListByUserFn(ctx, userID, offset, limit)
}
func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return m.CountUnreadFn(ctx, userID)
}
func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uint) error {
	return m.MarkReadFn(ctx, id)
}
func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	return m.MarkAllReadFn(ctx, userID)
}
func (m *mockNotificationRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockNotificationRepo) DeleteAllByUser(ctx context.Context, userID uint) error {
	return m.DeleteAllByUserFn(ctx, userID)
}
