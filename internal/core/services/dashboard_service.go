package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregation
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers     int64 `json:"total_users"`
	TotalDonors    int64 `json:"total_donors"`
	TotalHospitals int64 `json:"total_hospitals"`
	ActiveDonors   int64 `json:"active_donors"`

	// Request Statistics
	TotalRequests     int64 `json:"total_requests"`
	PendingRequests   int64 `json:"pending_requests"`
	FulfilledRequests int64 `json:"fulfilled_requests"`
	ExpiredRequests   int64 `json:"expired_requests"`

	// Donation Statistics
	TotalDonations     int64 `json:"total_donations"`
	CompletedDonations int64 `json:"completed_donations"`
	UnitsCollected     int64 `json:"units_collected"`

	// Inventory Statistics
	TotalAvailableUnits int64 `json:"total_available_units"`
	TotalReservedUnits  int64 `json:"total_reserved_units"`

	// This Month
	RequestsThisMonth  int64 `json:"requests_this_month"`
	DonationsThisMonth int64 `json:"donations_this_month"`

	// Per blood type
	BloodTypeStats []BloodTypeStat `json:"blood_type_stats"`

	// Recent Activity
	RecentRequests []RequestSummary `json:"recent_requests"`
}

// BloodTypeStat represents one blood type's supply and demand picture
type BloodTypeStat struct {
	BloodType       string `json:"blood_type"`
	Donors          int64  `json:"donors"`
	AvailableDonors int64  `json:"available_donors"`
	PendingRequests int64  `json:"pending_requests"`
	AvailableUnits  int64  `json:"available_units"`
}

// RequestSummary represents request summary
type RequestSummary struct {
	ID            uint      `json:"id"`
	RequesterName string    `json:"requester_name"`
	BloodType     string    `json:"blood_type"`
	Units         int       `json:"units"`
	Urgency       string    `json:"urgency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "donor").Count(&data.TotalDonors)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "hospital").Count(&data.TotalHospitals)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND is_available = ? AND deleted_at IS NULL", "donor", true).Count(&data.ActiveDonors)

	// Request counts by status
	s.db.WithContext(ctx).Table("blood_requests").Count(&data.TotalRequests)
	s.db.WithContext(ctx).Table("blood_requests").Where("status = ?", "PENDING").Count(&data.PendingRequests)
	s.db.WithContext(ctx).Table("blood_requests").Where("status = ?", "FULFILLED").Count(&data.FulfilledRequests)
	s.db.WithContext(ctx).Table("blood_requests").Where("status = ?", "EXPIRED").Count(&data.ExpiredRequests)

	// Donation counts and collected units
	s.db.WithContext(ctx).Table("donations").Count(&data.TotalDonations)
	s.db.WithContext(ctx).Table("donations").Where("status = ?", "completed").Count(&data.CompletedDonations)
	s.db.WithContext(ctx).Table("donations").
		Where("status = ?", "completed").
		Select("COALESCE(SUM(units), 0)").
		Scan(&data.UnitsCollected)

	// Inventory totals over live batches
	s.db.WithContext(ctx).Table("blood_inventories").
		Where("status IN ?", []string{"AVAILABLE", "RESERVED"}).
		Select("COALESCE(SUM(available_units), 0)").
		Scan(&data.TotalAvailableUnits)
	s.db.WithContext(ctx).Table("blood_inventories").
		Where("status IN ?", []string{"AVAILABLE", "RESERVED"}).
		Select("COALESCE(SUM(reserved_units), 0)").
		Scan(&data.TotalReservedUnits)

	// This month statistics
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("blood_requests").
		Where("created_at >= ?", startOfMonth).
		Count(&data.RequestsThisMonth)
	s.db.WithContext(ctx).Table("donations").
		Where("created_at >= ?", startOfMonth).
		Count(&data.DonationsThisMonth)

	// Supply and demand per blood type
	var stats []struct {
		BloodType       string
		Donors          int64
		AvailableDonors int64
	}
	s.db.WithContext(ctx).Table("users").
		Select(`
			blood_type,
			COUNT(*) as donors,
			SUM(CASE WHEN is_available = 1 THEN 1 ELSE 0 END) as available_donors
		`).
		Where("role = ? AND deleted_at IS NULL AND blood_type != ''", "donor").
		Group("blood_type").
		Order("blood_type ASC").
		Scan(&stats)

	data.BloodTypeStats = make([]BloodTypeStat, len(stats))
	for i, st := range stats {
		entry := BloodTypeStat{
			BloodType:       st.BloodType,
			Donors:          st.Donors,
			AvailableDonors: st.AvailableDonors,
		}
		s.db.WithContext(ctx).Table("blood_requests").
			Where("blood_type = ? AND status = ?", st.BloodType, "PENDING").
			Count(&entry.PendingRequests)
		s.db.WithContext(ctx).Table("blood_inventories").
			Where("blood_type = ? AND status IN ?", st.BloodType, []string{"AVAILABLE", "RESERVED"}).
			Select("COALESCE(SUM(available_units), 0)").
			Scan(&entry.AvailableUnits)
		data.BloodTypeStats[i] = entry
	}

	// Recent requests
	var recent []struct {
		ID            uint
		RequesterName string
		BloodType     string
		Units         int
		Urgency       string
		Status        string
		CreatedAt     time.Time
	}
	s.db.WithContext(ctx).Table("blood_requests").
		Select("blood_requests.id, users.name as requester_name, blood_requests.blood_type, blood_requests.units, blood_requests.urgency, blood_requests.status, blood_requests.created_at").
		Joins("LEFT JOIN users ON blood_requests.user_id = users.id").
		Order("blood_requests.created_at DESC").
		Limit(10).
		Scan(&recent)

	data.RecentRequests = make([]RequestSummary, len(recent))
	for i, r := range recent {
		data.RecentRequests[i] = RequestSummary{
			ID:            r.ID,
			RequesterName: r.RequesterName,
			BloodType:     r.BloodType,
			Units:         r.Units,
			Urgency:       r.Urgency,
			Status:        r.Status,
			CreatedAt:     r.CreatedAt,
		}
	}

	return data, nil
}

// ============================================================
// Hospital Stats
// ============================================================

// HospitalStatsData represents one hospital's operational numbers
type HospitalStatsData struct {
	// Inventory
	InventoryByBloodType []InventoryLine `json:"inventory_by_blood_type"`
	TotalAvailableUnits  int64           `json:"total_available_units"`
	TotalReservedUnits   int64           `json:"total_reserved_units"`
	ExpiringBatches      int64           `json:"expiring_batches"`

	// Campaigns
	TotalCampaigns  int64 `json:"total_campaigns"`
	ActiveCampaigns int64 `json:"active_campaigns"`

	// Appointments
	OpenSlots             int64 `json:"open_slots"`
	ConfirmedAppointments int64 `json:"confirmed_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
}

// InventoryLine is one blood type's unit totals
type InventoryLine struct {
	BloodType      string `json:"blood_type"`
	AvailableUnits int64  `json:"available_units"`
	ReservedUnits  int64  `json:"reserved_units"`
}

// GetHospitalStats returns stats for one hospital
func (s *DashboardService) GetHospitalStats(ctx context.Context, hospitalID uint) (*HospitalStatsData, error) {
	data := &HospitalStatsData{}

	// Inventory per blood type
	var lines []struct {
		BloodType      string
		AvailableUnits int64
		ReservedUnits  int64
	}
	s.db.WithContext(ctx).Table("blood_inventories").
		Select(`
			blood_type,
			COALESCE(SUM(available_units), 0) as available_units,
			COALESCE(SUM(reserved_units), 0) as reserved_units
		`).
		Where("hospital_id = ? AND status IN ?", hospitalID, []string{"AVAILABLE", "RESERVED"}).
		Group("blood_type").
		Order("blood_type ASC").
		Scan(&lines)

	data.InventoryByBloodType = make([]InventoryLine, len(lines))
	for i, l := range lines {
		data.InventoryByBloodType[i] = InventoryLine{
			BloodType:      l.BloodType,
			AvailableUnits: l.AvailableUnits,
			ReservedUnits:  l.ReservedUnits,
		}
		data.TotalAvailableUnits += l.AvailableUnits
		data.TotalReservedUnits += l.ReservedUnits
	}

	// Batches expiring within a week
	weekAhead := time.Now().AddDate(0, 0, 7)
	s.db.WithContext(ctx).Table("blood_inventories").
		Where("hospital_id = ? AND status IN ? AND expiry_date < ?", hospitalID, []string{"AVAILABLE", "RESERVED"}, weekAhead).
		Count(&data.ExpiringBatches)

	// Campaigns
	s.db.WithContext(ctx).Table("campaigns").Where("hospital_id = ?", hospitalID).Count(&data.TotalCampaigns)
	s.db.WithContext(ctx).Table("campaigns").Where("hospital_id = ? AND status = ?", hospitalID, "ACTIVE").Count(&data.ActiveCampaigns)

	// Appointments
	s.db.WithContext(ctx).Table("appointments").Where("hospital_id = ? AND status = ?", hospitalID, "SCHEDULED").Count(&data.OpenSlots)
	s.db.WithContext(ctx).Table("appointments").Where("hospital_id = ? AND status = ?", hospitalID, "CONFIRMED").Count(&data.ConfirmedAppointments)
	s.db.WithContext(ctx).Table("appointments").Where("hospital_id = ? AND status = ?", hospitalID, "COMPLETED").Count(&data.CompletedAppointments)

	return data, nil
}
