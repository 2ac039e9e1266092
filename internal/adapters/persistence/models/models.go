package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table (donors, hospitals and admins share it)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	Phone        string         `gorm:"size:30" json:"phone"`
	Address      string         `gorm:"size:255" json:"address"`
	Role         string         `gorm:"size:20;not null;default:'donor';index" json:"role"`
	BloodType    string         `gorm:"size:5;index" json:"blood_type,omitempty"`
	Longitude    float64        `json:"longitude"`
	Latitude     float64        `json:"latitude"`
	IsAvailable  bool           `gorm:"default:true" json:"is_available"`
	LastDonation *time.Time     `json:"last_donation"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Role         string     `json:"role"`
	BloodType    string     `json:"blood_type,omitempty"`
	Longitude    float64    `json:"longitude"`
	Latitude     float64    `json:"latitude"`
	IsAvailable  bool       `json:"is_available"`
	LastDonation *time.Time `json:"last_donation,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		Role:         u.Role,
		BloodType:    u.BloodType,
		Longitude:    u.Longitude,
		Latitude:     u.Latitude,
		IsAvailable:  u.IsAvailable,
		LastDonation: u.LastDonation,
		CreatedAt:    u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Blood Requests
// ============================================================

// BloodRequest represents blood_requests table
type BloodRequest struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	UserID       uint                 `gorm:"not null;index" json:"user_id"`
	BloodType    string               `gorm:"size:5;not null;index" json:"blood_type"`
	Units        int                  `gorm:"not null" json:"units"`
	Urgency      string               `gorm:"size:20;not null" json:"urgency"`
	Longitude    float64              `json:"longitude"`
	Latitude     float64              `json:"latitude"`
	LocationName string               `gorm:"size:200" json:"location_name"`
	Status       string               `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Purpose      string               `gorm:"type:text" json:"purpose"`
	Notes        string               `gorm:"type:text" json:"notes"`
	RequiredBy   time.Time            `gorm:"not null" json:"required_by"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Requester    *User                `gorm:"foreignKey:UserID" json:"requester,omitempty"`
	Fulfillments []RequestFulfillment `gorm:"foreignKey:RequestID" json:"fulfillments,omitempty"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}

// RequestFulfillment links a completed donation to the request it fulfilled
type RequestFulfillment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequestID   uint      `gorm:"not null;index" json:"request_id"`
	DonationID  uint      `gorm:"not null;uniqueIndex" json:"donation_id"`
	Units       int       `gorm:"not null" json:"units"`
	FulfilledAt time.Time `gorm:"not null" json:"fulfilled_at"`

	Donation *Donation `gorm:"foreignKey:DonationID" json:"donation,omitempty"`
}

func (RequestFulfillment) TableName() string {
	return "request_fulfillments"
}

// BloodRequestResponse DTO
type BloodRequestResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	RequesterName string    `json:"requester_name,omitempty"`
	BloodType     string    `json:"blood_type"`
	Units         int       `json:"units"`
	Urgency       string    `json:"urgency"`
	Longitude     float64   `json:"longitude"`
	Latitude      float64   `json:"latitude"`
	LocationName  string    `json:"location_name,omitempty"`
	Status        string    `json:"status"`
	Purpose       string    `json:"purpose"`
	Notes         string    `json:"notes,omitempty"`
	RequiredBy    time.Time `json:"required_by"`
	DistanceKm    *float64  `json:"distance_km,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *BloodRequest) ToResponse() *BloodRequestResponse {
	resp := &BloodRequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		BloodType:    r.BloodType,
		Units:        r.Units,
		Urgency:      r.Urgency,
		Longitude:    r.Longitude,
		Latitude:     r.Latitude,
		LocationName: r.LocationName,
		Status:       r.Status,
		Purpose:      r.Purpose,
		Notes:        r.Notes,
		RequiredBy:   r.RequiredBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Requester != nil {
		resp.RequesterName = r.Requester.Name
	}
	return resp
}

// ============================================================
// Donations
// ============================================================

// Donation represents donations table
type Donation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DonorID      uint      `gorm:"not null;index" json:"donor_id"`
	RecipientID  uint      `gorm:"not null;index" json:"recipient_id"`
	RequestID    *uint     `gorm:"index" json:"request_id"`
	BloodType    string    `gorm:"size:5;not null;index" json:"blood_type"`
	Units        int       `gorm:"not null" json:"units"`
	Status       string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DonationDate time.Time `gorm:"not null" json:"donation_date"`
	Longitude    float64   `json:"longitude"`
	Latitude     float64   `json:"latitude"`
	LocationName string    `gorm:"size:200;not null" json:"location_name"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Donor     *User `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// ============================================================
// Blood Inventory
// ============================================================

// BloodInventory represents blood_inventories table
type BloodInventory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HospitalID     uint      `gorm:"not null;index:idx_inventory_lookup" json:"hospital_id"`
	BloodType      string    `gorm:"size:5;not null;index:idx_inventory_lookup" json:"blood_type"`
	AvailableUnits int       `gorm:"not null;default:0" json:"available_units"`
	ReservedUnits  int       `gorm:"not null;default:0" json:"reserved_units"`
	ExpiryDate     time.Time `gorm:"not null" json:"expiry_date"`
	Status         string    `gorm:"size:20;not null;default:'AVAILABLE';index:idx_inventory_lookup" json:"status"`
	Source         string    `gorm:"size:20;not null" json:"source"`
	DonationID     *uint     `json:"donation_id"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Hospital *User     `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Donation *Donation `gorm:"foreignKey:DonationID" json:"donation,omitempty"`
}

func (BloodInventory) TableName() string {
	return "blood_inventories"
}

// ============================================================
// Campaigns
// ============================================================

// Campaign represents campaigns table
type Campaign struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HospitalID     uint      `gorm:"not null;index" json:"hospital_id"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	StartDate      time.Time `gorm:"not null;index" json:"start_date"`
	EndDate        time.Time `gorm:"not null" json:"end_date"`
	Location       string    `gorm:"size:200;not null" json:"location"`
	TargetUnits    int       `gorm:"not null" json:"target_units"`
	CollectedUnits int       `gorm:"not null;default:0" json:"collected_units"`
	Status         string    `gorm:"size:20;not null;default:'UPCOMING';index" json:"status"`
	BloodTypes     string    `gorm:"size:60" json:"-"`
	MinAge         int       `json:"min_age,omitempty"`
	MaxAge         int       `json:"max_age,omitempty"`
	MinWeight      int       `json:"min_weight,omitempty"`
	ContactPhone   string    `gorm:"size:30" json:"contact_phone,omitempty"`
	ContactEmail   string    `gorm:"size:100" json:"contact_email,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Hospital     *User                 `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Participants []CampaignParticipant `gorm:"foreignKey:CampaignID" json:"participants,omitempty"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// BloodTypeList splits the stored comma-separated blood types
func (c *Campaign) BloodTypeList() []string {
	if c.BloodTypes == "" {
		return nil
	}
	return strings.Split(c.BloodTypes, ",")
}

// SetBloodTypes stores a blood type list as a comma-separated string
func (c *Campaign) SetBloodTypes(types []string) {
	c.BloodTypes = strings.Join(types, ",")
}

// CampaignParticipant represents campaign_participants table.
// The composite unique index prevents double registration even under
// concurrent requests.
type CampaignParticipant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampaignID   uint      `gorm:"not null;uniqueIndex:idx_campaign_user" json:"campaign_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_campaign_user" json:"user_id"`
	Status       string    `gorm:"size:20;not null;default:'REGISTERED'" json:"status"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CampaignParticipant) TableName() string {
	return "campaign_participants"
}

// CampaignResponse DTO
type CampaignResponse struct {
	ID             uint                  `json:"id"`
	HospitalID     uint                  `json:"hospital_id"`
	HospitalName   string                `json:"hospital_name,omitempty"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	StartDate      time.Time             `json:"start_date"`
	EndDate        time.Time             `json:"end_date"`
	Location       string                `json:"location"`
	TargetUnits    int                   `json:"target_units"`
	CollectedUnits int                   `json:"collected_units"`
	Status         string                `json:"status"`
	BloodTypes     []string              `json:"blood_types"`
	MinAge         int                   `json:"min_age,omitempty"`
	MaxAge         int                   `json:"max_age,omitempty"`
	MinWeight      int                   `json:"min_weight,omitempty"`
	ContactPhone   string                `json:"contact_phone,omitempty"`
	ContactEmail   string                `json:"contact_email,omitempty"`
	Participants   []CampaignParticipant `json:"participants,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func (c *Campaign) ToResponse() *CampaignResponse {
	resp := &CampaignResponse{
		ID:             c.ID,
		HospitalID:     c.HospitalID,
		Title:          c.Title,
		Description:    c.Description,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Location:       c.Location,
		TargetUnits:    c.TargetUnits,
		CollectedUnits: c.CollectedUnits,
		Status:         c.Status,
		BloodTypes:     c.BloodTypeList(),
		MinAge:         c.MinAge,
		MaxAge:         c.MaxAge,
		MinWeight:      c.MinWeight,
		ContactPhone:   c.ContactPhone,
		ContactEmail:   c.ContactEmail,
		Participants:   c.Participants,
		CreatedAt:      c.CreatedAt,
	}
	if c.Hospital != nil {
		resp.HospitalName = c.Hospital.Name
	}
	return resp
}

// ============================================================
// Appointments
// ============================================================

// HealthCheck is the embedded pre-donation screening record
type HealthCheck struct {
	Weight        float64 `json:"weight,omitempty"`
	BloodPressure string  `gorm:"size:20" json:"blood_pressure,omitempty"`
	Hemoglobin    float64 `json:"hemoglobin,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	IsEligible    *bool   `json:"is_eligible,omitempty"`
	Notes         string  `gorm:"size:255" json:"notes,omitempty"`
}

// Appointment represents appointments table
type Appointment struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       *uint       `gorm:"index:idx_appt_user" json:"user_id"`
	HospitalID   uint        `gorm:"not null;index:idx_appt_hospital" json:"hospital_id"`
	CampaignID   *uint       `gorm:"index" json:"campaign_id"`
	Date         time.Time   `gorm:"type:date;not null;index:idx_appt_hospital" json:"date"`
	SlotStart    string      `gorm:"size:5;not null" json:"slot_start"`
	SlotEnd      string      `gorm:"size:5;not null" json:"slot_end"`
	BloodType    string      `gorm:"size:5;not null" json:"blood_type"`
	Status       string      `gorm:"size:20;not null;default:'SCHEDULED';index:idx_appt_user" json:"status"`
	Notes        string      `gorm:"type:text" json:"notes"`
	HealthCheck  HealthCheck `gorm:"embedded;embeddedPrefix:health_" json:"health_check"`
	ReminderSent bool        `gorm:"default:false" json:"reminder_sent"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hospital *User     `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ============================================================
// Notifications
// ============================================================

// Notification represents notifications table
type Notification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_notif_user" json:"user_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Type         string    `gorm:"size:20;not null" json:"type"`
	RelatedModel string    `gorm:"size:30" json:"related_model,omitempty"`
	RelatedID    *uint     `json:"related_id,omitempty"`
	IsRead       bool      `gorm:"default:false;index:idx_notif_user" json:"is_read"`
	Priority     string    `gorm:"size:10;default:'MEDIUM'" json:"priority"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&BloodRequest{},
		&RequestFulfillment{},
		&Donation{},
		&BloodInventory{},
		&Campaign{},
		&CampaignParticipant{},
		&Appointment{},
		&Notification{},
	)
}
