package domain

// User roles
const (
	RoleDonor    = "donor"
	RoleHospital = "hospital"
	RoleAdmin    = "admin"
)

// Blood request statuses
const (
	RequestPending   = "PENDING"
	RequestFulfilled = "FULFILLED"
	RequestCancelled = "CANCELLED"
	RequestExpired   = "EXPIRED"
)

// Urgency levels
const (
	UrgencyLow       = "LOW"
	UrgencyMedium    = "MEDIUM"
	UrgencyHigh      = "HIGH"
	UrgencyEmergency = "EMERGENCY"
)

// Donation statuses
const (
	DonationPending   = "pending"
	DonationScheduled = "scheduled"
	DonationCompleted = "completed"
	DonationCancelled = "cancelled"
)

// Inventory statuses
const (
	InventoryAvailable = "AVAILABLE"
	InventoryReserved  = "RESERVED"
	InventoryExpired   = "EXPIRED"
	InventoryUsed      = "USED"
)

// Inventory sources
const (
	SourceDonation = "DONATION"
	SourceTransfer = "TRANSFER"
	SourcePurchase = "PURCHASE"
)

// Campaign statuses
const (
	CampaignUpcoming  = "UPCOMING"
	CampaignActive    = "ACTIVE"
	CampaignCompleted = "COMPLETED"
	CampaignCancelled = "CANCELLED"
)

// Campaign participant statuses
const (
	ParticipantRegistered = "REGISTERED"
	ParticipantConfirmed  = "CONFIRMED"
	ParticipantCompleted  = "COMPLETED"
	ParticipantCancelled  = "CANCELLED"
)

// Appointment statuses
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentNoShow    = "NO_SHOW"
)

// Notification types
const (
	NotifyInfo     = "INFO"
	NotifySuccess  = "SUCCESS"
	NotifyWarning  = "WARNING"
	NotifyError    = "ERROR"
	NotifyRequest  = "REQUEST"
	NotifyCampaign = "CAMPAIGN"
)

// Notification priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// MaxDonationUnits is the physiological cap per donation record
const MaxDonationUnits = 2

// BloodTypes lists the eight ABO/Rh combinations
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodType reports whether bt is one of the eight ABO/Rh combinations
func IsValidBloodType(bt string) bool {
	for _, v := range BloodTypes {
		if v == bt {
			return true
		}
	}
	return false
}

// IsValidUrgency reports whether u is a known urgency level
func IsValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// IsValidSource reports whether s is a known inventory source
func IsValidSource(s string) bool {
	switch s {
	case SourceDonation, SourceTransfer, SourcePurchase:
		return true
	}
	return false
}

// IsValidNotificationType reports whether t is a known notification type
func IsValidNotificationType(t string) bool {
	switch t {
	case NotifyInfo, NotifySuccess, NotifyWarning, NotifyError, NotifyRequest, NotifyCampaign:
		return true
	}
	return false
}

// IsValidPriority reports whether p is a known notification priority
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
