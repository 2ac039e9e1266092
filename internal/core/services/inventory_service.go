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

// Inventory errors
var (
	ErrInventoryNotFound   = errors.New("inventory item not found")
	ErrInventoryNotOwned   = errors.New("inventory belongs to another hospital")
	ErrNotEnoughAvailable  = errors.New("not enough available units")
	ErrNotEnoughReserved   = errors.New("not enough reserved units")
	ErrInvalidSource       = errors.New("invalid inventory source")
	ErrPastExpiryDate      = errors.New("expiry date must be in the future")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
)

// InventoryService handles blood inventory business logic
type InventoryService struct {
	inventoryRepo repositories.InventoryRepository
	userRepo      repositories.UserRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repositories.InventoryRepository,
	userRepo repositories.UserRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
	}
}

// CreateInventoryInput represents inventory creation input
type CreateInventoryInput struct {
	BloodType      string    `json:"blood_type" validate:"required"`
	AvailableUnits int       `json:"available_units" validate:"required,min=1"`
	ExpiryDate     time.Time `json:"expiry_date" validate:"required"`
	Source         string    `json:"source" validate:"required"`
	DonationID     *uint     `json:"donation_id"`
	Notes          string    `json:"notes"`
}

// UpdateInventoryInput represents inventory update input
type UpdateInventoryInput struct {
	ExpiryDate *time.Time `json:"expiry_date"`
	Notes      string     `json:"notes"`
}

// UnitsInput represents a reserve or use quantity
type UnitsInput struct {
	Units int `json:"units" validate:"required,min=1"`
}

// Create records a new inventory batch for a hospital
func (s *InventoryService) Create(ctx context.Context, hospitalID uint, input *CreateInventoryInput) (*models.BloodInventory, error) {
	// 1. Validate input
	if !domain.IsValidBloodType(input.BloodType) {
		return nil, ErrBadBloodType
	}
	if input.AvailableUnits <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if !domain.IsValidSource(input.Source) {
		return nil, ErrInvalidSource
	}
	if !input.ExpiryDate.After(time.Now()) {
		return nil, ErrPastExpiryDate
	}

	// 2. Create the batch
	item := &models.BloodInventory{
		HospitalID:     hospitalID,
		BloodType:      input.BloodType,
		AvailableUnits: input.AvailableUnits,
		ReservedUnits:  0,
		ExpiryDate:     input.ExpiryDate,
		Status:         domain.DeriveInventoryStatus(input.AvailableUnits, 0),
		Source:         input.Source,
		DonationID:     input.DonationID,
		Notes:          input.Notes,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	log.Printf("✅ Inventory created: ID %d (%s, %d units, hospital %d)",
		item.ID, item.BloodType, item.AvailableUnits, hospitalID)

	return item, nil
}

// GetByID returns a single inventory item
func (s *InventoryService) GetByID(ctx context.Context, id uint) (*models.BloodInventory, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return item, nil
}

// List lists inventory, optionally scoped to one hospital, with pagination
func (s *InventoryService) List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.BloodInventory, int64, error) {
	return s.inventoryRepo.List(ctx, hospitalID, offset, limit)
}

// ListByBloodType lists unexpired AVAILABLE batches of one blood type
func (s *InventoryService) ListByBloodType(ctx context.Context, bloodType string, hospitalID uint) ([]models.BloodInventory, error) {
	if !domain.IsValidBloodType(bloodType) {
		return nil, ErrBadBloodType
	}
	return s.inventoryRepo.ListAvailableByBloodType(ctx, bloodType, hospitalID, time.Now())
}

// Update edits an item's expiry date or notes. Hospitals may only touch
// their own stock.
func (s *InventoryService) Update(ctx context.Context, id, hospitalID uint, isAdmin bool, input *UpdateInventoryInput) (*models.BloodInventory, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	if !isAdmin && item.HospitalID != hospitalID {
		return nil, ErrInventoryNotOwned
	}

	if input.ExpiryDate != nil {
		if !input.ExpiryDate.After(time.Now()) {
			return nil, ErrPastExpiryDate
		}
		item.ExpiryDate = *input.ExpiryDate
	}
	if input.Notes != "" {
		item.Notes = input.Notes
	}

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	log.Printf("✅ Inventory updated: ID %d", id)
	return item, nil
}

// Reserve moves units from available to reserved. The repository runs a
// single guarded statement, so two concurrent reservations can never
// drive the counter negative.
func (s *InventoryService) Reserve(ctx context.Context, id, hospitalID uint, isAdmin bool, units int) (*models.BloodInventory, error) {
	if units <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	if !isAdmin && item.HospitalID != hospitalID {
		return nil, ErrInventoryNotOwned
	}

	ok, err := s.inventoryRepo.Reserve(ctx, id, units)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEnoughAvailable
	}

	item, err = s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Reserved %d unit(s) of inventory ID %d (now %s)", units, id, item.Status)
	return item, nil
}

// Use consumes previously reserved units
func (s *InventoryService) Use(ctx context.Context, id, hospitalID uint, isAdmin bool, units int) (*models.BloodInventory, error) {
	if units <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	if !isAdmin && item.HospitalID != hospitalID {
		return nil, ErrInventoryNotOwned
	}

	ok, err := s.inventoryRepo.Use(ctx, id, units)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEnoughReserved
	}

	item, err = s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Used %d unit(s) of inventory ID %d (now %s)", units, id, item.Status)
	return item, nil
}

// Delete removes an inventory item (admin)
func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.inventoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryNotFound
		}
		return err
	}

	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Inventory deleted: ID %d", id)
	return nil
}

// StatsByHospital returns per-blood-type unit totals for one hospital
func (s *InventoryService) StatsByHospital(ctx context.Context, hospitalID uint) ([]repositories.InventoryStat, error) {
	return s.inventoryRepo.StatsByHospital(ctx, hospitalID)
}
