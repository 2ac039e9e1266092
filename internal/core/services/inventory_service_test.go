package services

import (
	"context"
	"testing"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func inventoryFixture() *models.BloodInventory {
	return &models.BloodInventory{
		ID:             1,
		HospitalID:     7,
		BloodType:      "O-",
		AvailableUnits: 10,
		ReservedUnits:  0,
		ExpiryDate:     time.Now().Add(30 * 24 * time.Hour),
		Status:         domain.InventoryAvailable,
		Source:         domain.SourceDonation,
	}
}

func TestInventoryReserve(t *testing.T) {
	item := inventoryFixture()
	repo := &mockInventoryRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodInventory, error) {
			return item, nil
		},
		ReserveFn: func(ctx context.Context, id uint, units int) (bool, error) {
			if units > item.AvailableUnits {
				return false, nil
			}
			item.AvailableUnits -= units
			item.ReservedUnits += units
			if item.AvailableUnits == 0 {
				item.Status = domain.InventoryReserved
			}
			return true, nil
		},
	}
	svc := NewInventoryService(repo, nil)

	// 4 of 10
	got, err := svc.Reserve(context.Background(), 1, 7, false, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, got.AvailableUnits)
	assert.Equal(t, 4, got.ReservedUnits)
	assert.Equal(t, domain.InventoryAvailable, got.Status)

	// 6 more drains the batch
	got, err = svc.Reserve(context.Background(), 1, 7, false, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableUnits)
	assert.Equal(t, 10, got.ReservedUnits)
	assert.Equal(t, domain.InventoryReserved, got.Status)

	// nothing left
	_, err = svc.Reserve(context.Background(), 1, 7, false, 1)
	assert.ErrorIs(t, err, ErrNotEnoughAvailable)
}

func TestInventoryReserveGuards(t *testing.T) {
	item := inventoryFixture()
	repo := &mockInventoryRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodInventory, error) {
			return item, nil
		},
	}
	svc := NewInventoryService(repo, nil)

	// non-positive quantity rejected before any repo call
	_, err := svc.Reserve(context.Background(), 1, 7, false, 0)
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)

	// another hospital cannot touch the batch
	_, err = svc.Reserve(context.Background(), 1, 99, false, 1)
	assert.ErrorIs(t, err, ErrInventoryNotOwned)

	// admin can
	repo.ReserveFn = func(ctx context.Context, id uint, units int) (bool, error) {
		item.AvailableUnits -= units
		item.ReservedUnits += units
		return true, nil
	}
	_, err = svc.Reserve(context.Background(), 1, 99, true, 1)
	assert.NoError(t, err)
}

func TestInventoryUse(t *testing.T) {
	item := inventoryFixture()
	item.AvailableUnits = 0
	item.ReservedUnits = 10
	item.Status = domain.InventoryReserved

	repo := &mockInventoryRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodInventory, error) {
			return item, nil
		},
		UseFn: func(ctx context.Context, id uint, units int) (bool, error) {
			if units > item.ReservedUnits {
				return false, nil
			}
			item.ReservedUnits -= units
			if item.AvailableUnits == 0 && item.ReservedUnits == 0 {
				item.Status = domain.InventoryUsed
			}
			return true, nil
		},
	}
	svc := NewInventoryService(repo, nil)

	got, err := svc.Use(context.Background(), 1, 7, false, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReservedUnits)
	assert.Equal(t, domain.InventoryUsed, got.Status)

	// can only consume what was reserved
	_, err = svc.Use(context.Background(), 1, 7, false, 1)
	assert.ErrorIs(t, err, ErrNotEnoughReserved)
}

func TestInventoryReserveNotFound(t *testing.T) {
	repo := &mockInventoryRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.BloodInventory, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewInventoryService(repo, nil)

	_, err := svc.Reserve(context.Background(), 42, 7, false, 1)
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestInventoryCreateValidation(t *testing.T) {
	svc := NewInventoryService(&mockInventoryRepo{}, nil)

	_, err := svc.Create(context.Background(), 7, &CreateInventoryInput{
		BloodType:      "X+",
		AvailableUnits: 5,
		ExpiryDate:     time.Now().Add(24 * time.Hour),
		Source:         domain.SourceDonation,
	})
	assert.ErrorIs(t, err, ErrBadBloodType)

	_, err = svc.Create(context.Background(), 7, &CreateInventoryInput{
		BloodType:      "O-",
		AvailableUnits: 5,
		ExpiryDate:     time.Now().Add(-time.Hour),
		Source:         domain.SourceDonation,
	})
	assert.ErrorIs(t, err, ErrPastExpiryDate)

	_, err = svc.Create(context.Background(), 7, &CreateInventoryInput{
		BloodType:      "O-",
		AvailableUnits: 0,
		ExpiryDate:     time.Now().Add(24 * time.Hour),
		Source:         domain.SourceDonation,
	})
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)
}

func TestInventoryCreateDerivesStatus(t *testing.T) {
	repo := &mockInventoryRepo{
		CreateFn: func(ctx context.Context, item *models.BloodInventory) error {
			item.ID = 1
			return nil
		},
	}
	svc := NewInventoryService(repo, nil)

	item, err := svc.Create(context.Background(), 7, &CreateInventoryInput{
		BloodType:      "O-",
		AvailableUnits: 5,
		ExpiryDate:     time.Now().Add(24 * time.Hour),
		Source:         domain.SourceDonation,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DeriveInventoryStatus(5, 0), item.Status)
	assert.Equal(t, domain.InventoryAvailable, item.Status)
	assert.Zero(t, item.ReservedUnits)
}
