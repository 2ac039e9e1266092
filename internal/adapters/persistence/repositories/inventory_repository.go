package repositories

import (
	"context"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// inventoryRepository handles blood inventory database operations
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.BloodInventory) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uint) (*models.BloodInventory, error) {
	var item models.BloodInventory
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Preload("Donation").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.BloodInventory, int64, error) {
	var items []models.BloodInventory
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BloodInventory{})
	if hospitalID != 0 {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Hospital").
		Order("expiry_date ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *inventoryRepository) ListAvailableByBloodType(ctx context.Context, bloodType string, hospitalID uint, now time.Time) ([]models.BloodInventory, error) {
	var items []models.BloodInventory

	query := r.db.WithContext(ctx).
		Where("blood_type = ? AND status = ? AND expiry_date > ?", bloodType, "AVAILABLE", now)
	if hospitalID != 0 {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	err := query.Preload("Hospital").Order("expiry_date ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) Update(ctx context.Context, item *models.BloodInventory) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Reserve moves units from available to reserved in one conditional statement.
// The status CASE is evaluated against the pre-update counter, so it must come
// before the counter assignments (MySQL applies SET clauses left to right).
func (r *inventoryRepository) Reserve(ctx context.Context, id uint, units int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE blood_inventories
		SET status = CASE WHEN available_units - ? = 0 THEN 'RESERVED' ELSE 'AVAILABLE' END,
		    available_units = available_units - ?,
		    reserved_units = reserved_units + ?,
		    updated_at = ?
		WHERE id = ? AND available_units >= ?`,
		units, units, units, time.Now(), id, units)
	return res.RowsAffected > 0, res.Error
}

// Use consumes reserved units; when both counters reach zero the record is USED.
func (r *inventoryRepository) Use(ctx context.Context, id uint, units int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE blood_inventories
		SET status = CASE WHEN reserved_units - ? = 0 AND available_units = 0 THEN 'USED' ELSE status END,
		    reserved_units = reserved_units - ?,
		    updated_at = ?
		WHERE id = ? AND reserved_units >= ?`,
		units, units, time.Now(), id, units)
	return res.RowsAffected > 0, res.Error
}

func (r *inventoryRepository) ExpireOutdated(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.BloodInventory{}).
		Where("expiry_date < ? AND status IN ?", now, []string{"AVAILABLE", "RESERVED"}).
		Update("status", "EXPIRED")
	return res.RowsAffected, res.Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BloodInventory{}, id).Error
}

func (r *inventoryRepository) StatsByHospital(ctx context.Context, hospitalID uint) ([]InventoryStat, error) {
	var stats []InventoryStat
	query := r.db.WithContext(ctx).Model(&models.BloodInventory{}).
		Select(`blood_type,
			SUM(available_units) AS available_units,
			SUM(reserved_units) AS reserved_units`)
	if hospitalID != 0 {
		query = query.Where("hospital_id = ?", hospitalID)
	}
	err := query.Group("blood_type").Scan(&stats).Error
	return stats, err
}
