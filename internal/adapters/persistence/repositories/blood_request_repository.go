package repositories

import (
	"context"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bloodRequestRepository handles blood request database operations
type bloodRequestRepository struct {
	db *gorm.DB
}

// NewBloodRequestRepository creates a new blood request repository
func NewBloodRequestRepository(db *gorm.DB) BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func (r *bloodRequestRepository) Create(ctx context.Context, request *models.BloodRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id uint) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Fulfillments").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *bloodRequestRepository) List(ctx context.Context, filter RequestFilter, offset, limit int) ([]models.BloodRequest, int64, error) {
	var requests []models.BloodRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BloodRequest{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}
	if filter.Urgency != "" {
		query = query.Where("urgency = ?", filter.Urgency)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Requester").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error
	return requests, total, err
}

func (r *bloodRequestRepository) ListPendingByBloodType(ctx context.Context, bloodType string) ([]models.BloodRequest, error) {
	var requests []models.BloodRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ? AND blood_type = ?", "PENDING", bloodType).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateFieldsIfPending applies fields only while the request is still
// PENDING, so terminal requests stay immutable under concurrent writers.
func (r *bloodRequestRepository) UpdateFieldsIfPending(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.BloodRequest{}).
		Where("id = ? AND status = ?", id, "PENDING").
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *bloodRequestRepository) UpdateStatusIfPending(ctx context.Context, id uint, status string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.BloodRequest{}).
		Where("id = ? AND status = ?", id, "PENDING").
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *bloodRequestRepository) ExpirePastDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.BloodRequest{}).
		Where("status = ? AND required_by < ?", "PENDING", now).
		Update("status", "EXPIRED")
	return res.RowsAffected, res.Error
}

func (r *bloodRequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&models.RequestFulfillment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BloodRequest{}, id).Error
	})
}

func (r *bloodRequestRepository) Stats(ctx context.Context) ([]RequestStat, error) {
	var stats []RequestStat
	err := r.db.WithContext(ctx).Model(&models.BloodRequest{}).
		Select(`blood_type,
			COUNT(*) AS total,
			SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN status = 'FULFILLED' THEN 1 ELSE 0 END) AS fulfilled,
			SUM(CASE WHEN status = 'CANCELLED' THEN 1 ELSE 0 END) AS cancelled,
			SUM(CASE WHEN status = 'EXPIRED' THEN 1 ELSE 0 END) AS expired`).
		Group("blood_type").
		Scan(&stats).Error
	return stats, err
}
