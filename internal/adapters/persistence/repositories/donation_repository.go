package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// errCompletionLost aborts the completion transaction when the guarded
// status flip touched no row
var errCompletionLost = errors.New("donation already finalized")

// donationRepository handles donation database operations
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Recipient").
		First(&donation, id).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) List(ctx context.Context, filter DonationFilter, offset, limit int) ([]models.Donation, int64, error) {
	var donations []models.Donation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Donation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}
	if filter.DonorID != 0 {
		query = query.Where("donor_id = ?", filter.DonorID)
	}
	if filter.RecipientID != 0 {
		query = query.Where("recipient_id = ?", filter.RecipientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Donor").Preload("Recipient").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&donations).Error
	return donations, total, err
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uint) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) ListByRecipient(ctx context.Context, recipientID uint) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) FindNearbyPending(ctx context.Context, longitude, latitude, maxMeters float64) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.WithContext(ctx).
		Select("*, ST_Distance_Sphere(POINT(longitude, latitude), POINT(?, ?)) AS distance_m", longitude, latitude).
		Where("status = ?", "pending").
		Where("ST_Distance_Sphere(POINT(longitude, latitude), POINT(?, ?)) <= ?", longitude, latitude, maxMeters).
		Preload("Recipient").
		Order("distance_m ASC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Complete finalizes a donation in a single transaction: the donation is
// marked completed, the donor's last-donation date is stamped, and when the
// donation answers a specific request a fulfillment row is recorded and the
// request flipped to FULFILLED once its unit target is covered.
func (r *donationRepository) Complete(ctx context.Context, donation *models.Donation, completedAt time.Time) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// conditional flip so only one of two concurrent completions wins;
		// the loser rolls back before any fulfillment row is written
		res := tx.Model(&models.Donation{}).
			Where("id = ? AND status IN ?", donation.ID, []string{"pending", "scheduled"}).
			Update("status", "completed")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errCompletionLost
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", donation.DonorID).
			Update("last_donation", completedAt).Error; err != nil {
			return err
		}

		if donation.RequestID == nil {
			return nil
		}

		fulfillment := models.RequestFulfillment{
			RequestID:   *donation.RequestID,
			DonationID:  donation.ID,
			Units:       donation.Units,
			FulfilledAt: completedAt,
		}
		if err := tx.Create(&fulfillment).Error; err != nil {
			return err
		}

		var request models.BloodRequest
		if err := tx.First(&request, *donation.RequestID).Error; err != nil {
			return err
		}

		var fulfilledUnits int64
		if err := tx.Model(&models.RequestFulfillment{}).
			Where("request_id = ?", request.ID).
			Select("COALESCE(SUM(units), 0)").
			Scan(&fulfilledUnits).Error; err != nil {
			return err
		}

		if fulfilledUnits >= int64(request.Units) {
			// conditional on PENDING so a concurrent cancel wins cleanly
			if err := tx.Model(&models.BloodRequest{}).
				Where("id = ? AND status = ?", request.ID, "PENDING").
				Update("status", "FULFILLED").Error; err != nil {
				return err
			}
		}

		return nil
	})
	if errors.Is(err, errCompletionLost) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *donationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Donation{}, id).Error
}

func (r *donationRepository) Stats(ctx context.Context) ([]DonationStat, error) {
	var stats []DonationStat
	err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Select(`blood_type,
			COUNT(*) AS total,
			SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed`).
		Group("blood_type").
		Scan(&stats).Error
	return stats, err
}
