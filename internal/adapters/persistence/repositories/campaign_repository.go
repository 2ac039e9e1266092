package repositories

import (
	"context"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// campaignRepository handles campaign database operations
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Preload("Participants").
		Preload("Participants.User").
		First(&campaign, id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, hospitalID uint, offset, limit int) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Campaign{})
	if hospitalID != 0 {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Hospital").
		Order("start_date DESC").
		Offset(offset).Limit(limit).
		Find(&campaigns).Error
	return campaigns, total, err
}

func (r *campaignRepository) ListActive(ctx context.Context, now time.Time) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("status = ? AND start_date <= ? AND end_date >= ?", "ACTIVE", now, now).
		Order("end_date ASC").
		Find(&campaigns).Error
	return campaigns, err
}

func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

func (r *campaignRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Campaign{}, id).Error
	})
}

// AddParticipant relies on the (campaign_id, user_id) unique index; a
// concurrent duplicate registration surfaces as gorm.ErrDuplicatedKey.
func (r *campaignRepository) AddParticipant(ctx context.Context, participant *models.CampaignParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *campaignRepository) GetParticipant(ctx context.Context, campaignID, userID uint) (*models.CampaignParticipant, error) {
	var participant models.CampaignParticipant
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *campaignRepository) UpdateParticipantStatus(ctx context.Context, campaignID, userID uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.CampaignParticipant{}).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		Update("status", status).Error
}

func (r *campaignRepository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", "UPCOMING", now, now).
		Update("status", "ACTIVE")
	return res.RowsAffected, res.Error
}

func (r *campaignRepository) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("status IN ? AND end_date < ?", []string{"UPCOMING", "ACTIVE"}, now).
		Update("status", "COMPLETED")
	return res.RowsAffected, res.Error
}
