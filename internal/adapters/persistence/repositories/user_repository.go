package repositories

import (
	"context"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository handles user database operations
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *userRepository) List(ctx context.Context, role string, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *userRepository) ListDonors(ctx context.Context, filter DonorFilter) ([]models.User, error) {
	var donors []models.User

	query := r.db.WithContext(ctx).Where("role = ?", "donor")
	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	err := query.Order("created_at DESC").Find(&donors).Error
	return donors, err
}

// FindNearby uses MySQL's spherical distance to return users of a role within
// maxMeters of the reference point, closest first.
func (r *userRepository) FindNearby(ctx context.Context, role string, longitude, latitude, maxMeters float64, bloodType string) ([]models.User, error) {
	var users []models.User

	query := r.db.WithContext(ctx).
		Select("*, ST_Distance_Sphere(POINT(longitude, latitude), POINT(?, ?)) AS distance_m", longitude, latitude).
		Where("role = ?", role).
		Where("ST_Distance_Sphere(POINT(longitude, latitude), POINT(?, ?)) <= ?", longitude, latitude, maxMeters)

	if role == "donor" {
		query = query.Where("is_available = ?", true)
	}
	if bloodType != "" {
		query = query.Where("blood_type = ?", bloodType)
	}

	err := query.Order("distance_m ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) StatsByBloodType(ctx context.Context) ([]UserStat, error) {
	var stats []UserStat
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select(`blood_type,
			COUNT(*) AS total,
			SUM(CASE WHEN is_available = 1 THEN 1 ELSE 0 END) AS available`).
		Where("role = ? AND blood_type <> ''", "donor").
		Group("blood_type").
		Scan(&stats).Error
	return stats, err
}
