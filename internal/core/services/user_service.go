package services

import (
	"context"
	"errors"
	"log"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/pkg/password"

	"gorm.io/gorm"
)

// User errors
var (
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrBadBloodType  = errors.New("invalid blood type")
)

// UserService handles user and donor business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	BloodType   string   `json:"blood_type"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	IsAvailable *bool    `json:"is_available"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// NearbyDonorsInput represents a nearby donor search
type NearbyDonorsInput struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	MaxKm     float64 `json:"max_km"`
	BloodType string  `json:"blood_type"`
}

// GetProfile returns a user profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates the caller's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.BloodType != "" {
		if !domain.IsValidBloodType(input.BloodType) {
			return nil, ErrBadBloodType
		}
		user.BloodType = input.BloodType
	}
	if input.Longitude != nil {
		user.Longitude = *input.Longitude
	}
	if input.Latitude != nil {
		user.Latitude = *input.Latitude
	}
	if input.IsAvailable != nil {
		user.IsAvailable = *input.IsAvailable
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Profile updated: %s", user.Email)
	return user.ToResponse(), nil
}

// ChangePassword verifies the current password then replaces it
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}
	if !password.ValidatePassword(input.NewPassword) {
		return domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user: %s", user.Email)
	return nil
}

// SetAvailability toggles whether a donor can be matched
func (s *UserService) SetAvailability(ctx context.Context, userID uint, available bool) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsAvailable = available
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Availability set to %t for user: %s", available, user.Email)
	return user.ToResponse(), nil
}

// ListDonors lists donors, optionally filtered by blood type and availability
func (s *UserService) ListDonors(ctx context.Context, filter repositories.DonorFilter) ([]*models.UserResponse, error) {
	if filter.BloodType != "" && !domain.IsValidBloodType(filter.BloodType) {
		return nil, ErrBadBloodType
	}

	donors, err := s.userRepo.ListDonors(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(donors))
	for i := range donors {
		responses = append(responses, donors[i].ToResponse())
	}
	return responses, nil
}

// FindNearbyDonors finds available donors within maxKm of a point,
// closest first. MaxKm defaults to 10 when unset.
func (s *UserService) FindNearbyDonors(ctx context.Context, input *NearbyDonorsInput) ([]*models.UserResponse, error) {
	if input.BloodType != "" && !domain.IsValidBloodType(input.BloodType) {
		return nil, ErrBadBloodType
	}

	maxKm := input.MaxKm
	if maxKm <= 0 {
		maxKm = 10
	}

	donors, err := s.userRepo.FindNearby(ctx, domain.RoleDonor, input.Longitude, input.Latitude, maxKm*1000, input.BloodType)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(donors))
	for i := range donors {
		responses = append(responses, donors[i].ToResponse())
	}
	return responses, nil
}

// FindNearbyHospitals finds hospitals within maxKm of a point, closest first
func (s *UserService) FindNearbyHospitals(ctx context.Context, longitude, latitude, maxKm float64) ([]*models.UserResponse, error) {
	if maxKm <= 0 {
		maxKm = 10
	}

	hospitals, err := s.userRepo.FindNearby(ctx, domain.RoleHospital, longitude, latitude, maxKm*1000, "")
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(hospitals))
	for i := range hospitals {
		responses = append(responses, hospitals[i].ToResponse())
	}
	return responses, nil
}

// ListUsers lists users by role with pagination (admin)
func (s *UserService) ListUsers(ctx context.Context, role string, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, total, nil
}

// DonorStats returns per-blood-type donor availability counts (admin)
func (s *UserService) DonorStats(ctx context.Context) ([]repositories.UserStat, error) {
	return s.userRepo.StatsByBloodType(ctx)
}

// GetUser returns any user by ID (admin)
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	return s.GetProfile(ctx, id)
}

// DeleteUser soft-deletes a user account (admin)
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ User deleted: ID %d", id)
	return nil
}
