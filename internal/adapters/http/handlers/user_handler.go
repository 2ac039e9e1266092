package handlers

import (
	"errors"
	"strconv"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/core/services"
	"github.com/el7alafawy/blood-safe/internal/pkg/pagination"
	"github.com/el7alafawy/blood-safe/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user and donor endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the caller's profile
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateMe updates the caller's profile
// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// ChangePassword changes the caller's password
// @Summary Change password
// @Description Verify the current password and set a new one
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me/password [patch]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return response.BadRequest(c, "Current and new passwords are required")
	}

	if err := h.userService.ChangePassword(c.Context(), userID, &input); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return response.BadRequest(c, "Current password is incorrect")
		case errors.Is(err, domain.ErrInvalidPassword):
			return response.BadRequest(c, "New password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// SetAvailability toggles whether the caller can be matched as a donor
// @Summary Set availability
// @Description Toggle the authenticated donor's availability for matching
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body handlers.SetAvailabilityRequest true "Availability"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me/availability [patch]
func (h *UserHandler) SetAvailability(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input SetAvailabilityRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.IsAvailable == nil {
		return response.BadRequest(c, "is_available is required")
	}

	profile, err := h.userService.SetAvailability(c.Context(), userID, *input.IsAvailable)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update availability")
	}

	return response.Success(c, "Availability updated successfully", profile)
}

// SetAvailabilityRequest is the availability toggle body
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

// ListDonors lists donors with filters
// @Summary List donors
// @Description List donors filtered by blood type, availability and name
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param bloodType query string false "Blood type"
// @Param available query bool false "Only available donors"
// @Param search query string false "Name search"
// @Success 200 {object} response.Response
// @Router /users/donors [get]
func (h *UserHandler) ListDonors(c *fiber.Ctx) error {
	filter := repositories.DonorFilter{
		BloodType: c.Query("bloodType"),
		Search:    c.Query("search"),
	}
	if v := c.Query("available"); v != "" {
		available := v == "true"
		filter.Available = &available
	}

	donors, err := h.userService.ListDonors(c.Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrBadBloodType) {
			return response.BadRequest(c, "Invalid blood type")
		}
		return response.InternalServerError(c, "Failed to list donors")
	}

	return response.Success(c, "Donors retrieved successfully", donors)
}

// NearbyDonors finds available donors near a point
// @Summary Find nearby donors
// @Description Find available donors within a radius, closest first
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param longitude query number true "Longitude"
// @Param latitude query number true "Latitude"
// @Param maxKm query number false "Radius in km (default 10)"
// @Param bloodType query string false "Blood type"
// @Success 200 {object} response.Response
// @Router /users/donors/nearby [get]
func (h *UserHandler) NearbyDonors(c *fiber.Ctx) error {
	longitude, err1 := strconv.ParseFloat(c.Query("longitude"), 64)
	latitude, err2 := strconv.ParseFloat(c.Query("latitude"), 64)
	if err1 != nil || err2 != nil {
		return response.BadRequest(c, "longitude and latitude are required")
	}
	maxKm, _ := strconv.ParseFloat(c.Query("maxKm", "10"), 64)

	input := &services.NearbyDonorsInput{
		Longitude: longitude,
		Latitude:  latitude,
		MaxKm:     maxKm,
		BloodType: c.Query("bloodType"),
	}

	donors, err := h.userService.FindNearbyDonors(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrBadBloodType) {
			return response.BadRequest(c, "Invalid blood type")
		}
		return response.InternalServerError(c, "Failed to find nearby donors")
	}

	return response.Success(c, "Nearby donors retrieved successfully", donors)
}

// DonorStats returns donor counts per blood type
// @Summary Donor statistics
// @Description Per-blood-type donor totals and availability
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/donors/stats [get]
func (h *UserHandler) DonorStats(c *fiber.Ctx) error {
	stats, err := h.userService.DonorStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute donor statistics")
	}

	return response.Success(c, "Donor statistics retrieved successfully", stats)
}

// List lists users by role with pagination (admin)
// @Summary List users
// @Description List users, optionally filtered by role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.ListUsers(c.Context(), c.Query("role"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(users, params, total))
}

// Get returns one user by ID (admin)
// @Summary Get user
// @Description Get a user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// Delete removes a user (admin)
// @Summary Delete user
// @Description Soft-delete a user account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}
