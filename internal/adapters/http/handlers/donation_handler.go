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

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// UpdateStatusRequest represents a donation status change body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Create records a donation offer
// @Summary Create donation
// @Description Record a new pending donation offer
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDonationInput true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	donorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateDonationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donation, err := h.donationService.Create(c.Context(), donorID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type")
		case errors.Is(err, services.ErrInvalidUnits):
			return response.BadRequest(c, "Units must be positive")
		case errors.Is(err, services.ErrTooManyUnits):
			return response.BadRequest(c, "Units exceed the per-donation cap")
		case errors.Is(err, services.ErrMissingLocation):
			return response.BadRequest(c, "Location name is required")
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Linked blood request not found")
		case errors.Is(err, services.ErrRequestMismatch):
			return response.BadRequest(c, "Linked request is not pending or has a different blood type")
		default:
			return response.InternalServerError(c, "Failed to create donation")
		}
	}

	return response.Created(c, "Donation created successfully", donation)
}

// List lists donations with filters
// @Summary List donations
// @Description List donations filtered by status and blood type
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param bloodType query string false "Blood type"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.DonationFilter{
		Status:    c.Query("status"),
		BloodType: c.Query("bloodType"),
	}

	donations, total, err := h.donationService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", pagination.NewResponse(donations, params, total))
}

// Nearby finds pending donations near a point
// @Summary Find nearby donations
// @Description Pending donations within a radius, closest first
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param longitude query number true "Longitude"
// @Param latitude query number true "Latitude"
// @Param maxKm query number false "Radius in km (default 10)"
// @Success 200 {object} response.Response
// @Router /donations/nearby [get]
func (h *DonationHandler) Nearby(c *fiber.Ctx) error {
	longitude, err1 := strconv.ParseFloat(c.Query("longitude"), 64)
	latitude, err2 := strconv.ParseFloat(c.Query("latitude"), 64)
	if err1 != nil || err2 != nil {
		return response.BadRequest(c, "longitude and latitude are required")
	}
	maxKm, _ := strconv.ParseFloat(c.Query("maxKm", "10"), 64)

	donations, err := h.donationService.FindNearby(c.Context(), longitude, latitude, maxKm)
	if err != nil {
		return response.InternalServerError(c, "Failed to find nearby donations")
	}

	return response.Success(c, "Nearby donations retrieved successfully", donations)
}

// Stats returns donation statistics
// @Summary Donation statistics
// @Description Per-blood-type donation completion counts
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donations/stats [get]
func (h *DonationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.donationService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute donation statistics")
	}

	return response.Success(c, "Donation statistics retrieved successfully", stats)
}

// ByDonor lists a donor's donations
// @Summary Donations by donor
// @Description List all donations made by one donor
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Donor ID"
// @Success 200 {object} response.Response
// @Router /donations/donor/{userId} [get]
func (h *DonationHandler) ByDonor(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	donations, err := h.donationService.ListByDonor(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", donations)
}

// ByRecipient lists donations toward a recipient
// @Summary Donations by recipient
// @Description List all donations toward one recipient
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Recipient ID"
// @Success 200 {object} response.Response
// @Router /donations/recipient/{userId} [get]
func (h *DonationHandler) ByRecipient(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	donations, err := h.donationService.ListByRecipient(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", donations)
}

// Get returns one donation
// @Summary Get donation
// @Description Get a donation by ID
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Donation not found")
	}

	return response.Success(c, "Donation retrieved successfully", donation)
}

// UpdateStatus moves a donation along its lifecycle
// @Summary Update donation status
// @Description Move a donation to scheduled, completed or cancelled
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /donations/{id}/status [patch]
func (h *DonationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	callerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	isPrivileged := role == domain.RoleAdmin || role == domain.RoleHospital

	donation, err := h.donationService.UpdateStatus(c.Context(), uint(id), callerID, isPrivileged, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDonationNotFound):
			return response.NotFound(c, "Donation not found")
		case errors.Is(err, services.ErrDonationNotOwned):
			return response.Forbidden(c, "You are not part of this donation")
		case errors.Is(err, services.ErrBadTransition):
			return response.Conflict(c, "Status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update donation status")
		}
	}

	return response.Success(c, "Donation status updated successfully", donation)
}

// Delete removes a donation (admin)
// @Summary Delete donation
// @Description Remove a donation record
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [delete]
func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	if err := h.donationService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrDonationNotFound) {
			return response.NotFound(c, "Donation not found")
		}
		return response.InternalServerError(c, "Failed to delete donation")
	}

	return response.Success(c, "Donation deleted successfully", nil)
}
