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

// BloodRequestHandler handles blood request endpoints
type BloodRequestHandler struct {
	requestService *services.BloodRequestService
}

// NewBloodRequestHandler creates a new blood request handler
func NewBloodRequestHandler(requestService *services.BloodRequestService) *BloodRequestHandler {
	return &BloodRequestHandler{requestService: requestService}
}

// Create creates a blood request
// @Summary Create blood request
// @Description Create a new PENDING blood request
// @Tags BloodRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRequestInput true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /blood-requests [post]
func (h *BloodRequestHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.requestService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type")
		case errors.Is(err, services.ErrInvalidUnits):
			return response.BadRequest(c, "Units must be positive")
		case errors.Is(err, services.ErrInvalidUrgency):
			return response.BadRequest(c, "Invalid urgency level")
		case errors.Is(err, services.ErrPastRequiredBy):
			return response.BadRequest(c, "Required-by date must be in the future")
		default:
			return response.InternalServerError(c, "Failed to create blood request")
		}
	}

	return response.Created(c, "Blood request created successfully", result)
}

// List lists blood requests with filters
// @Summary List blood requests
// @Description List blood requests filtered by blood type, urgency and status
// @Tags BloodRequests
// @Produce json
// @Security BearerAuth
// @Param bloodType query string false "Blood type"
// @Param urgency query string false "Urgency"
// @Param status query string false "Status"
// @Param own query bool false "Only my requests"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /blood-requests [get]
func (h *BloodRequestHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.RequestFilter{
		BloodType: c.Query("bloodType"),
		Urgency:   c.Query("urgency"),
		Status:    c.Query("status"),
	}
	if c.Query("own") == "true" {
		if userID, ok := c.Locals("userID").(uint); ok {
			filter.UserID = userID
		}
	}

	requests, total, err := h.requestService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list blood requests")
	}

	return response.Success(c, "Blood requests retrieved successfully", pagination.NewResponse(requests, params, total))
}

// Matching lists pending requests matching the donor's blood type
// @Summary Matching requests
// @Description Pending requests with the donor's blood type, closest first
// @Tags BloodRequests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /blood-requests/matching [get]
func (h *BloodRequestHandler) Matching(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requests, err := h.requestService.FindMatching(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Set your blood type to see matching requests")
		default:
			return response.InternalServerError(c, "Failed to find matching requests")
		}
	}

	return response.Success(c, "Matching requests retrieved successfully", requests)
}

// Stats returns request statistics per blood type
// @Summary Request statistics
// @Description Per-blood-type request status breakdowns
// @Tags BloodRequests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /blood-requests/stats [get]
func (h *BloodRequestHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.requestService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute request statistics")
	}

	return response.Success(c, "Request statistics retrieved successfully", stats)
}

// Get returns one blood request
// @Summary Get blood request
// @Description Get a blood request by ID
// @Tags BloodRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blood-requests/{id} [get]
func (h *BloodRequestHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	result, err := h.requestService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Blood request not found")
	}

	return response.Success(c, "Blood request retrieved successfully", result)
}

// Update edits a pending request
// @Summary Update blood request
// @Description Edit a PENDING request's mutable fields (owner only)
// @Tags BloodRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body services.UpdateRequestInput true "Fields"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blood-requests/{id} [put]
func (h *BloodRequestHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var input services.UpdateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.requestService.Update(c.Context(), uint(id), userID, role == domain.RoleAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrRequestNotOwned):
			return response.Forbidden(c, "You can only edit your own requests")
		case errors.Is(err, services.ErrRequestImmutable):
			return response.Conflict(c, "Request is no longer editable")
		case errors.Is(err, services.ErrInvalidUnits),
			errors.Is(err, services.ErrInvalidUrgency),
			errors.Is(err, services.ErrPastRequiredBy):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update blood request")
		}
	}

	return response.Success(c, "Blood request updated successfully", result)
}

// Cancel cancels a pending request
// @Summary Cancel blood request
// @Description Move a PENDING request to CANCELLED (owner or admin)
// @Tags BloodRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blood-requests/{id}/cancel [patch]
func (h *BloodRequestHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	result, err := h.requestService.Cancel(c.Context(), uint(id), userID, role == domain.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrRequestNotOwned):
			return response.Forbidden(c, "You can only cancel your own requests")
		case errors.Is(err, services.ErrRequestImmutable):
			return response.Conflict(c, "Request is already in a terminal status")
		default:
			return response.InternalServerError(c, "Failed to cancel blood request")
		}
	}

	return response.Success(c, "Blood request cancelled successfully", result)
}

// Delete removes a request (admin)
// @Summary Delete blood request
// @Description Remove a blood request and its fulfillment links
// @Tags BloodRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blood-requests/{id} [delete]
func (h *BloodRequestHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	if err := h.requestService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Blood request not found")
		}
		return response.InternalServerError(c, "Failed to delete blood request")
	}

	return response.Success(c, "Blood request deleted successfully", nil)
}
