package handlers

import (
	"errors"
	"strconv"

	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/core/services"
	"github.com/el7alafawy/blood-safe/internal/pkg/pagination"
	"github.com/el7alafawy/blood-safe/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HospitalHandler handles hospital endpoints
type HospitalHandler struct {
	userService      *services.UserService
	dashboardService *services.DashboardService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(userService *services.UserService, dashboardService *services.DashboardService) *HospitalHandler {
	return &HospitalHandler{
		userService:      userService,
		dashboardService: dashboardService,
	}
}

// List lists hospitals (admin)
// @Summary List hospitals
// @Description List hospital accounts with pagination
// @Tags Hospitals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /hospitals [get]
func (h *HospitalHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	hospitals, total, err := h.userService.ListUsers(c.Context(), domain.RoleHospital, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list hospitals")
	}

	return response.Success(c, "Hospitals retrieved successfully", pagination.NewResponse(hospitals, params, total))
}

// Nearby finds hospitals near a point
// @Summary Find nearby hospitals
// @Description Find hospitals within a radius, closest first
// @Tags Hospitals
// @Produce json
// @Security BearerAuth
// @Param longitude query number true "Longitude"
// @Param latitude query number true "Latitude"
// @Param maxKm query number false "Radius in km (default 10)"
// @Success 200 {object} response.Response
// @Router /hospitals/nearby [get]
func (h *HospitalHandler) Nearby(c *fiber.Ctx) error {
	longitude, err1 := strconv.ParseFloat(c.Query("longitude"), 64)
	latitude, err2 := strconv.ParseFloat(c.Query("latitude"), 64)
	if err1 != nil || err2 != nil {
		return response.BadRequest(c, "longitude and latitude are required")
	}
	maxKm, _ := strconv.ParseFloat(c.Query("maxKm", "10"), 64)

	hospitals, err := h.userService.FindNearbyHospitals(c.Context(), longitude, latitude, maxKm)
	if err != nil {
		return response.InternalServerError(c, "Failed to find nearby hospitals")
	}

	return response.Success(c, "Nearby hospitals retrieved successfully", hospitals)
}

// Get returns one hospital by ID
// @Summary Get hospital
// @Description Get a hospital profile by ID
// @Tags Hospitals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hospital ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hospitals/{id} [get]
func (h *HospitalHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid hospital ID")
	}

	hospital, err := h.userService.GetUser(c.Context(), uint(id))
	if err != nil || hospital.Role != domain.RoleHospital {
		return response.NotFound(c, "Hospital not found")
	}

	return response.Success(c, "Hospital retrieved successfully", hospital)
}

// Update updates a hospital profile. A hospital may only update itself;
// admins may update any.
// @Summary Update hospital
// @Description Update a hospital's profile fields
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hospital ID"
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /hospitals/{id} [put]
func (h *HospitalHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid hospital ID")
	}

	callerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != domain.RoleAdmin && callerID != uint(id) {
		return response.Forbidden(c, "You can only update your own hospital profile")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hospital, err := h.userService.UpdateProfile(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "Hospital not found")
		}
		return response.InternalServerError(c, "Failed to update hospital")
	}

	return response.Success(c, "Hospital updated successfully", hospital)
}

// Stats returns one hospital's operational stats
// @Summary Hospital statistics
// @Description Inventory, campaign and appointment numbers for one hospital
// @Tags Hospitals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hospital ID"
// @Success 200 {object} response.Response
// @Router /hospitals/{id}/stats [get]
func (h *HospitalHandler) Stats(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid hospital ID")
	}

	callerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role == domain.RoleHospital && callerID != uint(id) {
		return response.Forbidden(c, "You can only view your own hospital stats")
	}

	stats, err := h.dashboardService.GetHospitalStats(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute hospital stats")
	}

	return response.Success(c, "Hospital stats retrieved successfully", stats)
}
