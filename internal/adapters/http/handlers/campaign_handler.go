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

// CampaignHandler handles donation campaign endpoints
type CampaignHandler struct {
	campaignService *services.CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create creates a new campaign
// @Summary Create campaign
// @Description Hospital publishes a donation campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCampaignInput true "Campaign data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	hospitalID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateCampaignInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	campaign, err := h.campaignService.Create(c.Context(), hospitalID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadDateRange):
			return response.BadRequest(c, "End date must be after start date")
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type in target list")
		default:
			return response.InternalServerError(c, "Failed to create campaign")
		}
	}

	return response.Created(c, "Campaign created successfully", campaign)
}

// List lists campaigns
// @Summary List campaigns
// @Description List campaigns, optionally scoped to one hospital
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param hospitalId query int false "Hospital ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /campaigns [get]
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var hospitalID uint
	if raw := c.Query("hospitalId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid hospital ID")
		}
		hospitalID = uint(id)
	}

	campaigns, total, err := h.campaignService.List(c.Context(), hospitalID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list campaigns")
	}

	return response.Success(c, "Campaigns retrieved successfully", pagination.NewResponse(campaigns, params, total))
}

// Active lists currently running campaigns
// @Summary List active campaigns
// @Description Campaigns whose window covers the current time
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /campaigns/active [get]
func (h *CampaignHandler) Active(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list active campaigns")
	}

	return response.Success(c, "Active campaigns retrieved successfully", campaigns)
}

// Get returns one campaign with participants
// @Summary Get campaign
// @Description Get a campaign by ID with its participants
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID")
	}

	campaign, err := h.campaignService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Campaign not found")
	}

	return response.Success(c, "Campaign retrieved successfully", campaign)
}

// Update updates campaign fields
// @Summary Update campaign
// @Description Owning hospital or admin updates a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param body body services.UpdateCampaignInput true "Campaign fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /campaigns/{id} [put]
func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID")
	}

	callerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var input services.UpdateCampaignInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	campaign, err := h.campaignService.Update(c.Context(), uint(id), callerID, role == domain.RoleAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		case errors.Is(err, services.ErrCampaignNotOwned):
			return response.Forbidden(c, "You do not own this campaign")
		case errors.Is(err, services.ErrBadDateRange):
			return response.BadRequest(c, "End date must be after start date")
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type in target list")
		default:
			return response.InternalServerError(c, "Failed to update campaign")
		}
	}

	return response.Success(c, "Campaign updated successfully", campaign)
}

// Register registers the caller as a campaign participant
// @Summary Register for campaign
// @Description Donor registers for an active campaign
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /campaigns/{id}/register [post]
func (h *CampaignHandler) Register(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	participant, err := h.campaignService.Register(c.Context(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		case errors.Is(err, services.ErrCampaignNotActive):
			return response.Conflict(c, "Campaign is not accepting registrations")
		case errors.Is(err, services.ErrAlreadyRegistered):
			return response.Conflict(c, "Already registered for this campaign")
		default:
			return response.InternalServerError(c, "Failed to register for campaign")
		}
	}

	return response.Created(c, "Registered for campaign successfully", participant)
}

// UpdateParticipant moves a participant along their lifecycle
// @Summary Update participant status
// @Description Owning hospital updates a participant's status
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param userId path int true "Participant user ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /campaigns/{id}/participants/{userId} [patch]
func (h *CampaignHandler) UpdateParticipant(c *fiber.Ctx) error {
	campaignID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID")
	}
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
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

	participant, err := h.campaignService.UpdateParticipant(c.Context(), uint(campaignID), uint(userID), callerID, role == domain.RoleAdmin, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		case errors.Is(err, services.ErrCampaignNotOwned):
			return response.Forbidden(c, "You do not own this campaign")
		case errors.Is(err, services.ErrParticipantNotFound):
			return response.NotFound(c, "Participant not found")
		case errors.Is(err, services.ErrBadParticipantMove):
			return response.Conflict(c, "Status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update participant")
		}
	}

	return response.Success(c, "Participant updated successfully", participant)
}

// Delete removes a campaign (admin)
// @Summary Delete campaign
// @Description Remove a campaign and its registrations
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid campaign ID")
	}

	if err := h.campaignService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			return response.NotFound(c, "Campaign not found")
		}
		return response.InternalServerError(c, "Failed to delete campaign")
	}

	return response.Success(c, "Campaign deleted successfully", nil)
}
