package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/core/services"
	"github.com/el7alafawy/blood-safe/internal/pkg/pagination"
	"github.com/el7alafawy/blood-safe/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles blood inventory endpoints
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create records a new inventory batch (hospital)
// @Summary Create inventory
// @Description Record a new blood inventory batch
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateInventoryInput true "Batch data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /blood-inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	hospitalID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateInventoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.inventoryService.Create(c.Context(), hospitalID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type")
		case errors.Is(err, services.ErrNonPositiveQuantity):
			return response.BadRequest(c, "Available units must be positive")
		case errors.Is(err, services.ErrInvalidSource):
			return response.BadRequest(c, "Invalid inventory source")
		case errors.Is(err, services.ErrPastExpiryDate):
			return response.BadRequest(c, "Expiry date must be in the future")
		default:
			return response.InternalServerError(c, "Failed to create inventory")
		}
	}

	return response.Created(c, "Inventory created successfully", item)
}

// List lists inventory batches
// @Summary List inventory
// @Description List inventory. Hospitals see their own stock; admins see all.
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /blood-inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	// Hospitals are scoped to their own stock
	var hospitalID uint
	if role, _ := c.Locals("role").(string); role == domain.RoleHospital {
		hospitalID, _ = c.Locals("userID").(uint)
	}

	items, total, err := h.inventoryService.List(c.Context(), hospitalID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list inventory")
	}

	return response.Success(c, "Inventory retrieved successfully", pagination.NewResponse(items, params, total))
}

// ByBloodType lists live batches of one blood type
// @Summary Inventory by blood type
// @Description Unexpired AVAILABLE batches of one blood type
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param type path string true "Blood type"
// @Success 200 {object} response.Response
// @Router /blood-inventory/blood-type/{bloodType} [get]
func (h *InventoryHandler) ByBloodType(c *fiber.Ctx) error {
	var hospitalID uint
	if role, _ := c.Locals("role").(string); role == domain.RoleHospital {
		hospitalID, _ = c.Locals("userID").(uint)
	}

	items, err := h.inventoryService.ListByBloodType(c.Context(), c.Params("type"), hospitalID)
	if err != nil {
		if errors.Is(err, services.ErrBadBloodType) {
			return response.BadRequest(c, "Invalid blood type")
		}
		return response.InternalServerError(c, "Failed to list inventory")
	}

	return response.Success(c, "Inventory retrieved successfully", items)
}

// Update edits a batch's expiry or notes (hospital)
// @Summary Update inventory
// @Description Update a batch's expiry date or notes
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Param body body services.UpdateInventoryInput true "Fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /blood-inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	hospitalID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var input services.UpdateInventoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.inventoryService.Update(c.Context(), uint(id), hospitalID, role == domain.RoleAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			return response.NotFound(c, "Inventory item not found")
		case errors.Is(err, services.ErrInventoryNotOwned):
			return response.Forbidden(c, "You can only manage your own inventory")
		case errors.Is(err, services.ErrPastExpiryDate):
			return response.BadRequest(c, "Expiry date must be in the future")
		default:
			return response.InternalServerError(c, "Failed to update inventory")
		}
	}

	return response.Success(c, "Inventory updated successfully", item)
}

// Reserve reserves units from a batch
// @Summary Reserve units
// @Description Move units from available to reserved
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Param body body services.UnitsInput true "Units"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blood-inventory/{id}/reserve [patch]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	return h.adjust(c, h.inventoryService.Reserve, "reserved")
}

// Use consumes reserved units from a batch
// @Summary Use units
// @Description Consume previously reserved units
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Param body body services.UnitsInput true "Units"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blood-inventory/{id}/use [patch]
func (h *InventoryHandler) Use(c *fiber.Ctx) error {
	return h.adjust(c, h.inventoryService.Use, "used")
}

// adjust shares the reserve/use handler flow
func (h *InventoryHandler) adjust(
	c *fiber.Ctx,
	op func(ctx context.Context, id, hospitalID uint, isAdmin bool, units int) (*models.BloodInventory, error),
	verb string,
) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	hospitalID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	var input services.UnitsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := op(c.Context(), uint(id), hospitalID, role == domain.RoleAdmin, input.Units)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			return response.NotFound(c, "Inventory item not found")
		case errors.Is(err, services.ErrInventoryNotOwned):
			return response.Forbidden(c, "You can only manage your own inventory")
		case errors.Is(err, services.ErrNonPositiveQuantity):
			return response.BadRequest(c, "Units must be positive")
		case errors.Is(err, services.ErrNotEnoughAvailable):
			return response.Conflict(c, "Not enough available units")
		case errors.Is(err, services.ErrNotEnoughReserved):
			return response.Conflict(c, "Not enough reserved units")
		default:
			return response.InternalServerError(c, "Failed to adjust inventory")
		}
	}

	return response.Success(c, "Units "+verb+" successfully", item)
}

// Stats returns per-blood-type unit totals for a hospital
// @Summary Inventory stats
// @Description Per-blood-type available and reserved unit totals
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param hospitalId query int false "Hospital ID (admin only, defaults to caller)"
// @Success 200 {object} response.Response
// @Router /blood-inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	hospitalID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	if raw := c.Query("hospitalId"); raw != "" && role == domain.RoleAdmin {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid hospital ID")
		}
		hospitalID = uint(id)
	}

	stats, err := h.inventoryService.StatsByHospital(c.Context(), hospitalID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch inventory stats")
	}

	return response.Success(c, "Inventory stats retrieved successfully", stats)
}

// Delete removes a batch (admin)
// @Summary Delete inventory
// @Description Remove an inventory batch
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blood-inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	if err := h.inventoryService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			return response.NotFound(c, "Inventory item not found")
		}
		return response.InternalServerError(c, "Failed to delete inventory")
	}

	return response.Success(c, "Inventory deleted successfully", nil)
}
