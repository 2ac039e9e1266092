package handlers

import (
	"errors"
	"strconv"

	"github.com/el7alafawy/blood-safe/internal/core/domain"
	"github.com/el7alafawy/blood-safe/internal/core/services"
	"github.com/el7alafawy/blood-safe/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles appointment slot endpoints
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create publishes an open appointment slot
// @Summary Create appointment slot
// @Description Hospital publishes an open 30-minute donation slot
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAppointmentInput true "Slot data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	hospitalID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Date == "" || input.SlotStart == "" {
		return response.BadRequest(c, "Date and slot start are required")
	}

	appt, err := h.appointmentService.Create(c.Context(), hospitalID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadBloodType):
			return response.BadRequest(c, "Invalid blood type")
		case errors.Is(err, services.ErrBadDate):
			return response.BadRequest(c, "Date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrSlotOutsideHours):
			return response.BadRequest(c, "Slot must align with the 09:00-17:00 30-minute grid")
		case errors.Is(err, services.ErrSlotTaken):
			return response.Conflict(c, "A slot already exists at that time")
		default:
			return response.InternalServerError(c, "Failed to create appointment slot")
		}
	}

	return response.Created(c, "Appointment slot created successfully", appt)
}

// List lists the caller's appointments
// @Summary List appointments
// @Description Donor sees booked slots, hospital sees published slots
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	if role == domain.RoleHospital {
		list, err := h.appointmentService.ListForHospital(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to list appointments")
		}
		return response.Success(c, "Appointments retrieved successfully", list)
	}

	list, err := h.appointmentService.ListForUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}
	return response.Success(c, "Appointments retrieved successfully", list)
}

// AvailableSlots returns free slot starts for a day
// @Summary Available slots
// @Description Free 30-minute slot starts for one hospital and date
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param hospitalId query int false "Hospital ID (defaults to caller)"
// @Success 200 {object} response.Response
// @Router /appointments/available-slots/{date} [get]
func (h *AppointmentHandler) AvailableSlots(c *fiber.Ctx) error {
	callerID, _ := c.Locals("userID").(uint)

	hospitalID := callerID
	if raw := c.Query("hospitalId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid hospital ID")
		}
		hospitalID = uint(id)
	}

	slots, err := h.appointmentService.AvailableSlots(c.Context(), hospitalID, c.Params("date"))
	if err != nil {
		if errors.Is(err, services.ErrBadDate) {
			return response.BadRequest(c, "Date must be YYYY-MM-DD")
		}
		return response.InternalServerError(c, "Failed to compute available slots")
	}

	return response.Success(c, "Available slots retrieved successfully", slots)
}

// Get returns one appointment
// @Summary Get appointment
// @Description Get an appointment by ID
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appt, err := h.appointmentService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Appointment not found")
	}

	return response.Success(c, "Appointment retrieved successfully", appt)
}

// Book books an open slot for the caller
// @Summary Book appointment
// @Description Donor books a published slot (first write wins)
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/book [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	appt, err := h.appointmentService.Book(c.Context(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrAppointmentTaken):
			return response.Conflict(c, "Slot is no longer available")
		default:
			return response.InternalServerError(c, "Failed to book appointment")
		}
	}

	return response.Success(c, "Appointment booked successfully", appt)
}

// UpdateStatus moves an appointment along its lifecycle
// @Summary Update appointment status
// @Description Hospital confirms, completes, cancels or marks no-show, optionally recording a health check
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param body body services.UpdateAppointmentStatusInput true "New status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	var input services.UpdateAppointmentStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	callerID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	appt, err := h.appointmentService.UpdateStatus(c.Context(), uint(id), callerID, role == domain.RoleAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrAppointmentNotOwned):
			return response.Forbidden(c, "You do not own this appointment slot")
		case errors.Is(err, services.ErrBadAppointmentMove):
			return response.Conflict(c, "Status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update appointment status")
		}
	}

	return response.Success(c, "Appointment status updated successfully", appt)
}

// Cancel cancels the caller's booking
// @Summary Cancel appointment
// @Description Booked donor cancels their appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /appointments/{id}/cancel [patch]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	appt, err := h.appointmentService.Cancel(c.Context(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrAppointmentNotOwned):
			return response.Forbidden(c, "This appointment is not yours")
		case errors.Is(err, services.ErrBadAppointmentMove):
			return response.Conflict(c, "Appointment can no longer be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel appointment")
		}
	}

	return response.Success(c, "Appointment cancelled successfully", appt)
}

// Delete removes an appointment (admin)
// @Summary Delete appointment
// @Description Remove an appointment slot
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	if err := h.appointmentService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to delete appointment")
	}

	return response.Success(c, "Appointment deleted successfully", nil)
}
