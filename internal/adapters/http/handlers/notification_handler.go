package handlers

import (
	"errors"
	"strconv"

	"github.com/el7alafawy/blood-safe/internal/core/services"
	"github.com/el7alafawy/blood-safe/internal/pkg/pagination"
	"github.com/el7alafawy/blood-safe/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Create sends a notification to a user (admin)
// @Summary Create notification
// @Description Admin sends a notification to one user
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateNotificationInput true "Notification data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input services.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" || input.Message == "" {
		return response.BadRequest(c, "Title and message are required")
	}

	notification, err := h.notificationService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidNotifyType):
			return response.BadRequest(c, "Invalid notification type or priority")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Target user not found")
		default:
			return response.InternalServerError(c, "Failed to create notification")
		}
	}

	return response.Created(c, "Notification created successfully", notification)
}

// List lists the caller's notifications
// @Summary List notifications
// @Description Caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	notifications, total, err := h.notificationService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", pagination.NewResponse(notifications, params, total))
}

// UnreadCount returns the caller's unread notification count
// @Summary Unread count
// @Description Number of unread notifications for the caller
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread/count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to count unread notifications")
	}

	return response.Success(c, "Unread count retrieved successfully", fiber.Map{"count": count})
}

// MarkRead marks one notification as read
// @Summary Mark notification read
// @Description Mark one of the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.MarkRead(c.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificationNotFound):
			return response.NotFound(c, "Notification not found")
		case errors.Is(err, services.ErrNotificationNotOwned):
			return response.Forbidden(c, "This notification is not yours")
		default:
			return response.InternalServerError(c, "Failed to mark notification read")
		}
	}

	return response.Success(c, "Notification marked as read", nil)
}

// MarkAllRead marks all the caller's notifications as read
// @Summary Mark all read
// @Description Mark every unread notification of the caller as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to mark notifications read")
	}

	return response.Success(c, "All notifications marked as read", nil)
}

// Delete removes one of the caller's notifications
// @Summary Delete notification
// @Description Remove one of the caller's notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.Delete(c.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificationNotFound):
			return response.NotFound(c, "Notification not found")
		case errors.Is(err, services.ErrNotificationNotOwned):
			return response.Forbidden(c, "This notification is not yours")
		default:
			return response.InternalServerError(c, "Failed to delete notification")
		}
	}

	return response.Success(c, "Notification deleted successfully", nil)
}

// DeleteAll clears the caller's notifications
// @Summary Delete all notifications
// @Description Remove every notification of the caller
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [delete]
func (h *NotificationHandler) DeleteAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.DeleteAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to delete notifications")
	}

	return response.Success(c, "Notifications deleted successfully", nil)
}
