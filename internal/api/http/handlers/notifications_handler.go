package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/service"
)

// NotificationsHandler serves the caller's notification inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /api/notifications?unread_only=&page=&limit=.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread_only"))

	result, err := h.notifications.List(c.UserContext(), a, unreadOnly, page, limit)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, notificationResponse(&result.Items[i]))
	}
	return respondPage(c, items, dto.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"unread_count": count})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkRead(c.UserContext(), a, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, notificationResponse(n))
}

// MarkAllRead handles PUT /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	updated, err := h.notifications.MarkAllRead(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"updated": updated})
}

// Delete handles DELETE /api/notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := h.notifications.Delete(c.UserContext(), a, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"id": id, "message": "notification deleted"})
}
