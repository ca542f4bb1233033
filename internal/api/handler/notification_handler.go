package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// NotificationHandler exposes notification operations. Sending is admin-only;
// the remaining operations are ownership-gated inside the service.
type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type sendNotificationRequest struct {
	Title       string `json:"title"     validate:"required"`
	Message     string `json:"message"   validate:"required"`
	RecipientID string `json:"recipient" validate:"required"`
	Type        string `json:"type"      validate:"omitempty,oneof=general alert"`
}

type notificationResponse struct {
	Message      string               `json:"message,omitempty"`
	Notification *domain.Notification `json:"notification"`
}

type notificationListResponse struct {
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
	Total         int64                 `json:"total"`
	TotalPages    int                   `json:"totalPages"`
	Notifications []domain.Notification `json:"notifications"`
}

// Send creates a notification for one recipient and queues its delivery.
//
// @Summary      Send a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendNotificationRequest  true  "Notification"
// @Success      201   {object}  notificationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/notifications [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req sendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	n, err := h.notificationService.Send(c.Request().Context(), caller, ports.SendNotificationInput{
		Title:       req.Title,
		Message:     req.Message,
		RecipientID: req.RecipientID,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, notificationResponse{
		Message:      "notification sent successfully",
		Notification: n,
	})
}

// List returns the caller's notifications, newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  notificationListResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := ctxPage(c)
	if err != nil {
		return err
	}

	notifications, total, err := h.notificationService.ListForCaller(c.Request().Context(), caller, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{
		Page:          page.Page,
		Limit:         page.Limit,
		Total:         total,
		TotalPages:    domain.TotalPages(total, page.Limit),
		Notifications: notifications,
	})
}

// MarkRead flags a notification as read. Only the sender or an admin may do
// this.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  notificationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	n, err := h.notificationService.MarkRead(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationResponse{
		Message:      "notification marked as read",
		Notification: n,
	})
}

// Delete removes a notification. Only the recipient or an admin may do this.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification deleted successfully"})
}
