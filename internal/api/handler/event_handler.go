package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

// EventHandler exposes event CRUD. Create and Update accept multipart form
// data so an image can ride along with the fields.
type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type eventResponse struct {
	Message string        `json:"message,omitempty"`
	Event   *domain.Event `json:"event"`
}

type eventListResponse struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
	Events     []domain.Event `json:"events"`
}

// Create registers a new event. Fields arrive as multipart form values with an
// optional "image" file part.
//
// @Summary      Create an event
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Event title"
// @Param        description  formData  string  false  "Description"
// @Param        date         formData  string  true   "Date (RFC 3339 or YYYY-MM-DD)"
// @Param        branch       formData  string  true   "Branch id or name"
// @Param        organizer    formData  string  true   "Organizer principal id"
// @Param        attendees    formData  string  false  "Comma-separated attendee ids"
// @Param        image        formData  file    false  "Event image"
// @Success      201          {object}  eventResponse
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	date, err := parseDateField(c.FormValue("date"))
	if err != nil {
		return err
	}

	in := ports.CreateEventInput{
		Title:       title,
		Description: c.FormValue("description"),
		Date:        date,
		Branch:      strings.TrimSpace(c.FormValue("branch")),
		OrganizerID: strings.TrimSpace(c.FormValue("organizer")),
		AttendeeIDs: splitIDList(c.FormValue("attendees")),
	}
	if in.Branch == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "branch is required")
	}
	if in.OrganizerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "organizer is required")
	}

	upload, closeUpload, err := formImage(c)
	if err != nil {
		return err
	}
	if upload != nil {
		defer closeUpload()
		in.Image = upload
	}

	event, err := h.eventService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, eventResponse{
		Message: "event created successfully",
		Event:   event,
	})
}

// List returns events filtered by optional date range and organizer.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        from       query     string  false  "Start date (inclusive)"
// @Param        to         query     string  false  "End date (inclusive)"
// @Param        organizer  query     string  false  "Organizer principal id"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  eventListResponse
// @Failure      400        {object}  errorResponse
// @Router       /api/v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}

	filter := ports.EventFilter{
		OrganizerID: c.QueryParam("organizer"),
		Page:        page,
	}
	if raw := c.QueryParam("from"); raw != "" {
		if filter.DateFrom, err = parseDateField(raw); err != nil {
			return err
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if filter.DateTo, err = parseDateField(raw); err != nil {
			return err
		}
	}

	events, total, err := h.eventService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventListResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, page.Limit),
		Events:     events,
	})
}

// Get returns a single event by id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventResponse{Event: event})
}

// Update rewrites an event's details with an optional replacement image.
//
// @Summary      Update an event
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Event id"
// @Param        title        formData  string  true   "Event title"
// @Param        description  formData  string  false  "Description"
// @Param        date         formData  string  true   "Date (RFC 3339 or YYYY-MM-DD)"
// @Param        branch       formData  string  false  "Branch id or name"
// @Param        image        formData  file    false  "Replacement image"
// @Success      200          {object}  eventResponse
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/v1/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	date, err := parseDateField(c.FormValue("date"))
	if err != nil {
		return err
	}

	in := ports.UpdateEventInput{
		Title:       title,
		Description: c.FormValue("description"),
		Date:        date,
		Branch:      strings.TrimSpace(c.FormValue("branch")),
	}

	upload, closeUpload, err := formImage(c)
	if err != nil {
		return err
	}
	if upload != nil {
		defer closeUpload()
		in.Image = upload
	}

	event, err := h.eventService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventResponse{
		Message: "event updated successfully",
		Event:   event,
	})
}

// Delete removes an event.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "event deleted successfully"})
}

// formImage extracts the optional "image" multipart file. The second return
// value closes the underlying file and must be deferred when a file is found.
func formImage(c echo.Context) (*ports.FileUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		// No multipart body at all is fine; the image is optional.
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded image")
	}
	return &ports.FileUpload{Name: fh.Filename, Content: f}, func() { f.Close() }, nil
}

// parseDateField accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDateField(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
}

// splitIDList splits a comma-separated id list, dropping empty entries.
func splitIDList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
