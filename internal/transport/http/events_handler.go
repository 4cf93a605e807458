package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
)

// EventsHandler handles HTTP requests for events.
type EventsHandler struct {
	listEvents *list_events.Query
	logger     *zap.Logger
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		listEvents: listEvents,
		logger:     logger,
	}
}

// Register mounts the events endpoint on the router.
func (h *EventsHandler) Register(r chi.Router) {
	r.Get("/events", h.ServeHTTP)
}

// Event represents an outbox event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// ServeHTTP handles GET /api/v1/events requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse query parameters
	query := r.URL.Query()
	req := &list_events.Request{}

	if eventType := query.Get("event_type"); eventType != "" {
		req.EventType = &eventType
	}
	if aggregateID := query.Get("aggregate_id"); aggregateID != "" {
		req.AggregateID = &aggregateID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	limit, ok := parseIntParam(query.Get("limit"))
	if !ok || limit < 0 {
		writeBadRequest(w, "limit must be a non-negative integer")
		return
	}
	req.Limit = int64(limit)

	events, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to list events",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	response := ListEventsResponse{
		Events:     make([]Event, 0, len(events)),
		TotalCount: int64(len(events)),
	}
	for _, e := range events {
		event := Event{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.PayloadString(),
			Status:      e.Status,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.ProcessedAt.Valid {
			processedAt := e.ProcessedAt.Time.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		response.Events = append(response.Events, event)
	}

	writeJSON(w, http.StatusOK, response)
}
