package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/service"
)

// DLQHandler receives dead-lettered Pub/Sub push deliveries
type DLQHandler struct {
	dlqService service.DLQService
}

// NewDLQHandler creates a new DLQHandler
func NewDLQHandler(dlqService service.DLQService) *DLQHandler {
	return &DLQHandler{dlqService: dlqService}
}

// RegisterRoutes mounts the DLQ push route
func (h *DLQHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/events/dead-letter", h.receive)
}

// receive godoc
// @Summary Store a dead-lettered Pub/Sub message
// @Description Push endpoint for the dead-letter subscription. Always acknowledges parseable requests so Pub/Sub stops redelivering.
// @Tags events
// @Accept json
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "Invalid push payload"
// @Failure 500 {string} string "Failed to store message"
// @Router /events/dead-letter [post]
func (h *DLQHandler) receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.PubSubPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid push payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.dlqService.ProcessPush(r.Context(), &req); err != nil {
		http.Error(w, "Failed to store message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
