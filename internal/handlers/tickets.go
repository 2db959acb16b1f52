package handlers

import (
	"net/http"

	"concert-ticketing-client/internal/middleware"
	"concert-ticketing-client/internal/models"
)

// TicketsHandler serves the ticket wallet view
type TicketsHandler struct {
	userAPI UserAPI
}

// NewTicketsHandler creates a new tickets handler
func NewTicketsHandler(userAPI UserAPI) *TicketsHandler {
	return &TicketsHandler{userAPI: userAPI}
}

// ListTickets returns the user's tickets grouped into active (still valid
// for entry) and past (used or void), both newest first
func (h *TicketsHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	tickets, err := h.userAPI.UserTickets(r.Context(), session.UserID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to load tickets")
		return
	}

	active := make([]models.Ticket, 0)
	past := make([]models.Ticket, 0)
	for _, ticket := range tickets {
		if ticket.IsActive() {
			active = append(active, ticket)
		} else {
			past = append(past, ticket)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"active": active,
		"past":   past,
	})
}
