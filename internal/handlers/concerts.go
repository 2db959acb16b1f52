package handlers

import (
	"context"
	"errors"
	"net/http"

	"concert-ticketing-client/internal/browse"
	"concert-ticketing-client/internal/middleware"
	"concert-ticketing-client/internal/models"
	"concert-ticketing-client/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// ConcertAPI is the slice of the backend client the browsing views need
type ConcertAPI interface {
	PublishedConcerts(ctx context.Context) ([]models.Concert, error)
	ConcertByID(ctx context.Context, id string) (*models.Concert, error)
}

// ConcertsHandler serves the concert browsing and detail views and stages
// ticket selections for checkout
type ConcertsHandler struct {
	concerts ConcertAPI
	sessions sessions.Store
}

// NewConcertsHandler creates a new concerts handler
func NewConcertsHandler(concerts ConcertAPI, sessionStore sessions.Store) *ConcertsHandler {
	return &ConcertsHandler{concerts: concerts, sessions: sessionStore}
}

// ListConcerts returns the published concerts with the requested filters and
// sort applied. Filtering and sorting happen client-side over the fetched
// list, matching what the browsing view renders.
func (h *ConcertsHandler) ListConcerts(w http.ResponseWriter, r *http.Request) {
	concerts, err := h.concerts.PublishedConcerts(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to load concerts")
		return
	}

	query := r.URL.Query()
	filter := browse.Filter{
		Query:       query.Get("search"),
		PriceRanges: query["price"],
		Venues:      query["venue"],
		SortBy:      browse.ParseSortOption(query.Get("sort")),
	}

	filtered := filter.Apply(concerts)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"concerts": filtered,
		"venues":   browse.Venues(concerts),
		"showing":  len(filtered),
		"total":    len(concerts),
	})
}

// GetConcert returns a single concert with full ticket type details
func (h *ConcertsHandler) GetConcert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	concert, err := h.concerts.ConcertByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrConcertNotFound) {
			respondError(w, http.StatusNotFound, "concert not found")
			return
		}
		respondError(w, http.StatusBadGateway, "failed to load concert")
		return
	}

	respondJSON(w, http.StatusOK, concert)
}

// stageRequest is the selection payload from the concert detail view
type stageRequest struct {
	Items []struct {
		TicketTypeID string `json:"ticketTypeId"`
		Quantity     int    `json:"quantity"`
	} `json:"items"`
}

// StageSelection writes the user's ticket selection to the staging store and
// sends them to checkout. Quantities are clamped to the available quota;
// prices come from the freshly fetched concert, never from the client.
func (h *ConcertsHandler) StageSelection(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if !session.IsAuthenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "id")

	var req stageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid selection")
		return
	}

	concert, err := h.concerts.ConcertByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrConcertNotFound) {
			respondError(w, http.StatusNotFound, "concert not found")
			return
		}
		respondError(w, http.StatusBadGateway, "failed to load concert")
		return
	}

	selections := browse.NewSelections(concert.TicketTypes)
	for _, item := range req.Items {
		selections.SetQuantity(item.TicketTypeID, item.Quantity)
	}

	staged, err := selections.Stage(concert)
	if err != nil {
		respondError(w, http.StatusBadRequest, "no tickets selected")
		return
	}

	staging := store.NewStaging(store.NewSessionKV(h.sessions, w, r))
	if err := staging.SaveStagedOrder(staged); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to stage order")
		return
	}

	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}
