package handlers

import (
	"context"
	"net/http"

	"concert-ticketing-client/internal/middleware"
	"concert-ticketing-client/internal/models"
)

// UserAPI is the slice of the backend client the dashboard views need
type UserAPI interface {
	UserOrders(ctx context.Context, userID string) ([]models.Order, error)
	UserTickets(ctx context.Context, userID string) ([]models.Ticket, error)
}

// OrdersHandler serves the order history view
type OrdersHandler struct {
	userAPI UserAPI
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(userAPI UserAPI) *OrdersHandler {
	return &OrdersHandler{userAPI: userAPI}
}

// orderView decorates an order projection with display metadata
type orderView struct {
	models.Order
	StatusLabel string `json:"statusLabel"`
	Payable     bool   `json:"payable"`
}

// ListOrders returns the user's orders, newest first, with the pay-again
// affordance flagged for PENDING and AWAITING_PAYMENT orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	orders, err := h.userAPI.UserOrders(r.Context(), session.UserID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to load orders")
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView{
			Order:       order,
			StatusLabel: order.StatusDisplayName(),
			Payable:     order.IsPayable(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": views})
}
