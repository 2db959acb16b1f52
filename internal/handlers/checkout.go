package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"concert-ticketing-client/internal/checkout"
	"concert-ticketing-client/internal/middleware"
	"concert-ticketing-client/internal/models"
	"concert-ticketing-client/internal/payment"
	"concert-ticketing-client/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// UserOrdersAPI fetches the user's orders for the retry path
type UserOrdersAPI interface {
	UserOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// CheckoutHandler drives the checkout flow over HTTP: the checkout view's
// entry contract, the pay action, the widget bridge endpoints and the
// confirmation view. The orchestrator is built per request around the
// request's staging store; the per-user inflight set extends its re-entrancy
// guard across concurrent requests from the same user.
type CheckoutHandler struct {
	orders   checkout.OrderAPI
	userAPI  UserOrdersAPI
	payments checkout.PaymentsAPI
	widget   *payment.SnapBridge
	sessions sessions.Store

	mu       sync.Mutex
	inflight map[string]bool // user id -> pay sequence in flight
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(
	orders checkout.OrderAPI,
	userAPI UserOrdersAPI,
	payments checkout.PaymentsAPI,
	widget *payment.SnapBridge,
	sessionStore sessions.Store,
) *CheckoutHandler {
	return &CheckoutHandler{
		orders:   orders,
		userAPI:  userAPI,
		payments: payments,
		widget:   widget,
		sessions: sessionStore,
		inflight: make(map[string]bool),
	}
}

// staging binds the handoff store to the current request's session
func (h *CheckoutHandler) staging(w http.ResponseWriter, r *http.Request) *store.Staging {
	return store.NewStaging(store.NewSessionKV(h.sessions, w, r))
}

// orchestrator builds a checkout orchestrator around the request's staging
func (h *CheckoutHandler) orchestrator(w http.ResponseWriter, r *http.Request) *checkout.Orchestrator {
	return checkout.New(h.orders, h.payments, h.widget, h.staging(w, r))
}

// claim marks the user's pay sequence as in flight. Returns false when one
// is already running, which keeps a double-clicked pay control from creating
// duplicate backend orders.
func (h *CheckoutHandler) claim(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inflight[userID] {
		return false
	}
	h.inflight[userID] = true
	return true
}

// release clears the user's in-flight mark
func (h *CheckoutHandler) release(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inflight, userID)
}

// ShowCheckout applies the entry contract and returns the staged order
// summary plus the widget bootstrap data
func (h *CheckoutHandler) ShowCheckout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	staged, err := h.orchestrator(w, r).Load(session)
	if err != nil {
		if errors.Is(err, models.ErrNotAuthenticated) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// Nothing staged (or malformed staging): back to browsing, silently
		http.Redirect(w, r, "/concerts", http.StatusSeeOther)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stagedOrder": staged,
		"totalItems":  staged.TotalItems(),
		"buyer": map[string]string{
			"name":  session.Name,
			"email": session.Email,
		},
		"widget": map[string]interface{}{
			"ready":     h.widget.Ready(),
			"scriptUrl": h.widget.ScriptURL(),
			"clientKey": h.widget.ClientKey(),
		},
	})
}

// Pay runs the checkout sequence for the staged order
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if !session.IsAuthenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if !h.claim(session.UserID) {
		respondError(w, http.StatusConflict, checkout.ErrPaymentInProgress.Error())
		return
	}
	defer h.release(session.UserID)

	result, err := h.orchestrator(w, r).Pay(r.Context(), session)
	h.respondPayment(w, r, result, err)
}

// PayExistingOrder retries payment for a payable order from order history
func (h *CheckoutHandler) PayExistingOrder(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if !session.IsAuthenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	orderID := chi.URLParam(r, "id")

	orders, err := h.userAPI.UserOrders(r.Context(), session.UserID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to load orders")
		return
	}

	var order *models.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	if !h.claim(session.UserID) {
		respondError(w, http.StatusConflict, checkout.ErrPaymentInProgress.Error())
		return
	}
	defer h.release(session.UserID)

	result, err := h.orchestrator(w, r).PayExisting(r.Context(), session, order)
	h.respondPayment(w, r, result, err)
}

// respondPayment translates an orchestrator result into the HTTP response
func (h *CheckoutHandler) respondPayment(w http.ResponseWriter, r *http.Request, result *checkout.Result, err error) {
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNothingStaged):
			http.Redirect(w, r, "/concerts", http.StatusSeeOther)
		case errors.Is(err, models.ErrNotAuthenticated):
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, checkout.ErrPaymentInProgress):
			respondError(w, http.StatusConflict, err.Error())
		default:
			var userErr *checkout.UserError
			if errors.As(err, &userErr) {
				// Recoverable: the view shows the message inline and the
				// user may retry with the same staged order
				respondError(w, http.StatusUnprocessableEntity, userErr.Message)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to process order")
		}
		return
	}

	if result.Cancelled {
		// User dismissed the widget; no error to show
		respondJSON(w, http.StatusOK, map[string]interface{}{"cancelled": true})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orderId":         result.OrderID,
		"midtransOrderId": result.MidtransOrderID,
		"pending":         result.Pending,
		"redirectTo":      result.RedirectTo,
	})
}

// widgetReadyRequest reports the snap.js script load signal from the page
type widgetReadyRequest struct {
	Ready bool `json:"ready"`
}

// WidgetReady records whether the widget script loaded
func (h *CheckoutHandler) WidgetReady(w http.ResponseWriter, r *http.Request) {
	var req widgetReadyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	h.widget.SetReady(req.Ready)
	respondJSON(w, http.StatusOK, map[string]bool{"ready": req.Ready})
}

// widgetCallbackRequest is one widget callback relayed by the page
type widgetCallbackRequest struct {
	Token   string `json:"token"`
	Result  string `json:"result"`
	Message string `json:"message"`
}

// WidgetCallback delivers a widget outcome to the pending pay invocation.
// Late or duplicate callbacks resolve nothing and are reported as ignored.
func (h *CheckoutHandler) WidgetCallback(w http.ResponseWriter, r *http.Request) {
	var req widgetCallbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	kind, err := payment.ParseOutcomeKind(req.Result)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	accepted := h.widget.Resolve(req.Token, payment.Outcome{Kind: kind, Message: req.Message})
	respondJSON(w, http.StatusOK, map[string]bool{"accepted": accepted})
}

// ShowConfirmation returns the completed-order record for the confirmation
// view. Without one there is nothing to confirm, so back to browsing.
func (h *CheckoutHandler) ShowConfirmation(w http.ResponseWriter, r *http.Request) {
	record, err := h.staging(w, r).CompletedOrder()
	if err != nil {
		http.Redirect(w, r, "/concerts", http.StatusSeeOther)
		return
	}

	respondJSON(w, http.StatusOK, record)
}
