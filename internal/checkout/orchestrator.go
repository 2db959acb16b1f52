// Package checkout implements the client-side lifecycle of a single
// prospective purchase: staging, backend order creation, payment token
// request, widget invocation and finalization. All truth about orders,
// inventory and payment verification lives in the backend; this package only
// sequences the calls and reacts to the widget's outcome.
package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"concert-ticketing-client/internal/api"
	"concert-ticketing-client/internal/auth"
	"concert-ticketing-client/internal/models"
	"concert-ticketing-client/internal/payment"
)

// State is the orchestrator's position in the checkout lifecycle
type State string

const (
	StateIdle            State = "idle"
	StateLoading         State = "loading"
	StateReady           State = "ready"
	StateCreatingOrder   State = "creating_order"
	StateRequestingToken State = "requesting_token"
	StateAwaitingWidget  State = "awaiting_widget"
	StateFinalized       State = "finalized"
)

// RedirectConfirmation is where finalized purchases land
const RedirectConfirmation = "/payment/success"

// orderExpiry is the expiry constraint sent at order creation; the backend
// enforces it
const orderExpiry = 30 * time.Minute

// OrderAPI is the slice of the GraphQL client the orchestrator needs
type OrderAPI interface {
	CreateOrder(ctx context.Context, input api.CreateOrderInput) (*api.CreatedOrder, error)
}

// PaymentsAPI is the slice of the payments REST client the orchestrator needs
type PaymentsAPI interface {
	CreateToken(ctx context.Context, sessionToken, orderID string) (string, error)
	ExistingToken(ctx context.Context, sessionToken, orderID string) (string, error)
	Verify(ctx context.Context, sessionToken, orderID string) error
}

// StagingStore is the slice of the handoff store the orchestrator needs
type StagingStore interface {
	StagedOrder() (*models.StagedOrder, error)
	ClearStagedOrder() error
	SaveCompletedOrder(record *models.CompletedOrderRecord) error
}

// Result is the outcome of one pay action
type Result struct {
	OrderID         string
	MidtransOrderID string
	Finalized       bool   // success or pending signal arrived
	Pending         bool   // payment settles asynchronously
	Cancelled       bool   // user dismissed the widget, no error to show
	RedirectTo      string // set when Finalized
}

// Orchestrator drives the checkout state machine. At most one create-order,
// token-request and widget sequence may be in flight per instance.
type Orchestrator struct {
	orders   OrderAPI
	payments PaymentsAPI
	widget   payment.Widget
	staging  StagingStore

	mu    sync.Mutex
	state State

	now func() time.Time
}

// New creates an orchestrator over the given collaborators
func New(orders OrderAPI, payments PaymentsAPI, widget payment.Widget, staging StagingStore) *Orchestrator {
	return &Orchestrator{
		orders:   orders,
		payments: payments,
		widget:   widget,
		staging:  staging,
		state:    StateIdle,
		now:      time.Now,
	}
}

// State reports the current lifecycle state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Busy reports whether a pay sequence is in flight. The pay control must be
// disabled while this is true.
func (o *Orchestrator) Busy() bool {
	switch o.State() {
	case StateCreatingOrder, StateRequestingToken, StateAwaitingWidget:
		return true
	default:
		return false
	}
}

// setState swaps the lifecycle state
func (o *Orchestrator) setState(state State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = state
}

// begin claims the in-flight slot, failing when a sequence is already running
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateCreatingOrder, StateRequestingToken, StateAwaitingWidget:
		return false
	default:
		o.state = StateCreatingOrder
		return true
	}
}

// Load applies the entry contract: a resolved session and a non-empty staged
// order. models.ErrNotAuthenticated sends the user to sign-in,
// models.ErrNothingStaged sends them back to browsing.
func (o *Orchestrator) Load(sess *auth.Session) (*models.StagedOrder, error) {
	o.setState(StateLoading)

	if !sess.IsAuthenticated() {
		o.setState(StateIdle)
		return nil, models.ErrNotAuthenticated
	}

	staged, err := o.staging.StagedOrder()
	if err != nil {
		o.setState(StateIdle)
		return nil, err
	}

	o.setState(StateReady)
	return staged, nil
}

// Pay runs the full checkout sequence for the staged order: create order,
// request payment token, invoke the widget, then finalize or return to Ready
// depending on the outcome. The three backend calls are strictly sequential;
// each depends on data from the previous one.
func (o *Orchestrator) Pay(ctx context.Context, sess *auth.Session) (*Result, error) {
	if !sess.IsAuthenticated() {
		return nil, models.ErrNotAuthenticated
	}

	staged, err := o.staging.StagedOrder()
	if err != nil {
		return nil, err
	}

	if !o.widget.Ready() {
		return nil, &UserError{Message: msgGatewayNotReady, Err: payment.ErrNotReady}
	}

	if !o.begin() {
		return nil, ErrPaymentInProgress
	}

	// Step 1: create the backend order
	items := make([]api.CreateOrderItemInput, 0, len(staged.Items))
	for _, sel := range staged.Items {
		items = append(items, api.CreateOrderItemInput{
			TicketTypeID: sel.TicketTypeID,
			Qty:          sel.Quantity,
			UnitPrice:    sel.Price,
			Subtotal:     sel.Subtotal(),
		})
	}

	created, err := o.orders.CreateOrder(ctx, api.CreateOrderInput{
		UserID:      sess.UserID,
		ConcertID:   staged.ConcertID,
		GrossAmount: staged.TotalPrice,
		ExpiresAt:   o.now().Add(orderExpiry).UTC().Format(time.RFC3339),
		Items:       items,
	})
	if err != nil {
		o.setState(StateReady)
		return nil, backendUserError(err, msgOrderFailed)
	}

	// Step 2: request the payment token. The order is not rolled back on
	// failure; it stays PENDING server-side and can be paid from the
	// order-history view.
	o.setState(StateRequestingToken)
	token, err := o.payments.CreateToken(ctx, sess.Token, created.ID)
	if err != nil {
		o.setState(StateReady)
		return nil, backendUserError(err, msgPaymentCreateFailed)
	}

	record := &models.CompletedOrderRecord{
		OrderID:         created.ID,
		MidtransOrderID: created.MidtransOrderID,
		ConcertTitle:    staged.ConcertTitle,
		Items:           staged.Items,
		TotalPrice:      staged.TotalPrice,
	}

	return o.awaitWidget(ctx, sess, token, record)
}

// PayExisting retries payment for an existing payable order from the
// order-history view. PENDING orders get a fresh token; AWAITING_PAYMENT
// orders reuse the previously issued one. Order creation is never repeated
// on this path.
func (o *Orchestrator) PayExisting(ctx context.Context, sess *auth.Session, order *models.Order) (*Result, error) {
	if !sess.IsAuthenticated() {
		return nil, models.ErrNotAuthenticated
	}

	if !order.IsPayable() {
		return nil, &UserError{Message: msgOrderNotPayable}
	}

	if !o.widget.Ready() {
		return nil, &UserError{Message: msgGatewayNotReady, Err: payment.ErrNotReady}
	}

	if !o.begin() {
		return nil, ErrPaymentInProgress
	}

	o.setState(StateRequestingToken)

	var token string
	var err error
	if order.NeedsNewToken() {
		token, err = o.payments.CreateToken(ctx, sess.Token, order.ID)
		if err != nil {
			o.setState(StateReady)
			return nil, backendUserError(err, msgPaymentCreateFailed)
		}
	} else {
		token, err = o.payments.ExistingToken(ctx, sess.Token, order.ID)
		if err != nil || token == "" {
			o.setState(StateReady)
			return nil, &UserError{Message: msgTokenNotFound, Err: err}
		}
	}

	record := &models.CompletedOrderRecord{
		OrderID:         order.ID,
		MidtransOrderID: order.MidtransOrderID,
		TotalPrice:      order.GrossAmount,
	}
	if order.Concert != nil {
		record.ConcertTitle = order.Concert.Title
	}
	for _, item := range order.OrderItems {
		sel := models.TicketSelection{
			TicketTypeID: item.TicketTypeID,
			Quantity:     item.Qty,
			Price:        item.UnitPrice,
		}
		if item.TicketType != nil {
			sel.Name = item.TicketType.Name
		}
		record.Items = append(record.Items, sel)
	}

	return o.awaitWidget(ctx, sess, token, record)
}

// awaitWidget runs Step 3: hand the token to the widget and handle the single
// outcome it produces. Exactly one terminal branch runs per invocation; the
// widget wrapper guarantees late callbacks are dropped.
func (o *Orchestrator) awaitWidget(ctx context.Context, sess *auth.Session, token string, record *models.CompletedOrderRecord) (*Result, error) {
	o.setState(StateAwaitingWidget)

	outcome, err := o.widget.Pay(ctx, token)
	if err != nil {
		o.setState(StateReady)
		if errors.Is(err, payment.ErrNotReady) {
			return nil, &UserError{Message: msgGatewayNotReady, Err: err}
		}
		// Context cancellation: the user navigated away mid-flow. Nothing
		// was finalized, the staged order stays intact.
		return nil, err
	}

	switch outcome.Kind {
	case payment.OutcomeSuccess:
		// Best-effort verification. The widget's success signal is treated
		// as authoritative client-side; the backend reconciles independently.
		if err := o.payments.Verify(ctx, sess.Token, record.OrderID); err != nil {
			log.Printf("checkout: payment verification failed for order %s: %v", record.OrderID, err)
		}
		return o.finalize(record, false)

	case payment.OutcomePending:
		// Pending payments are reconciled asynchronously by the backend;
		// no verification call is made.
		record.IsPending = true
		return o.finalize(record, true)

	case payment.OutcomeError:
		o.setState(StateReady)
		return nil, &UserError{Message: msgPaymentFailed}

	default: // closed: user dismissed the widget, silent return to Ready
		o.setState(StateReady)
		return &Result{OrderID: record.OrderID, MidtransOrderID: record.MidtransOrderID, Cancelled: true}, nil
	}
}

// finalize writes the completed-order record, clears staging and issues the
// confirmation redirect
func (o *Orchestrator) finalize(record *models.CompletedOrderRecord, pending bool) (*Result, error) {
	if err := o.staging.SaveCompletedOrder(record); err != nil {
		log.Printf("checkout: failed to save completed order %s: %v", record.OrderID, err)
	}
	if err := o.staging.ClearStagedOrder(); err != nil {
		log.Printf("checkout: failed to clear staged order: %v", err)
	}

	o.setState(StateFinalized)
	return &Result{
		OrderID:         record.OrderID,
		MidtransOrderID: record.MidtransOrderID,
		Finalized:       true,
		Pending:         pending,
		RedirectTo:      RedirectConfirmation,
	}, nil
}

// backendUserError surfaces the backend-supplied message when one exists and
// falls back to generic copy otherwise
func backendUserError(err error, fallback string) error {
	var gqlErr *api.GraphQLError
	if errors.As(err, &gqlErr) && gqlErr.Message != "" {
		return &UserError{Message: gqlErr.Message, Err: err}
	}

	var payErr *api.PaymentsError
	if errors.As(err, &payErr) && payErr.Message != "" {
		return &UserError{Message: payErr.Message, Err: err}
	}

	return &UserError{Message: fallback, Err: err}
}
