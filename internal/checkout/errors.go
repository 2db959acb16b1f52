package checkout

import "errors"

// User-facing error copy, kept in one place so the views stay consistent
const (
	msgOrderFailed         = "failed to process order"
	msgPaymentCreateFailed = "failed to create payment"
	msgPaymentFailed       = "payment failed, please try again"
	msgGatewayNotReady     = "payment gateway not ready"
	msgTokenNotFound       = "payment token not found, please create a new order"
	msgOrderNotPayable     = "order can no longer be paid"
)

// ErrPaymentInProgress is returned when the pay action is invoked while a
// previous invocation is still in flight. The pay control is disabled during
// the whole span, but the handler guards against double dispatch as well.
var ErrPaymentInProgress = errors.New("payment already in progress")

// UserError is a recoverable checkout failure whose message is shown to the
// user verbatim. The flow returns to Ready and the staged order is kept so
// the user can retry without re-selecting tickets.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}
