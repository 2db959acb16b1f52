// Package payment models the external Midtrans Snap payment widget. The
// widget itself is a third-party script running in the user's browser; this
// package wraps its four callbacks (success, pending, error, close) into a
// single awaited outcome so the checkout flow can treat one widget invocation
// as one event with four possible results.
package payment

import (
	"context"
	"errors"
)

// OutcomeKind tags the terminal signal of one widget invocation
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomePending OutcomeKind = "pending"
	OutcomeError   OutcomeKind = "error"
	OutcomeClosed  OutcomeKind = "closed"
)

// Outcome is the result of one widget invocation
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message,omitempty"`
}

// ErrNotReady is returned when the widget script has not finished loading
var ErrNotReady = errors.New("payment gateway not ready")

// Widget is the payment widget as seen by the checkout flow. Pay hands the
// token to the widget and blocks until exactly one outcome arrives or the
// context is cancelled. There is no timeout: if the widget never calls back,
// only context cancellation unblocks the call.
type Widget interface {
	Ready() bool
	Pay(ctx context.Context, token string) (Outcome, error)
}

// ParseOutcomeKind validates an outcome tag received from the browser
func ParseOutcomeKind(value string) (OutcomeKind, error) {
	switch OutcomeKind(value) {
	case OutcomeSuccess, OutcomePending, OutcomeError, OutcomeClosed:
		return OutcomeKind(value), nil
	default:
		return "", errors.New("unknown widget outcome")
	}
}
