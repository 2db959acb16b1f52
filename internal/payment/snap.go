package payment

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// SnapConfig configures the Snap widget bridge
type SnapConfig struct {
	ClientKey   string
	Environment string // "sandbox" or "production"
}

// Snap script URLs per environment
const (
	snapSandboxScriptURL    = "https://app.sandbox.midtrans.com/snap/snap.js"
	snapProductionScriptURL = "https://app.midtrans.com/snap/snap.js"
)

// SnapBridge bridges the browser-side Snap widget into the server-side
// checkout flow. Pay registers a pending invocation keyed by the snap token;
// the browser reports the widget's callback through an HTTP endpoint, which
// resolves the invocation. Only the first resolution of an invocation counts,
// every later callback for the same token is a no-op.
type SnapBridge struct {
	config SnapConfig
	ready  atomic.Bool

	mu      sync.Mutex
	pending map[string]*invocation
}

// invocation is one in-flight widget session
type invocation struct {
	id       string
	outcome  chan Outcome
	resolved bool
}

// NewSnapBridge creates a Snap widget bridge. The bridge starts not ready;
// readiness is reported by the checkout page once the snap.js script loads.
func NewSnapBridge(config SnapConfig) *SnapBridge {
	return &SnapBridge{
		config:  config,
		pending: make(map[string]*invocation),
	}
}

// Ready reports whether the widget script has finished loading
func (b *SnapBridge) Ready() bool {
	return b.ready.Load()
}

// SetReady records the script load signal from the checkout page. A load
// error sets it back to false, which disables the pay action until reload.
func (b *SnapBridge) SetReady(ready bool) {
	b.ready.Store(ready)
}

// ClientKey returns the publishable client key embedded in the page
func (b *SnapBridge) ClientKey() string {
	return b.config.ClientKey
}

// ScriptURL returns the snap.js URL for the configured environment
func (b *SnapBridge) ScriptURL() string {
	if b.config.Environment == "production" {
		return snapProductionScriptURL
	}
	return snapSandboxScriptURL
}

// Pay blocks until the browser delivers the widget outcome for token or the
// context is cancelled. Cancellation abandons the invocation without an
// outcome, mirroring navigation teardown in the browser.
func (b *SnapBridge) Pay(ctx context.Context, token string) (Outcome, error) {
	if !b.Ready() {
		return Outcome{}, ErrNotReady
	}

	inv := &invocation{
		id:      uuid.NewString(),
		outcome: make(chan Outcome, 1),
	}

	b.mu.Lock()
	b.pending[token] = inv
	b.mu.Unlock()

	log.Printf("snap: invocation %s awaiting widget outcome", inv.id)

	defer func() {
		b.mu.Lock()
		delete(b.pending, token)
		b.mu.Unlock()
	}()

	select {
	case outcome := <-inv.outcome:
		log.Printf("snap: invocation %s resolved as %s", inv.id, outcome.Kind)
		return outcome, nil
	case <-ctx.Done():
		log.Printf("snap: invocation %s abandoned: %v", inv.id, ctx.Err())
		return Outcome{}, ctx.Err()
	}
}

// Resolve delivers a widget outcome for token. Returns false when the token
// has no pending invocation or the invocation was already resolved.
func (b *SnapBridge) Resolve(token string, outcome Outcome) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	inv, ok := b.pending[token]
	if !ok || inv.resolved {
		return false
	}

	inv.resolved = true
	inv.outcome <- outcome
	return true
}
