package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaymentsClient calls the backend's payments REST endpoints. Every call is
// authenticated with the user's bearer session token; the payment gateway
// itself is never contacted directly.
type PaymentsClient struct {
	baseURL string
	client  *http.Client
}

// NewPaymentsClient creates a payments client for the given backend base URL
func NewPaymentsClient(baseURL string) *PaymentsClient {
	return &PaymentsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// PaymentsError is a non-2xx response from the payments API. Message carries
// the backend-supplied reason when one was returned.
type PaymentsError struct {
	StatusCode int
	Message    string
}

func (e *PaymentsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("payments API error (status %d)", e.StatusCode)
}

// tokenResponse is the create-token response envelope
type tokenResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// existingTokenResponse is the get-token response envelope
type existingTokenResponse struct {
	Data struct {
		SnapToken string `json:"snapToken"`
	} `json:"data"`
}

// CreateToken requests a fresh payment token for an order. Used during
// initial checkout and when retrying a PENDING order.
func (p *PaymentsClient) CreateToken(ctx context.Context, sessionToken, orderID string) (string, error) {
	var resp tokenResponse
	url := fmt.Sprintf("%s/payments/%s/create", p.baseURL, orderID)
	if err := p.do(ctx, http.MethodPost, url, sessionToken, &resp); err != nil {
		return "", err
	}
	if resp.Data.Token == "" {
		return "", &PaymentsError{StatusCode: http.StatusOK, Message: "backend returned no payment token"}
	}
	return resp.Data.Token, nil
}

// ExistingToken fetches the previously issued token for an AWAITING_PAYMENT
// order. Returns an empty token without error when none was found.
func (p *PaymentsClient) ExistingToken(ctx context.Context, sessionToken, orderID string) (string, error) {
	var resp existingTokenResponse
	url := fmt.Sprintf("%s/payments/%s", p.baseURL, orderID)
	if err := p.do(ctx, http.MethodGet, url, sessionToken, &resp); err != nil {
		return "", err
	}
	return resp.Data.SnapToken, nil
}

// Verify asks the backend to confirm the payment with the gateway and issue
// tickets. Callers treat failures as best-effort: the widget's success signal
// already happened and the backend reconciles independently.
func (p *PaymentsClient) Verify(ctx context.Context, sessionToken, orderID string) error {
	url := fmt.Sprintf("%s/payments/%s/verify", p.baseURL, orderID)
	return p.do(ctx, http.MethodPost, url, sessionToken, nil)
}

// do sends a payments API request and decodes the response into out
func (p *PaymentsClient) do(ctx context.Context, method, url, sessionToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create payments request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send payments request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read payments response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(bodyBytes, &apiErr)
		return &PaymentsError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode payments response: %w", err)
		}
	}

	return nil
}
