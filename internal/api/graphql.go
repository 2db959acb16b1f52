// Package api implements the clients for the external backend: the GraphQL
// API that owns concerts, orders and tickets, and the payments REST API that
// issues and verifies payment gateway tokens. The backend is the source of
// truth for everything these clients return.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GraphQLClient sends GraphQL operations to the backend over HTTP
type GraphQLClient struct {
	endpoint string
	client   *http.Client
}

// NewGraphQLClient creates a GraphQL client for the given endpoint
func NewGraphQLClient(endpoint string) *GraphQLClient {
	return &GraphQLClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// graphqlRequest is the standard GraphQL-over-HTTP request envelope
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphqlResponse is the standard GraphQL-over-HTTP response envelope
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// GraphQLError is a backend-reported operation error. Its message is surfaced
// to the user verbatim (for example a quota rejection on order creation).
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	if e.Message == "" {
		return "GraphQL Error"
	}
	return e.Message
}

// Do executes a GraphQL operation and decodes the data payload into out
func (c *GraphQLClient) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send GraphQL request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read GraphQL response: %w", err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return fmt.Errorf("failed to decode GraphQL response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return &GraphQLError{Message: envelope.Errors[0].Message}
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode GraphQL data: %w", err)
		}
	}

	return nil
}
