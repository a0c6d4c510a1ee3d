package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spec-kit/tracker-service/internal/config"
)

// Client executes named queries and mutations against a Hasura-style
// GraphQL endpoint. The backend is a black box: send {query, variables},
// read the result keyed by operation name.
type Client struct {
	endpoint    string
	adminSecret string
	http        *http.Client
}

// NewClient constructs a client from configuration. A nil client is
// returned when no endpoint is configured; callers treat that as the chat
// subsystem being disabled.
func NewClient(cfg config.HasuraConfig) *Client {
	if cfg.Endpoint == "" {
		return nil
	}
	return &Client{
		endpoint:    cfg.Endpoint,
		adminSecret: cfg.AdminSecret,
		http:        &http.Client{Timeout: cfg.Timeout()},
	}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute runs the query with the given variables and decodes the data
// object into out.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, out any) error {
	if c == nil {
		return errors.New("graphql backend not configured")
	}

	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.adminSecret != "" {
		req.Header.Set("x-hasura-admin-secret", c.adminSecret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql request failed: status %d", resp.StatusCode)
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", parsed.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(parsed.Data, out)
}
