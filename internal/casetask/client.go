// Package casetask is the gateway to the external case-management task
// system. The task record carries an optimistic-concurrency version: every
// mutation reads the current version first and writes with it, never caching
// a version across calls. A version conflict means someone else completed the
// task and is surfaced as sentinel.ErrConflict, not retried.
package casetask

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dokdig/internal/platform/upstream"
	"dokdig/pkg/requestcontext"
)

// Terminal statuses in the case-management system.
const (
	StatusCompleted     = "FERDIGSTILT"
	StatusMisregistered = "FEILREGISTRERT"
)

// LegacyQueueID identifies the manual fallback queue tasks are rerouted to.
const LegacyQueueID = "GOSYS"

// Task is the external task record as exposed by the case-management API.
type Task struct {
	ID           string `json:"id"`
	Version      int    `json:"versjon"`
	Status       string `json:"status"`
	AssignedUnit string `json:"tildeltEnhetsnr"`
	Description  string `json:"beskrivelse"`
}

// Terminal reports whether the external task is in a state that must not be
// completed again.
func (t Task) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusMisregistered
}

// Client talks to the case-management REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  upstream.TokenSource
	logger  *slog.Logger
}

// NewClient constructs a case-task gateway client.
func NewClient(baseURL string, tokens upstream.TokenSource, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// Get reads the current task record, including the version needed for any
// subsequent mutation.
func (c *Client) Get(ctx context.Context, taskID string) (Task, error) {
	resp, err := upstream.Do(ctx, c.http, "casetask", c.logger, func(ctx context.Context) (*http.Request, error) {
		return c.request(ctx, http.MethodGet, "/api/v1/oppgaver/"+taskID, nil)
	})
	if err != nil {
		return Task{}, err
	}
	defer resp.Body.Close()

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return Task{}, fmt.Errorf("decode case task: %w", err)
	}
	return task, nil
}

type patchRequest struct {
	ID           string `json:"id"`
	Version      int    `json:"versjon"`
	Status       string `json:"status"`
	Assignee     string `json:"tilordnetRessurs,omitempty"`
	AssignedUnit string `json:"tildeltEnhetsnr,omitempty"`
	Description  string `json:"beskrivelse,omitempty"`
}

// Complete marks the task finished using the freshly-read version. An
// upstream 409 surfaces as sentinel.ErrConflict, which callers treat as
// "already completed elsewhere".
func (c *Client) Complete(ctx context.Context, taskID string, version int, assignee, unit, description string) error {
	return c.patch(ctx, patchRequest{
		ID:           taskID,
		Version:      version,
		Status:       StatusCompleted,
		Assignee:     assignee,
		AssignedUnit: unit,
		Description:  description,
	})
}

// ReassignToLegacyQueue reroutes the task to the manual fallback queue.
func (c *Client) ReassignToLegacyQueue(ctx context.Context, taskID string, version int, assignee, unit string) error {
	return c.patch(ctx, patchRequest{
		ID:           taskID,
		Version:      version,
		Status:       StatusCompleted,
		Assignee:     assignee,
		AssignedUnit: unit,
		Description:  "Overført til " + LegacyQueueID + " for manuell behandling",
	})
}

func (c *Client) patch(ctx context.Context, body patchRequest) error {
	resp, err := upstream.Do(ctx, c.http, "casetask", c.logger, func(ctx context.Context) (*http.Request, error) {
		return c.request(ctx, http.MethodPatch, "/api/v1/oppgaver/"+body.ID, body)
	})
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) request(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(payload)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("casetask token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if correlationID := requestcontext.CorrelationID(ctx); correlationID != "" {
		req.Header.Set("X-Correlation-ID", correlationID)
	}
	return req, nil
}
