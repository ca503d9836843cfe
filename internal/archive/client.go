// Package archive is the gateway to the document archive ("journalpost"
// registry). All mutations are idempotent per record: callers query the
// record's completion state before mutating, so bounded retries are safe.
package archive

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

// Correspondent is the party a journal record is addressed to.
type Correspondent struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"idType,omitempty"`
	Name string `json:"navn,omitempty"`
}

// Client talks to the archive REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  upstream.TokenSource
	logger  *slog.Logger
}

// NewClient constructs an archive gateway client.
func NewClient(baseURL string, tokens upstream.TokenSource, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

type journalRecord struct {
	Status string `json:"journalstatus"`
}

// IsFinalized reports whether the journal record is already completed
// upstream. The orchestrator uses this to make finalize replays safe.
func (c *Client) IsFinalized(ctx context.Context, recordID string) (bool, error) {
	resp, err := upstream.Do(ctx, c.http, "archive", c.logger, func(ctx context.Context) (*http.Request, error) {
		return c.request(ctx, http.MethodGet, fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s", recordID), nil)
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var record journalRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return false, fmt.Errorf("decode journal record: %w", err)
	}
	return record.Status == "JOURNALFOERT" || record.Status == "FERDIGSTILT", nil
}

type updateRequest struct {
	Title         string             `json:"tittel"`
	Correspondent Correspondent      `json:"avsenderMottaker"`
	Documents     []documentTitleReq `json:"dokumenter,omitempty"`
}

type documentTitleReq struct {
	DocumentID string `json:"dokumentInfoId"`
	Title      string `json:"tittel"`
}

type finalizeRequest struct {
	CompletingUnit string `json:"journalfoerendeEnhet"`
}

// UpdateAndFinalize sets the record's title, correspondent and document
// title, then marks the record complete on behalf of the given unit.
func (c *Client) UpdateAndFinalize(ctx context.Context, recordID, documentID, title string, correspondent Correspondent, completingUnit string) error {
	update := updateRequest{
		Title:         title,
		Correspondent: correspondent,
		Documents:     []documentTitleReq{{DocumentID: documentID, Title: title}},
	}
	resp, err := upstream.Do(ctx, c.http, "archive", c.logger, func(ctx context.Context) (*http.Request, error) {
		return c.request(ctx, http.MethodPut, fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s", recordID), update)
	})
	if err != nil {
		return err
	}
	drainClose(resp)

	resp, err = upstream.Do(ctx, c.http, "archive", c.logger, func(ctx context.Context) (*http.Request, error) {
		return c.request(ctx, http.MethodPatch,
			fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s/ferdigstill", recordID),
			finalizeRequest{CompletingUnit: completingUnit})
	})
	if err != nil {
		return err
	}
	drainClose(resp)
	return nil
}

// UpdateDocumentTitle updates only the document title. Used when the record
// is already finalized upstream and must not be re-completed.
func (c *Client) UpdateDocumentTitle(ctx context.Context, recordID, documentID, title string) error {
	update := updateRequest{
		Title:     title,
		Documents: []documentTitleReq{{DocumentID: documentID, Title: title}},
	}
	resp, err := upstream.Do(ctx, c.http, "archive", c.logger, func(ctx context.Context) (*http.Request, error) {
		return c.request(ctx, http.MethodPut, fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s", recordID), update)
	})
	if err != nil {
		return err
	}
	drainClose(resp)
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
		return nil, fmt.Errorf("archive token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if correlationID := requestcontext.CorrelationID(ctx); correlationID != "" {
		req.Header.Set("Nav-Callid", correlationID)
	}
	return req, nil
}

func drainClose(resp *http.Response) {
	_ = resp.Body.Close()
}
