// Package person resolves reference data about people: the patient from the
// person registry and the submitting practitioner from the practitioner
// registry. Lookups are read-only; a Redis cache in front keeps repeated
// draft/validate round trips cheap.
package person

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dokdig/internal/platform/upstream"
	"dokdig/internal/task/models"
	"dokdig/pkg/requestcontext"
)

// Client talks to the person registry API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  upstream.TokenSource
	logger  *slog.Logger
}

// NewClient constructs a person registry client.
func NewClient(baseURL string, tokens upstream.TokenSource, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

type subjectResponse struct {
	NationalID  string  `json:"ident"`
	FullName    string  `json:"navn"`
	DateOfBirth *string `json:"foedselsdato"`
	AktorID     string  `json:"aktorId"`
}

type subjectRequest struct {
	NationalID string `json:"ident"`
}

// ResolveSubject looks up the patient by national identifier.
func (c *Client) ResolveSubject(ctx context.Context, nationalID string) (models.Subject, error) {
	resp, err := upstream.Do(ctx, c.http, "person", c.logger, func(ctx context.Context) (*http.Request, error) {
		payload, err := json.Marshal(subjectRequest{NationalID: nationalID})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/person", bytes.NewBuffer(payload))
		if err != nil {
			return nil, err
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("person token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		if correlationID := requestcontext.CorrelationID(ctx); correlationID != "" {
			req.Header.Set("Nav-Callid", correlationID)
		}
		return req, nil
	})
	if err != nil {
		return models.Subject{}, err
	}
	defer resp.Body.Close()

	var body subjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Subject{}, fmt.Errorf("decode person response: %w", err)
	}

	subject := models.Subject{
		NationalID: body.NationalID,
		FullName:   body.FullName,
		AktorID:    body.AktorID,
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			return models.Subject{}, fmt.Errorf("parse date of birth: %w", err)
		}
		subject.DateOfBirth = &dob
	}
	return subject, nil
}
