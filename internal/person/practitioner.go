package person

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dokdig/internal/platform/upstream"
	"dokdig/internal/task/models"
)

// PractitionerClient talks to the practitioner registry (HPR). Domestic-paper
// preconditions consult it for authorization and suspension state.
type PractitionerClient struct {
	baseURL string
	http    *http.Client
	tokens  upstream.TokenSource
	logger  *slog.Logger
}

// NewPractitionerClient constructs a practitioner registry client.
func NewPractitionerClient(baseURL string, tokens upstream.TokenSource, timeout time.Duration, logger *slog.Logger) *PractitionerClient {
	return &PractitionerClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

type practitionerResponse struct {
	HPRNumber  string `json:"hprNummer"`
	Authorized bool   `json:"autorisert"`
	Suspended  bool   `json:"suspendert"`
}

// ResolvePractitioner looks up a practitioner by HPR number.
func (c *PractitionerClient) ResolvePractitioner(ctx context.Context, hprNumber string) (models.Practitioner, error) {
	resp, err := upstream.Do(ctx, c.http, "practitioner", c.logger, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/behandler/"+hprNumber, nil)
		if err != nil {
			return nil, err
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("practitioner token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	})
	if err != nil {
		return models.Practitioner{}, err
	}
	defer resp.Body.Close()

	var body practitionerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Practitioner{}, fmt.Errorf("decode practitioner response: %w", err)
	}
	return models.Practitioner{
		HPRNumber:  body.HPRNumber,
		Authorized: body.Authorized,
		Suspended:  body.Suspended,
	}, nil
}
