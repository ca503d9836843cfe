// Package upstream holds the shared HTTP plumbing for gateway clients:
// bearer-token auth, bounded retry on transient failures, and the mapping
// from upstream status codes to domain errors.
//
// Retries apply only to 5xx and network-level failures. Authorization
// failures (401/403) and other 4xx responses are never retried.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dokdig/pkg/domainerr"
	"dokdig/pkg/sentinel"
)

// TokenSource supplies a bearer token for one upstream system.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token. For tests and local
// development.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

const (
	maxAttempts  = 3
	retryBackoff = 200 * time.Millisecond
)

// Do executes the request produced by build, retrying transient failures up
// to the fixed attempt budget. build is called once per attempt so request
// bodies can be re-created. On success the response (status < 300) is
// returned with its body open; on failure the body is drained and closed and
// a classified error is returned.
func Do(ctx context.Context, client *http.Client, system string, logger *slog.Logger, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, domainerr.Wrap(ctx.Err(), domainerr.CodeTimeout, system+" call cancelled")
			case <-time.After(time.Duration(attempt-1) * retryBackoff):
			}
		}

		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("build %s request: %w", system, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			logger.WarnContext(ctx, "upstream call failed",
				"system", system, "attempt", attempt, "error", err)
			continue
		}

		if resp.StatusCode < http.StatusMultipleChoices {
			return resp, nil
		}

		drain(resp)
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, domainerr.Newf(domainerr.CodeUnauthorized, "%s rejected credentials", system)
		case resp.StatusCode == http.StatusForbidden:
			return nil, domainerr.Newf(domainerr.CodeForbidden, "no access to %s resource", system)
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", system, sentinel.ErrNotFound)
		case resp.StatusCode == http.StatusConflict:
			return nil, fmt.Errorf("%s: %w", system, sentinel.ErrConflict)
		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("%s returned status %d", system, resp.StatusCode)
			logger.WarnContext(ctx, "upstream call failed",
				"system", system, "attempt", attempt, "status", resp.StatusCode)
			continue
		default:
			return nil, domainerr.Newf(domainerr.CodeBadRequest, "%s returned status %d", system, resp.StatusCode)
		}
	}
	return nil, domainerr.Wrap(
		fmt.Errorf("%s: %w: %w", system, sentinel.ErrUnavailable, lastErr),
		domainerr.CodeUnavailable,
		fmt.Sprintf("%s unavailable after %d attempts", system, maxAttempts),
	)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
