package person

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"dokdig/internal/task/models"
)

// SubjectResolver is implemented by Client and by CachedResolver.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, nationalID string) (models.Subject, error)
}

// CachedResolver fronts a SubjectResolver with a Redis cache. Cache failures
// degrade to registry lookups; they never fail the request.
type CachedResolver struct {
	inner  SubjectResolver
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedResolver wraps resolver with a Redis cache using the given TTL.
func NewCachedResolver(inner SubjectResolver, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedResolver {
	return &CachedResolver{inner: inner, redis: client, ttl: ttl, logger: logger}
}

func cacheKey(nationalID string) string {
	return "person:subject:" + nationalID
}

func (r *CachedResolver) ResolveSubject(ctx context.Context, nationalID string) (models.Subject, error) {
	payload, err := r.redis.Get(ctx, cacheKey(nationalID)).Bytes()
	if err == nil {
		var subject models.Subject
		if err := json.Unmarshal(payload, &subject); err == nil {
			return subject, nil
		}
		// Corrupt entry: drop it and fall through to the registry.
		r.redis.Del(ctx, cacheKey(nationalID))
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WarnContext(ctx, "person cache read failed", "error", err)
	}

	subject, err := r.inner.ResolveSubject(ctx, nationalID)
	if err != nil {
		return models.Subject{}, err
	}

	if payload, err := json.Marshal(subject); err == nil {
		if err := r.redis.Set(ctx, cacheKey(nationalID), payload, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "person cache write failed", "error", err)
		}
	} else {
		r.logger.WarnContext(ctx, "person cache marshal failed", "error", fmt.Errorf("marshal subject: %w", err))
	}
	return subject, nil
}
