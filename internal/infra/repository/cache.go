package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"

	"github.com/seatkit/webinar/internal/domain"
	"github.com/seatkit/webinar/internal/usecase"
)

// memcacheClient is the slice of *memcache.Client the decorator uses.
type memcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

// CachedWebinarRepository is a read-through decorator over the webinar
// port, backed by memcached. Invalidation runs after the inner write has
// succeeded: deleting first would open a window for a concurrent read to
// re-cache the pre-update row and serve it for the full TTL. Cache
// failures degrade to the inner repository; they are logged, never
// surfaced.
type CachedWebinarRepository struct {
	inner usecase.WebinarRepository
	mc    memcacheClient
	ttl   int32
}

func NewCachedWebinarRepository(inner usecase.WebinarRepository, mc *memcache.Client, ttlSeconds int32) *CachedWebinarRepository {
	return newCachedWebinarRepository(inner, mc, ttlSeconds)
}

func newCachedWebinarRepository(inner usecase.WebinarRepository, mc memcacheClient, ttlSeconds int32) *CachedWebinarRepository {
	return &CachedWebinarRepository{
		inner: inner,
		mc:    mc,
		ttl:   ttlSeconds,
	}
}

// cacheKey hashes the id: memcached keys are limited to 250 bytes with no
// whitespace, and webinar ids are caller-supplied opaque strings.
func cacheKey(id string) string {
	return fmt.Sprintf("webinar:%x", xxh3.HashString(id))
}

func (r *CachedWebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	key := cacheKey(id)

	item, err := r.mc.Get(key)
	if err == nil {
		var w domain.Webinar
		if err := json.Unmarshal(item.Value, &w); err == nil {
			return &w, nil
		}
	} else if !errors.Is(err, memcache.ErrCacheMiss) {
		slog.Warn(
			"memcached get failed",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}

	found, err := r.inner.FindByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}

	if value, err := json.Marshal(found); err == nil {
		if err := r.mc.Set(&memcache.Item{Key: key, Value: value, Expiration: r.ttl}); err != nil {
			slog.Warn(
				"memcached set failed",
				slog.String("error", err.Error()),
				slog.String("module", "cache"),
			)
		}
	}

	return found, nil
}

func (r *CachedWebinarRepository) Create(ctx context.Context, w domain.Webinar) error {
	return r.inner.Create(ctx, w)
}

func (r *CachedWebinarRepository) Update(ctx context.Context, w domain.Webinar) error {
	if err := r.inner.Update(ctx, w); err != nil {
		return err
	}
	if err := r.mc.Delete(cacheKey(w.ID)); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		slog.Warn(
			"memcached delete failed",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
	return nil
}
