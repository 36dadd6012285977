package court

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// cachedRepository is a read-through cache over a Repository. Court rows are
// read on every booking attempt but change rarely, so a short TTL takes the
// hot path off Postgres. Writes invalidate the cached row.
type cachedRepository struct {
	Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedRepository wraps repo with a Redis cache. The cache is strictly an
// optimization: any Redis failure falls back to the underlying repository.
func NewCachedRepository(repo Repository, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) Repository {
	return &cachedRepository{
		Repository: repo,
		rdb:        rdb,
		ttl:        ttl,
		logger:     logger,
	}
}

func cacheKey(id string) string {
	return "court:" + id
}

func (r *cachedRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	raw, err := r.rdb.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var c Court
		if err := json.Unmarshal(raw, &c); err == nil {
			return &c, nil
		}
	} else if err != redis.Nil {
		r.logger.Warn().Err(err).Str("court_id", id).Msg("court cache read failed")
	}

	c, err := r.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(c); err == nil {
		if err := r.rdb.Set(ctx, cacheKey(id), raw, r.ttl).Err(); err != nil {
			r.logger.Warn().Err(err).Str("court_id", id).Msg("court cache write failed")
		}
	}

	return c, nil
}

func (r *cachedRepository) Update(ctx context.Context, c *Court) error {
	if err := r.Repository.Update(ctx, c); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, cacheKey(c.ID)).Err(); err != nil {
		r.logger.Warn().Err(err).Str("court_id", c.ID).Msg("court cache invalidation failed")
	}
	return nil
}
