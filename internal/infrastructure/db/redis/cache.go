package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

const (
	moviesKey = "catalogue:movies"
	cacheTTL  = 5 * time.Minute
)

// MovieCache is the Redis-backed read cache for the catalogue listing.
// Entries expire after cacheTTL and are invalidated on every write that
// changes a movie document.
type MovieCache struct {
	client *redis.Client
}

func NewMovieCache(client *redis.Client) *MovieCache {
	return &MovieCache{client: client}
}

// GetMovies returns the cached listing. A cold or expired key is a miss, not
// an error.
func (c *MovieCache) GetMovies(ctx context.Context) ([]*domain.Movie, bool, error) {
	payload, err := c.client.Get(ctx, moviesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var movies []*domain.Movie
	if err := json.Unmarshal(payload, &movies); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return movies, true, nil
}

func (c *MovieCache) SetMovies(ctx context.Context, movies []*domain.Movie) error {
	payload, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, moviesKey, payload, cacheTTL).Err()
}

func (c *MovieCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, moviesKey).Err()
}
