package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviehub/catalogue-system/internal/api/metrics"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

const (
	defaultInterval = 10 * time.Minute
	// minOrphanAge keeps the sweep from flagging reviews whose link step is
	// still in flight.
	minOrphanAge = time.Minute
)

// Reconciler periodically counts orphaned reviews: durable review documents
// not referenced by any movie's reference list. The two-step attach flow has
// no shared transaction, so a crash between the writes leaves such orphans;
// the sweep observes them, it does not delete.
type Reconciler struct {
	movies   ports.MovieRepository
	reviews  ports.ReviewRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewReconciler creates a Reconciler. If interval <= 0, defaultInterval is used.
func NewReconciler(movies ports.MovieRepository, reviews ports.ReviewRepository, interval time.Duration, log zerolog.Logger) *Reconciler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Reconciler{movies: movies, reviews: reviews, interval: interval, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Reconciler) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				r.log.Error().Err(err).Msg("orphan sweep failed")
			}
		}
	}
}

// Sweep returns the ids of reviews older than minOrphanAge that no movie
// references, and updates the orphan gauge.
func (r *Reconciler) Sweep(ctx context.Context) ([]string, error) {
	referenced, err := r.movies.AllReviewIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	reviews, err := r.reviews.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	cutoff := time.Now().UTC().Add(-minOrphanAge)
	var orphans []string
	for _, review := range reviews {
		if _, ok := referenced[review.ID]; ok {
			continue
		}
		if review.CreatedAt.After(cutoff) {
			continue
		}
		orphans = append(orphans, review.ID)
	}

	metrics.OrphanedReviews.Set(float64(len(orphans)))
	if len(orphans) > 0 {
		r.log.Warn().Int("count", len(orphans)).Strs("review_ids", orphans).Msg("orphaned reviews detected")
	} else {
		r.log.Debug().Msg("orphan sweep clean")
	}
	return orphans, nil
}
