package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

// ReviewService links reviews into movie reference lists. The review insert
// and the list append are two independent writes with no shared transaction;
// only their ordering is guaranteed.
type ReviewService struct {
	reviews ports.ReviewRepository
	movies  ports.MovieRepository
	cache   MovieCache
	log     zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, movies ports.MovieRepository, cache MovieCache, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, movies: movies, cache: cache, log: log}
}

// AttachReview persists the review, then appends its id to the movie's
// reference list via an atomic document-level push. When the movie is missing
// the review stays durable as an orphan: it is returned together with
// domain.ErrMovieNotFound and never rolled back.
func (s *ReviewService) AttachReview(ctx context.Context, imdbID, body string) (*domain.Review, error) {
	review, err := s.reviews.Insert(ctx, &domain.Review{
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("attach review: %w", err)
	}

	if err := s.movies.AppendReviewID(ctx, imdbID, review.ID); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			s.log.Warn().
				Str("imdb_id", imdbID).
				Str("review_id", review.ID).
				Msg("review orphaned: movie not found for link step")
			return review, domain.ErrMovieNotFound
		}
		// The append failed for another reason; the review is still durable.
		s.log.Error().Err(err).
			Str("imdb_id", imdbID).
			Str("review_id", review.ID).
			Msg("review link step failed")
		return review, fmt.Errorf("attach review: link: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate movie cache")
		}
	}

	s.log.Info().Str("imdb_id", imdbID).Str("review_id", review.ID).Msg("review attached")
	return review, nil
}

// ListReviews returns the movie's reviews in reference-list order. References
// whose review document is missing are skipped; an orphan the other way round
// (review without reference) is invisible here by construction.
func (s *ReviewService) ListReviews(ctx context.Context, imdbID string) ([]*domain.Review, error) {
	movie, err := s.movies.FindByImdbID(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	if len(movie.ReviewIDs) == 0 {
		return []*domain.Review{}, nil
	}

	found, err := s.reviews.FindByIDs(ctx, movie.ReviewIDs)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	byID := make(map[string]*domain.Review, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	ordered := make([]*domain.Review, 0, len(movie.ReviewIDs))
	for _, id := range movie.ReviewIDs {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}
