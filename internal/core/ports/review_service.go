package ports

import (
	"context"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

// ReviewService creates reviews and links them into movie reference lists.
type ReviewService interface {
	// AttachReview persists the review first, then appends its id to the
	// movie's reference list. The two writes share no transaction: when the
	// movie is missing the persisted review is returned alongside
	// domain.ErrMovieNotFound and stays durable as an orphan.
	AttachReview(ctx context.Context, imdbID, body string) (*domain.Review, error)
	// ListReviews returns the movie's reviews in reference-list order.
	// Dangling references are skipped.
	ListReviews(ctx context.Context, imdbID string) ([]*domain.Review, error)
}
