package ports

import (
	"context"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

// MovieRepository defines persistence for movie documents.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	FindByImdbID(ctx context.Context, imdbID string) (*domain.Movie, error)
	List(ctx context.Context) ([]*domain.Movie, error)
	// AppendReviewID atomically pushes reviewID onto the movie's reference
	// list, filtered by imdb_id. Returns domain.ErrMovieNotFound when no
	// document matched; the caller decides what to do with the review.
	AppendReviewID(ctx context.Context, imdbID, reviewID string) error
	// AllReviewIDs returns the union of every movie's reference list.
	AllReviewIDs(ctx context.Context) (map[string]struct{}, error)
}

// ReviewRepository defines persistence for review documents.
type ReviewRepository interface {
	// Insert persists the review and returns it with its generated id set.
	Insert(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Review, error)
	ListAll(ctx context.Context) ([]*domain.Review, error)
}
