package ports

import (
	"context"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

// CreateMovieInput carries the descriptive fields for a new catalogue entry.
type CreateMovieInput struct {
	ImdbID      string
	Title       string
	ReleaseDate string
	TrailerLink string
	Poster      string
	Genres      []string
	Backdrops   []string
}

// MovieService defines use-case operations for the catalogue.
type MovieService interface {
	ListMovies(ctx context.Context) ([]*domain.Movie, error)
	GetMovie(ctx context.Context, imdbID string) (*domain.Movie, error)
	CreateMovie(ctx context.Context, input CreateMovieInput) (*domain.Movie, error)
}
