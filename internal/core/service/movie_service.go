package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

// MovieCache abstracts the read cache for catalogue listings (Redis).
// A miss is (nil, false, nil). Cache failures are never fatal.
type MovieCache interface {
	GetMovies(ctx context.Context) ([]*domain.Movie, bool, error)
	SetMovies(ctx context.Context, movies []*domain.Movie) error
	Invalidate(ctx context.Context) error
}

type MovieService struct {
	repo  ports.MovieRepository
	cache MovieCache
	log   zerolog.Logger
}

func NewMovieService(repo ports.MovieRepository, cache MovieCache, log zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, cache: cache, log: log}
}

// ListMovies serves the full catalogue, read-through from the cache.
func (s *MovieService) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	if s.cache != nil {
		movies, hit, err := s.cache.GetMovies(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("movie cache read failed, falling back to store")
		} else if hit {
			return movies, nil
		}
	}

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetMovies(ctx, movies); err != nil {
			s.log.Warn().Err(err).Msg("failed to populate movie cache")
		}
	}
	return movies, nil
}

func (s *MovieService) GetMovie(ctx context.Context, imdbID string) (*domain.Movie, error) {
	if imdbID == "" {
		return nil, domain.ErrMovieNotFound
	}
	return s.repo.FindByImdbID(ctx, imdbID)
}

func (s *MovieService) CreateMovie(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		ImdbID:      input.ImdbID,
		Title:       input.Title,
		ReleaseDate: input.ReleaseDate,
		TrailerLink: input.TrailerLink,
		Poster:      input.Poster,
		Genres:      input.Genres,
		Backdrops:   input.Backdrops,
		ReviewIDs:   []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	if movie.Backdrops == nil {
		movie.Backdrops = []string{}
	}

	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate movie cache")
		}
	}

	s.log.Info().Str("imdb_id", created.ImdbID).Str("title", created.Title).Msg("movie created")
	return created, nil
}
