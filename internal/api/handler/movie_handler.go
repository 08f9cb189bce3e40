package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

// MovieHandler handles HTTP requests for catalogue reads and admin writes.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

type createMovieRequest struct {
	ImdbID      string   `json:"imdb_id" validate:"required,max=20"`
	Title       string   `json:"title" validate:"required,max=255"`
	ReleaseDate string   `json:"release_date"`
	TrailerLink string   `json:"trailer_link"`
	Poster      string   `json:"poster"`
	Genres      []string `json:"genres"`
	Backdrops   []string `json:"backdrops"`
}

type movieResponse struct {
	ID          string   `json:"id"`
	ImdbID      string   `json:"imdb_id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date,omitempty"`
	TrailerLink string   `json:"trailer_link,omitempty"`
	Poster      string   `json:"poster,omitempty"`
	Genres      []string `json:"genres"`
	Backdrops   []string `json:"backdrops"`
	ReviewIDs   []string `json:"review_ids"`
	CreatedAt   string   `json:"created_at"`
}

func toMovieResponse(m *domain.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		ImdbID:      m.ImdbID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		TrailerLink: m.TrailerLink,
		Poster:      m.Poster,
		Genres:      m.Genres,
		Backdrops:   m.Backdrops,
		ReviewIDs:   m.ReviewIDs,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns the full catalogue.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  movieResponse
// @Router       /api/v1/movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.ListMovies(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, toMovieResponse(m))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single movie by its catalogue key.
//
// @Summary      Get a movie by IMDb id
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        imdbId  path      string  true  "IMDb id (e.g. tt0133093)"
// @Success      200     {object}  movieResponse
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/movies/{imdbId} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.service.GetMovie(c.Request().Context(), c.Param("imdbId"))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "movie not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Create adds a new catalogue entry. Admin only.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMovieRequest  true  "Movie details"
// @Success      201   {object}  movieResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	movie, err := h.service.CreateMovie(c.Request().Context(), ports.CreateMovieInput{
		ImdbID:      req.ImdbID,
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
		TrailerLink: req.TrailerLink,
		Poster:      req.Poster,
		Genres:      req.Genres,
		Backdrops:   req.Backdrops,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateMovie) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "movie already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, toMovieResponse(movie))
}
