package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

type stubMovieService struct {
	listFn   func(ctx context.Context) ([]*domain.Movie, error)
	getFn    func(ctx context.Context, imdbID string) (*domain.Movie, error)
	createFn func(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error)
}

func (s *stubMovieService) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	return s.listFn(ctx)
}

func (s *stubMovieService) GetMovie(ctx context.Context, imdbID string) (*domain.Movie, error) {
	return s.getFn(ctx, imdbID)
}

func (s *stubMovieService) CreateMovie(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
	return s.createFn(ctx, input)
}

func testMovie(imdbID, title string) *domain.Movie {
	return &domain.Movie{
		ID:        "m-1",
		ImdbID:    imdbID,
		Title:     title,
		Genres:    []string{"Action"},
		Backdrops: []string{},
		ReviewIDs: []string{},
		CreatedAt: time.Now().UTC(),
	}
}

func TestMovieHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubMovieService{
		listFn: func(ctx context.Context) ([]*domain.Movie, error) {
			return []*domain.Movie{testMovie("tt0133093", "The Matrix")}, nil
		},
	}
	h := NewMovieHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["imdb_id"] != "tt0133093" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestMovieHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubMovieService{
		getFn: func(ctx context.Context, imdbID string) (*domain.Movie, error) {
			return nil, domain.ErrMovieNotFound
		},
	}
	h := NewMovieHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/tt9999999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("imdbId")
	c.SetParamValues("tt9999999")

	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMovieHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubMovieService{
		getFn: func(ctx context.Context, imdbID string) (*domain.Movie, error) {
			if imdbID != "tt0133093" {
				t.Fatalf("unexpected imdb id: %s", imdbID)
			}
			return testMovie(imdbID, "The Matrix"), nil
		},
	}
	h := NewMovieHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/tt0133093", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("imdbId")
	c.SetParamValues("tt0133093")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["title"] != "The Matrix" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestMovieHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubMovieService{
		createFn: func(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
			if input.ImdbID != "tt0133093" || input.Title != "The Matrix" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return testMovie(input.ImdbID, input.Title), nil
		},
	}
	h := NewMovieHandler(stub)

	body := strings.NewReader(`{"imdb_id":"tt0133093","title":"The Matrix","genres":["Action"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestMovieHandler_Create_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubMovieService{
		createFn: func(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
			return nil, domain.ErrDuplicateMovie
		},
	}
	h := NewMovieHandler(stub)

	body := strings.NewReader(`{"imdb_id":"tt0133093","title":"The Matrix"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Create(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestMovieHandler_Create_MissingTitle(t *testing.T) {
	e := newTestEcho()
	stub := &stubMovieService{
		createFn: func(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewMovieHandler(stub)

	body := strings.NewReader(`{"imdb_id":"tt0133093"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
