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
)

type stubReviewService struct {
	attachFn func(ctx context.Context, imdbID, body string) (*domain.Review, error)
	listFn   func(ctx context.Context, imdbID string) ([]*domain.Review, error)
}

func (s *stubReviewService) AttachReview(ctx context.Context, imdbID, body string) (*domain.Review, error) {
	return s.attachFn(ctx, imdbID, body)
}

func (s *stubReviewService) ListReviews(ctx context.Context, imdbID string) ([]*domain.Review, error) {
	return s.listFn(ctx, imdbID)
}

func TestReviewHandler_Create_Linked(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		attachFn: func(ctx context.Context, imdbID, body string) (*domain.Review, error) {
			if imdbID != "tt0133093" || body != "great movie" {
				t.Fatalf("unexpected args: %s %s", imdbID, body)
			}
			return &domain.Review{ID: "r-1", Body: body, CreatedAt: time.Now().UTC()}, nil
		},
	}
	h := NewReviewHandler(stub)

	body := strings.NewReader(`{"reviewBody":"great movie","imdbId":"tt0133093"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "r-1" || resp["body"] != "great movie" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

// A review for an unknown movie is still persisted and returned with 201.
func TestReviewHandler_Create_OrphanStillCreated(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		attachFn: func(ctx context.Context, imdbID, body string) (*domain.Review, error) {
			return &domain.Review{ID: "r-2", Body: body, CreatedAt: time.Now().UTC()}, domain.ErrMovieNotFound
		},
	}
	h := NewReviewHandler(stub)

	body := strings.NewReader(`{"reviewBody":"lost review","imdbId":"tt0000000"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "r-2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReviewHandler_Create_MissingBody(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		attachFn: func(ctx context.Context, imdbID, body string) (*domain.Review, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewReviewHandler(stub)

	body := strings.NewReader(`{"imdbId":"tt0133093"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReviewHandler_ListByMovie(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		listFn: func(ctx context.Context, imdbID string) ([]*domain.Review, error) {
			return []*domain.Review{
				{ID: "r-1", Body: "first"},
				{ID: "r-2", Body: "second"},
			}, nil
		},
	}
	h := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/tt0133093/reviews", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("imdbId")
	c.SetParamValues("tt0133093")

	if err := h.ListByMovie(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "r-1" || resp[1]["id"] != "r-2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReviewHandler_ListByMovie_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		listFn: func(ctx context.Context, imdbID string) ([]*domain.Review, error) {
			return nil, domain.ErrMovieNotFound
		},
	}
	h := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/tt9999999/reviews", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("imdbId")
	c.SetParamValues("tt9999999")

	_ = h.ListByMovie(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
