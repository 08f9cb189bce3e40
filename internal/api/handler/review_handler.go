package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviehub/catalogue-system/internal/api/metrics"
	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

// ReviewHandler handles review creation and per-movie review listings.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	ReviewBody string `json:"reviewBody" validate:"required"`
	ImdbID     string `json:"imdbId" validate:"required"`
}

type reviewResponse struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Body:      r.Body,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create persists a review and links it to its movie. A missing movie does
// not discard the review: it is created, counted as orphaned, and returned.
//
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review body and movie key"
// @Success      201   {object}  reviewResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	review, err := h.service.AttachReview(c.Request().Context(), req.ImdbID, req.ReviewBody)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) && review != nil {
			metrics.ReviewsAttachedTotal.WithLabelValues("orphaned").Inc()
			return c.JSON(http.StatusCreated, toReviewResponse(review))
		}
		return err
	}

	metrics.ReviewsAttachedTotal.WithLabelValues("linked").Inc()
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// ListByMovie returns a movie's reviews in reference-list order.
//
// @Summary      List reviews for a movie
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        imdbId  path      string  true  "IMDb id"
// @Success      200     {array}   reviewResponse
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/movies/{imdbId}/reviews [get]
func (h *ReviewHandler) ListByMovie(c echo.Context) error {
	reviews, err := h.service.ListReviews(c.Request().Context(), c.Param("imdbId"))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "movie not found"})
		}
		return err
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, toReviewResponse(r))
	}
	return c.JSON(http.StatusOK, resp)
}
