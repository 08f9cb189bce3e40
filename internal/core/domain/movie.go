package domain

import (
	"errors"
	"time"
)

var ErrMovieNotFound = errors.New("movie not found")
var ErrDuplicateMovie = errors.New("movie already exists")
var ErrReviewNotFound = errors.New("review not found")

// Movie is a content document in the catalogue, identified by its IMDb id.
// ReviewIDs is the ordered reference list: appends go through an atomic
// document-level $push so concurrent reviews never clobber each other.
type Movie struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ImdbID      string    `json:"imdb_id" bson:"imdb_id"`
	Title       string    `json:"title" bson:"title"`
	ReleaseDate string    `json:"release_date,omitempty" bson:"release_date,omitempty"`
	TrailerLink string    `json:"trailer_link,omitempty" bson:"trailer_link,omitempty"`
	Poster      string    `json:"poster,omitempty" bson:"poster,omitempty"`
	Genres      []string  `json:"genres" bson:"genres"`
	Backdrops   []string  `json:"backdrops" bson:"backdrops"`
	ReviewIDs   []string  `json:"review_ids" bson:"review_ids"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Review is an independent content document. It is created first and only
// afterwards referenced from exactly one movie's reference list; a review
// whose link step failed stays durable but orphaned.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
