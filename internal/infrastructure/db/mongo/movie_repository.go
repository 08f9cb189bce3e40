package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

const collectionMovies = "movies"

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies)}
}

type mongoMovie struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	ImdbID      string               `bson:"imdb_id"`
	Title       string               `bson:"title"`
	ReleaseDate string               `bson:"release_date,omitempty"`
	TrailerLink string               `bson:"trailer_link,omitempty"`
	Poster      string               `bson:"poster,omitempty"`
	Genres      []string             `bson:"genres"`
	Backdrops   []string             `bson:"backdrops"`
	ReviewIDs   []primitive.ObjectID `bson:"review_ids"`
	CreatedAt   time.Time            `bson:"created_at"`
}

// Create inserts a new movie document. The unique index on imdb_id rejects
// duplicate catalogue keys.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMovie{
		ImdbID:      m.ImdbID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		TrailerLink: m.TrailerLink,
		Poster:      m.Poster,
		Genres:      m.Genres,
		Backdrops:   m.Backdrops,
		ReviewIDs:   []primitive.ObjectID{},
		CreatedAt:   m.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMovie
		}
		return nil, storeErr("insert movie", err)
	}

	out := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MovieRepository) FindByImdbID(ctx context.Context, imdbID string) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoMovie
	if err := r.col.FindOne(ctx, bson.M{"imdb_id": imdbID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, storeErr("find movie", err)
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list movies", err)
	}
	defer cur.Close(ctx)

	var movies []*domain.Movie
	for cur.Next(ctx) {
		var doc mongoMovie
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode movie", err)
		}
		movies = append(movies, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("iterate movies", err)
	}
	return movies, nil
}

// AppendReviewID pushes the review id onto the movie's reference list in a
// single filtered update. The push is atomic at the document level, so
// concurrent appends to the same movie never lose elements.
func (r *MovieRepository) AppendReviewID(ctx context.Context, imdbID, reviewID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return storeErr("parse review id", err)
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"imdb_id": imdbID},
		bson.M{"$push": bson.M{"review_ids": oid}},
	)
	if err != nil {
		return storeErr("append review id", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// AllReviewIDs collects the union of every movie's reference list, for the
// orphan reconciliation sweep.
func (r *MovieRepository) AllReviewIDs(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"review_ids": 1}))
	if err != nil {
		return nil, storeErr("list review ids", err)
	}
	defer cur.Close(ctx)

	ids := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc struct {
			ReviewIDs []primitive.ObjectID `bson:"review_ids"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode review ids", err)
		}
		for _, oid := range doc.ReviewIDs {
			ids[oid.Hex()] = struct{}{}
		}
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("iterate review ids", err)
	}
	return ids, nil
}

// EnsureIndexes creates necessary indexes on the movies collection. The
// imdb_id index is unique: the catalogue key is the movie's stable identity.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "imdb_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *mongoMovie) toDomain() *domain.Movie {
	reviewIDs := make([]string, len(d.ReviewIDs))
	for i, oid := range d.ReviewIDs {
		reviewIDs[i] = oid.Hex()
	}
	return &domain.Movie{
		ID:          d.ID.Hex(),
		ImdbID:      d.ImdbID,
		Title:       d.Title,
		ReleaseDate: d.ReleaseDate,
		TrailerLink: d.TrailerLink,
		Poster:      d.Poster,
		Genres:      d.Genres,
		Backdrops:   d.Backdrops,
		ReviewIDs:   reviewIDs,
		CreatedAt:   d.CreatedAt,
	}
}
