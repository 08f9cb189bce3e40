package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

const collectionReviews = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Body      string             `bson:"body"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Insert persists the review and returns it with the generated id. Once this
// returns, the review is durable regardless of what the link step does next.
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoReview{
		Body:      review.Body,
		CreatedAt: review.CreatedAt,
	})
	if err != nil {
		return nil, storeErr("insert review", err)
	}

	out := *review
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

// FindByIDs returns the reviews matching ids, in store order. Missing ids are
// simply absent from the result; callers re-order by reference list.
func (r *ReviewRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // dangling or malformed reference, skip
		}
		oids = append(oids, oid)
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, storeErr("find reviews", err)
	}
	defer cur.Close(ctx)

	return decodeReviews(ctx, cur)
}

// ListAll returns every review document, for the orphan reconciliation sweep.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list reviews", err)
	}
	defer cur.Close(ctx)

	return decodeReviews(ctx, cur)
}

func decodeReviews(ctx context.Context, cur *mongo.Cursor) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for cur.Next(ctx) {
		var doc mongoReview
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode review", err)
		}
		reviews = append(reviews, &domain.Review{
			ID:        doc.ID.Hex(),
			Body:      doc.Body,
			CreatedAt: doc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("iterate reviews", err)
	}
	return reviews, nil
}
