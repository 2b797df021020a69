package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(models.CollectionReviews)}
}

func (r *ReviewRepository) Exists(ctx context.Context, salonID, customerID int) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx,
		bson.M{"salonId": salonID, "customerId": customerID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return writeError(err)
	}
	review.ID = objectID(result.InsertedID)
	return nil
}

func (r *ReviewRepository) ListBySalon(ctx context.Context, salonID int) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return findAll[models.Review](ctx, r.collection, bson.M{"salonId": salonID}, opts)
}

// Ratings returns every rating left for the salon
func (r *ReviewRepository) Ratings(ctx context.Context, salonID int) ([]int, error) {
	opts := options.Find().SetProjection(bson.M{"rating": 1})
	docs, err := findAll[models.Review](ctx, r.collection, bson.M{"salonId": salonID}, opts)
	if err != nil {
		return nil, err
	}

	ratings := make([]int, 0, len(docs))
	for _, doc := range docs {
		ratings = append(ratings, doc.Rating)
	}
	return ratings, nil
}
