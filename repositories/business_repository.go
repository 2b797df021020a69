package repositories

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type BusinessRepository struct {
	collection *mongo.Collection
}

func NewBusinessRepository(db *mongo.Database) *BusinessRepository {
	return &BusinessRepository{collection: db.Collection(models.CollectionBusiness)}
}

func (r *BusinessRepository) FindByID(ctx context.Context, salonID int) (*models.Business, error) {
	return findOne[models.Business](ctx, r.collection, bson.M{"salonId": salonID})
}

func (r *BusinessRepository) FindByEmail(ctx context.Context, email string) (*models.Business, error) {
	return findOne[models.Business](ctx, r.collection, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *BusinessRepository) Insert(ctx context.Context, business *models.Business) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, business)
	if err != nil {
		return writeError(err)
	}
	business.ID = objectID(result.InsertedID)
	return nil
}

// List returns salons whose name contains nameQuery, case-insensitive. An empty query lists all salons.
func (r *BusinessRepository) List(ctx context.Context, nameQuery string) ([]models.Business, error) {
	filter := bson.M{}
	if q := strings.TrimSpace(nameQuery); q != "" {
		filter["businessName"] = primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	}
	opts := options.Find().
		SetSort(bson.M{"businessName": 1}).
		SetProjection(bson.M{"password": 0})
	return findAll[models.Business](ctx, r.collection, filter, opts)
}

func (r *BusinessRepository) Update(ctx context.Context, salonID int, req models.BusinessUpdateRequest) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{}
	if req.BusinessName != nil {
		set["businessName"] = *req.BusinessName
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Phone != nil {
		set["Phone"] = *req.Phone
	}
	if req.Description != nil {
		set["Description"] = *req.Description
	}
	if req.Logo != nil {
		set["logo"] = *req.Logo
	}
	if req.Banner != nil {
		set["banner"] = *req.Banner
	}
	if req.Theme != nil {
		set["theme"] = *req.Theme
	}
	if req.BusinessHours != nil {
		set["businessHours"] = req.BusinessHours
	}
	if len(set) == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"salonId": salonID})
		return count > 0, err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"salonId": salonID}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *BusinessRepository) UpdateRating(ctx context.Context, salonID int, rating float64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"salonId": salonID},
		bson.M{"$set": bson.M{"rating": rating}},
	)
	return err
}
