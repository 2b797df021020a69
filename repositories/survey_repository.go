package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type SurveyRepository struct {
	collection *mongo.Collection
}

func NewSurveyRepository(db *mongo.Database) *SurveyRepository {
	return &SurveyRepository{collection: db.Collection(models.CollectionCustomerSurvey)}
}

// Upsert replaces the customer's answers, keeping the original createdAt
func (r *SurveyRepository) Upsert(ctx context.Context, survey *models.CustomerSurvey) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	survey.UpdatedAt = now
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"customerId": survey.CustomerID},
		bson.M{
			"$set": bson.M{
				"hairType":          survey.HairType,
				"hairLength":        survey.HairLength,
				"allergies":         survey.Allergies,
				"preferredServices": survey.PreferredServices,
				"answers":           survey.Answers,
				"notes":             survey.Notes,
				"updatedAt":         now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return writeError(err)
}

func (r *SurveyRepository) FindByCustomer(ctx context.Context, customerID int) (*models.CustomerSurvey, error) {
	return findOne[models.CustomerSurvey](ctx, r.collection, bson.M{"customerId": customerID})
}
