package repositories

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type CustomerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{collection: db.Collection(models.CollectionCustomer)}
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int) (*models.Customer, error) {
	return findOne[models.Customer](ctx, r.collection, bson.M{"customerId": customerID})
}

// FindByEmail matches the lower-cased address; emails are stored lower-cased
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return findOne[models.Customer](ctx, r.collection, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *CustomerRepository) Insert(ctx context.Context, customer *models.Customer) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		return writeError(err)
	}
	customer.ID = objectID(result.InsertedID)
	return nil
}

// ClaimGuest turns a password-less record created by a guest booking into a full account.
// It reports false when the record already has a password.
func (r *CustomerRepository) ClaimGuest(ctx context.Context, customerID int, name, passwordHash, phone string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"customerId": customerID,
		"$or": bson.A{
			bson.M{"password": bson.M{"$exists": false}},
			bson.M{"password": ""},
		},
	}
	set := bson.M{"name": name, "password": passwordHash}
	if phone != "" {
		set["phone"] = phone
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *CustomerRepository) UpdateProfilePicture(ctx context.Context, customerID int, url string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"customerId": customerID},
		bson.M{"$set": bson.M{"profilePicture": url}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}
