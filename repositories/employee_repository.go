package repositories

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{collection: db.Collection(models.CollectionEmployee)}
}

func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID int) (*models.Employee, error) {
	return findOne[models.Employee](ctx, r.collection, bson.M{"employeeId": employeeID})
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return findOne[models.Employee](ctx, r.collection, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *EmployeeRepository) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	return findOne[models.Employee](ctx, r.collection, bson.M{"employeeCode": code})
}

func (r *EmployeeRepository) Insert(ctx context.Context, employee *models.Employee) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		return writeError(err)
	}
	employee.ID = objectID(result.InsertedID)
	return nil
}

// CompleteRegistration sets the password and burns the invite code
func (r *EmployeeRepository) CompleteRegistration(ctx context.Context, employeeID int, passwordHash string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"employeeId": employeeID, "employeeCode": bson.M{"$type": "string"}},
		bson.M{"$set": bson.M{"password": passwordHash, "employeeCode": nil}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

// ListBySalon returns employees whose home salon is salonID or who also work there
func (r *EmployeeRepository) ListBySalon(ctx context.Context, salonID int) ([]models.Employee, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"salonId": salonID},
		bson.M{"salonIds": salonID},
	}}
	return findAll[models.Employee](ctx, r.collection, filter, options.Find().SetSort(bson.M{"employeeId": 1}))
}

func (r *EmployeeRepository) UpdateSpecialties(ctx context.Context, employeeID int, specialties []models.Specialty) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if specialties == nil {
		specialties = []models.Specialty{}
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"employeeId": employeeID},
		bson.M{"$set": bson.M{"specialties": specialties}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *EmployeeRepository) UpdateProfilePicture(ctx context.Context, employeeID int, url string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"employeeId": employeeID},
		bson.M{"$set": bson.M{"profilePicture": url}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, salonID, employeeID int) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"employeeId": employeeID, "salonId": salonID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
