package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type ScheduleRepository struct {
	collection *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{collection: db.Collection(models.CollectionEmployeeSchedules)}
}

func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *models.EmployeeSchedule) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	schedule.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"salonId": schedule.SalonID, "employeeId": schedule.EmployeeID},
		bson.M{"$set": bson.M{"schedule": schedule.Schedule, "updatedAt": schedule.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	return writeError(err)
}

func (r *ScheduleRepository) Find(ctx context.Context, salonID, employeeID int) (*models.EmployeeSchedule, error) {
	return findOne[models.EmployeeSchedule](ctx, r.collection, bson.M{"salonId": salonID, "employeeId": employeeID})
}
