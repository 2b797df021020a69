package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type AppointmentRepository struct {
	collection *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{collection: db.Collection(models.CollectionAppointment)}
}

// FindBySlot matches on exact start time only; overlapping durations are not detected
func (r *AppointmentRepository) FindBySlot(ctx context.Context, slot models.Slot) (*models.Appointment, error) {
	return findOne[models.Appointment](ctx, r.collection, bson.M{
		"employeeId": slot.EmployeeID,
		"date":       slot.Date,
		"time":       slot.Time,
	})
}

func (r *AppointmentRepository) FindByAppointmentID(ctx context.Context, appointmentID int) (*models.Appointment, error) {
	return findOne[models.Appointment](ctx, r.collection, bson.M{"appointmentId": appointmentID})
}

func (r *AppointmentRepository) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	return findOne[models.Appointment](ctx, r.collection, bson.M{"_id": id})
}

func (r *AppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, appointment)
	if err != nil {
		return writeError(err)
	}
	appointment.ID = objectID(result.InsertedID)
	return nil
}

func (r *AppointmentRepository) DeleteByAppointmentID(ctx context.Context, appointmentID int) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ListByCustomer returns the customer's appointments with employee and salon names, soonest first
func (r *AppointmentRepository) ListByCustomer(ctx context.Context, customerID int) ([]models.AppointmentView, error) {
	pipeline := joinPipeline(bson.M{"customerId": customerID},
		lookup{models.CollectionEmployee, "employeeId", "employeeId", "name", "employeeName"},
		lookup{models.CollectionBusiness, "salonId", "salonId", "businessName", "salonName"},
	)
	return aggregate[models.AppointmentView](ctx, r.collection, pipeline)
}

// ListByEmployee returns the employee's appointments with customer and salon names, soonest first
func (r *AppointmentRepository) ListByEmployee(ctx context.Context, employeeID int) ([]models.AppointmentView, error) {
	pipeline := joinPipeline(bson.M{"employeeId": employeeID},
		lookup{models.CollectionCustomer, "customerId", "customerId", "name", "customerName"},
		lookup{models.CollectionBusiness, "salonId", "salonId", "businessName", "salonName"},
	)
	return aggregate[models.AppointmentView](ctx, r.collection, pipeline)
}

func (r *AppointmentRepository) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "employeeId", Value: 1}})
	return findAll[models.Appointment](ctx, r.collection, bson.M{"date": date}, opts)
}

// BookedTimes returns the start times already taken for an employee on a date
func (r *AppointmentRepository) BookedTimes(ctx context.Context, employeeID int, date string) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"time": 1}).
		SetSort(bson.M{"time": 1})
	docs, err := findAll[models.Appointment](ctx, r.collection, bson.M{"employeeId": employeeID, "date": date}, opts)
	if err != nil {
		return nil, err
	}

	times := make([]string, 0, len(docs))
	for _, doc := range docs {
		times = append(times, doc.Time)
	}
	return times, nil
}

// lookup joins one display field from another collection
type lookup struct {
	from         string
	localField   string
	foreignField string
	field        string
	as           string
}

func joinPipeline(match bson.M, lookups ...lookup) []bson.M {
	pipeline := []bson.M{{"$match": match}}

	project := bson.M{}
	for _, l := range lookups {
		joined := "_" + l.as
		pipeline = append(pipeline,
			bson.M{"$lookup": bson.M{
				"from":         l.from,
				"localField":   l.localField,
				"foreignField": l.foreignField,
				"as":           joined,
			}},
			bson.M{"$addFields": bson.M{
				l.as: bson.M{"$ifNull": bson.A{
					bson.M{"$arrayElemAt": bson.A{"$" + joined + "." + l.field, 0}},
					"",
				}},
			}},
		)
		project[joined] = 0
	}

	return append(pipeline,
		bson.M{"$project": project},
		bson.M{"$sort": bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	)
}
