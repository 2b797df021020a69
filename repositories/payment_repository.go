package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{collection: db.Collection(models.CollectionPayment)}
}

func (r *PaymentRepository) Insert(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return writeError(err)
	}
	payment.ID = objectID(result.InsertedID)
	return nil
}

func (r *PaymentRepository) FindByAppointment(ctx context.Context, appointmentRef primitive.ObjectID) (*models.Payment, error) {
	return findOne[models.Payment](ctx, r.collection, bson.M{"appointmentId": appointmentRef})
}

// Upsert overwrites cost and paid for the appointment's payment, creating it if absent.
// It reports whether a new payment was created.
func (r *PaymentRepository) Upsert(ctx context.Context, payment *models.Payment) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.PaymentMethodPlaceholder
	}
	update := bson.M{
		"$set": bson.M{
			"cost":      payment.Cost,
			"paid":      payment.Paid,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"customerId":    payment.CustomerID,
			"salonId":       payment.SalonID,
			"employeeId":    payment.EmployeeID,
			"paymentMethod": payment.PaymentMethod,
			"createdAt":     now,
		},
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"appointmentId": payment.AppointmentID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, writeError(err)
	}
	payment.UpdatedAt = now
	if result.UpsertedID != nil {
		payment.ID = objectID(result.UpsertedID)
		payment.CreatedAt = now
		return true, nil
	}
	return false, nil
}
