package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{collection: db.Collection(models.CollectionNotifications)}
}

func (r *NotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return err
	}
	notification.ID = objectID(result.InsertedID)
	return nil
}
