package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactor runs multi-document writes in a MongoDB transaction when enabled.
// Transactions need a replica set; standalone deployments leave it disabled.
type MongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

func NewMongoTransactor(client *mongo.Client, enabled bool) *MongoTransactor {
	return &MongoTransactor{client: client, enabled: enabled}
}

// Atomic reports whether writes inside WithTransaction commit together
func (t *MongoTransactor) Atomic() bool {
	return t.enabled
}

// WithTransaction runs fn inside a transaction, or directly when transactions are disabled
func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
