package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
)

// opTimeout bounds every single database operation
const opTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// findOne decodes the first match into a new T, returning (nil, nil) when nothing matches
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc T
	err := coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// findAll decodes every match into a slice. The result is never nil.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// aggregate runs a pipeline and decodes every result. The result is never nil.
func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline interface{}) ([]T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// writeError maps unique index violations onto apperrors.ErrDuplicateKey
func writeError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicateKey, err)
	}
	return err
}

func objectID(v interface{}) primitive.ObjectID {
	if id, ok := v.(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}
