package repositories

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grizzway/SalonSync-sub000/models"
)

// sequenceSource names the collection and field an id sequence is drawn from
type sequenceSource struct {
	collection string
	field      string
}

var sequenceSources = map[string]sequenceSource{
	models.SequenceCustomer:    {models.CollectionCustomer, "customerId"},
	models.SequenceEmployee:    {models.CollectionEmployee, "employeeId"},
	models.SequenceAppointment: {models.CollectionAppointment, "appointmentId"},
	models.SequenceSalon:       {models.CollectionBusiness, "salonId"},
}

// CounterRepository allocates integer ids from an atomic counter document per sequence.
// The first allocation in a process seeds the counter with the collection's current maximum,
// so ids continue from existing data exactly like max+1 would.
type CounterRepository struct {
	db       *mongo.Database
	counters *mongo.Collection
	seeded   sync.Map
}

func NewCounterRepository(db *mongo.Database) *CounterRepository {
	return &CounterRepository{
		db:       db,
		counters: db.Collection(models.CollectionCounters),
	}
}

// Next returns the next id of the sequence
func (r *CounterRepository) Next(ctx context.Context, sequence string) (int, error) {
	src, ok := sequenceSources[sequence]
	if !ok {
		return 0, fmt.Errorf("unknown id sequence %q", sequence)
	}

	if err := r.seed(ctx, sequence, src); err != nil {
		return 0, fmt.Errorf("seed %s counter: %w", sequence, err)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("increment %s counter: %w", sequence, err)
	}
	return counter.Seq, nil
}

func (r *CounterRepository) seed(ctx context.Context, sequence string, src sequenceSource) error {
	if _, done := r.seeded.Load(sequence); done {
		return nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc bson.M
	maxID, found := 0, false
	err := r.db.Collection(src.collection).FindOne(
		ctx,
		bson.M{src.field: bson.M{"$type": "number"}},
		options.FindOne().
			SetSort(bson.D{{Key: src.field, Value: -1}}).
			SetProjection(bson.M{src.field: 1}),
	).Decode(&doc)
	switch {
	case err == mongo.ErrNoDocuments:
	case err != nil:
		return err
	default:
		maxID, found = toInt(doc[src.field])
	}

	filter := bson.M{"_id": sequence}
	update := bson.M{"$max": bson.M{"seq": seedValue(maxID, found)}}
	_, err = r.counters.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent upsert created the counter first; $max is safe to apply again
		_, err = r.counters.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return err
	}

	r.seeded.Store(sequence, true)
	return nil
}

// seedValue is the counter value before the first allocation: the current maximum id,
// or one below models.BaseID when the collection holds no ids yet
func seedValue(maxID int, found bool) int {
	if !found {
		return models.BaseID - 1
	}
	return maxID
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
