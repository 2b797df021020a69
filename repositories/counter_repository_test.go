package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Grizzway/SalonSync-sub000/models"
)

func TestSeedValue(t *testing.T) {
	// the first allocation is seed+1
	assert.Equal(t, models.BaseID, seedValue(0, false)+1)
	assert.Equal(t, 1006, seedValue(1005, true)+1)
	assert.Equal(t, 6, seedValue(5, true)+1)
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in     interface{}
		want   int
		wantOK bool
	}{
		{int32(1001), 1001, true},
		{int64(1002), 1002, true},
		{float64(1003), 1003, true},
		{"1004", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := toInt(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.wantOK, ok)
	}
}

func TestEverySequenceHasASource(t *testing.T) {
	for _, seq := range []string{
		models.SequenceCustomer,
		models.SequenceEmployee,
		models.SequenceAppointment,
		models.SequenceSalon,
	} {
		_, ok := sequenceSources[seq]
		assert.True(t, ok, seq)
	}
}

func TestJoinPipeline(t *testing.T) {
	pipeline := joinPipeline(bson.M{"customerId": 1000},
		lookup{models.CollectionEmployee, "employeeId", "employeeId", "name", "employeeName"},
	)

	// match, lookup, addFields, project, sort
	assert.Len(t, pipeline, 5)
	assert.Equal(t, bson.M{"customerId": 1000}, pipeline[0]["$match"])
	assert.Equal(t, bson.M{"_employeeName": 0}, pipeline[3]["$project"])

	l := pipeline[1]["$lookup"].(bson.M)
	assert.Equal(t, models.CollectionEmployee, l["from"])
}
