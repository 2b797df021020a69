package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
)

func newReviewFixture() (*fixture, *ReviewService) {
	f := newFixture()
	f.businesses.docs = []models.Business{{SalonID: 7, BusinessName: "Shear Joy", Email: "owner@shearjoy.test"}}
	for id := 1000; id < 1005; id++ {
		f.customers.docs = append(f.customers.docs, models.Customer{CustomerID: id, Name: "C", Email: "c" + string(rune('a'+id-1000)) + "@x.test"})
	}
	return f, NewReviewService(f.stores(), f.notifier)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]int{4}))
	assert.InDelta(t, 3.6666666, AverageRating([]int{5, 4, 2}), 1e-6)
}

func TestCreateReviewRecomputesExactMean(t *testing.T) {
	f, svc := newReviewFixture()
	ctx := context.Background()

	ratings := []int{5, 4, 2, 1}
	var last float64
	for i, r := range ratings {
		_, avg, err := svc.Create(ctx, 7, models.ReviewRequest{Rating: r, Review: "Nice place", CustomerID: 1000 + i})
		require.NoError(t, err)
		last = avg
	}

	assert.Equal(t, 3.0, last)
	assert.Equal(t, 3.0, f.businesses.rating(7))
	assert.Equal(t, len(ratings), f.notifier.count())
	assert.Equal(t, "business:7", f.notifier.messages[0].Recipient)
}

func TestSecondReviewIsRejected(t *testing.T) {
	f, svc := newReviewFixture()
	ctx := context.Background()

	_, _, err := svc.Create(ctx, 7, models.ReviewRequest{Rating: 5, Review: "Great", CustomerID: 1000})
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, 7, models.ReviewRequest{Rating: 1, Review: "Changed my mind", CustomerID: 1000})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	assert.Len(t, f.reviews.docs, 1)
	assert.Equal(t, 5.0, f.businesses.rating(7))
}

func TestCreateReviewValidation(t *testing.T) {
	_, svc := newReviewFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.ReviewRequest
		msg  string
	}{
		{"missing rating", models.ReviewRequest{Review: "x", CustomerID: 1000}, "Missing required fields"},
		{"missing text", models.ReviewRequest{Rating: 3, Review: "  ", CustomerID: 1000}, "Missing required fields"},
		{"missing customer", models.ReviewRequest{Rating: 3, Review: "x"}, "Missing required fields"},
		{"rating too high", models.ReviewRequest{Rating: 6, Review: "x", CustomerID: 1000}, "Rating must be between 1 and 5"},
		{"rating too low", models.ReviewRequest{Rating: -1, Review: "x", CustomerID: 1000}, "Rating must be between 1 and 5"},
		{"unknown customer", models.ReviewRequest{Rating: 3, Review: "x", CustomerID: 9999}, "Customer not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Create(ctx, 7, tt.req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
			assert.Equal(t, tt.msg, apperrors.PublicMessage(err))
		})
	}
}
