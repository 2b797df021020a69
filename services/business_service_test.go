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

func TestBusinessGetStripsPassword(t *testing.T) {
	f := newFixture()
	f.businesses.docs = []models.Business{{SalonID: 7, BusinessName: "Shear Joy", Password: "hash"}}
	svc := NewBusinessService(f.stores())

	business, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, business.Password)

	_, err = svc.Get(context.Background(), 8)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}

func TestBusinessListFiltersByName(t *testing.T) {
	f := newFixture()
	f.businesses.docs = []models.Business{{SalonID: 7, BusinessName: "Shear Joy"}, {SalonID: 8, BusinessName: "Curl Up"}}
	svc := NewBusinessService(f.stores())

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := svc.List(context.Background(), "curl")
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, 8, some[0].SalonID)
}

func TestBusinessUpdate(t *testing.T) {
	f := newFixture()
	f.businesses.docs = []models.Business{{SalonID: 7, BusinessName: "Shear Joy"}}
	svc := NewBusinessService(f.stores())
	ctx := context.Background()

	name := "Shear Bliss"
	updated, err := svc.Update(ctx, owner7, 7, models.BusinessUpdateRequest{
		BusinessName:  &name,
		BusinessHours: map[string]models.Hours{"Saturday": {Open: "10:00", Close: "14:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Shear Bliss", updated.BusinessName)
	assert.Contains(t, updated.BusinessHours, "saturday")

	bad := map[string]models.Hours{"monday": {Open: "18:00", Close: "08:00"}}
	_, err = svc.Update(ctx, owner7, 7, models.BusinessUpdateRequest{BusinessHours: bad})
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))

	_, err = svc.Update(ctx, &models.SessionUser{ID: 1000, Type: models.UserTypeCustomer}, 7, models.BusinessUpdateRequest{BusinessName: &name})
	assert.Equal(t, http.StatusForbidden, apperrors.HTTPStatus(err))
}
