package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grizzway/SalonSync-sub000/controllers"
	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type stubBusinesses struct {
	services.BusinessStore
	query string
}

func (s *stubBusinesses) List(_ context.Context, q string) ([]models.Business, error) {
	s.query = q
	if q == "none" {
		return nil, nil
	}
	return []models.Business{{SalonID: 7, BusinessName: "Studio Seven", Password: "bcrypt-hash"}}, nil
}

func (s *stubBusinesses) FindByID(_ context.Context, id int) (*models.Business, error) {
	if id != 7 {
		return nil, nil
	}
	return &models.Business{SalonID: 7, BusinessName: "Studio Seven", Password: "bcrypt-hash"}, nil
}

func newBusinessServer(store *stubBusinesses) *echo.Echo {
	bc := controllers.NewBusinessController(services.NewBusinessService(services.Stores{Businesses: store}))
	e := echo.New()
	e.HTTPErrorHandler = middleware.HTTPErrorHandler
	e.GET("/salons", bc.ListBusinesses)
	e.GET("/salons/:salonId", bc.GetBusiness)
	return e
}

func TestListBusinesses(t *testing.T) {
	store := &stubBusinesses{}
	e := newBusinessServer(store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salons?q=+studio+", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "studio", store.query)
	assert.NotContains(t, rec.Body.String(), "bcrypt-hash")

	var resp struct {
		Data []models.Business `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 7, resp.Data[0].SalonID)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salons?q=none", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestGetBusiness(t *testing.T) {
	e := newBusinessServer(&stubBusinesses{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salons/7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Studio Seven")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salons/8", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salons/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
