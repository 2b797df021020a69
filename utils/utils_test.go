package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
)

func TestValidatorReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.BookingRequest{
		Email:      "jane@example.com",
		SalonID:    1,
		EmployeeID: 1003,
		Service:    "Haircut",
		Date:       "2025-13-40",
		Time:       "25:00",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, apperrors.PublicMessage(err), "date")
	assert.Contains(t, apperrors.PublicMessage(err), "time")
}

func TestValidatorEmailRequiredWithoutCustomerID(t *testing.T) {
	v := NewValidator()
	req := models.BookingRequest{SalonID: 1, EmployeeID: 1003, Service: "Haircut", Date: "2025-06-01", Time: "10:00"}

	err := v.Validate(&req)
	require.Error(t, err)
	assert.Contains(t, apperrors.PublicMessage(err), "email")

	id := 1000
	req.CustomerID = &id
	assert.NoError(t, v.Validate(&req))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "anything"))
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Jane@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestSanitizePhone(t *testing.T) {
	phone, err := SanitizePhone("(555) 123-4567")
	require.NoError(t, err)
	assert.Equal(t, "+5551234567", phone)

	phone, err = SanitizePhone("")
	require.NoError(t, err)
	assert.Empty(t, phone)
}

func TestValidateImageFile(t *testing.T) {
	assert.NoError(t, ValidateFile("me.PNG", 1024))
	assert.Error(t, ValidateFile("me.exe", 1024))
	assert.Error(t, ValidateFile("me.jpg", 6*1024*1024))
}
