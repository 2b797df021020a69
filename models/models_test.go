package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentCost(t *testing.T) {
	assert.Equal(t, 25.0, PaymentCost(50, PaidOption("half")))
	assert.Equal(t, 50.0, PaymentCost(50, PaidOption("full")))
	// anything that is not "half" is charged in full
	assert.Equal(t, 50.0, PaymentCost(50, PaidOption("")))
	assert.Equal(t, PaymentFull, PaidOption("HALF"))
}

func TestFindSpecialtyIsExact(t *testing.T) {
	e := &Employee{Specialties: []Specialty{{Name: "Haircut", Duration: 30, Price: 50}}}

	sp, ok := e.FindSpecialty("Haircut")
	assert.True(t, ok)
	assert.Equal(t, 30, sp.Duration)

	_, ok = e.FindSpecialty("haircut")
	assert.False(t, ok)
}

func TestSessionUserOwnsSalon(t *testing.T) {
	owner := SessionUser{ID: 7, Type: UserTypeBusiness}
	assert.True(t, owner.OwnsSalon(7))
	assert.False(t, owner.OwnsSalon(8))

	stylist := SessionUser{ID: 42, Type: UserTypeEmployee, SalonIDs: []int{7, 9}}
	assert.True(t, stylist.OwnsSalon(9))
	assert.False(t, stylist.OwnsSalon(42))

	assert.Equal(t, "employee:42", stylist.Key())
}
