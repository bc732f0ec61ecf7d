package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGender_Valid(t *testing.T) {
	for _, g := range []string{"M", "F", "Other", "O"} {
		assert.True(t, Gender(g).Valid(), g)
	}
	for _, g := range []string{"X", "m", "other", ""} {
		assert.False(t, Gender(g).Valid(), g)
	}
}

func TestBase_IsPersisted(t *testing.T) {
	assert.False(t, Patient{}.IsPersisted())
	assert.True(t, Patient{Base: Base{ID: 4}}.IsPersisted())
}

func TestStringers(t *testing.T) {
	gender := "F"
	p := &Patient{Base: Base{ID: 1}, Name: "Ana", Age: 30, Gender: &gender}
	assert.Equal(t, "Patient(id=1, name=Ana, age=30, gender=F, created_at=-)", p.String())

	at := time.Date(2030, 1, 15, 14, 30, 0, 0, time.Local)
	a := &Appointment{Base: Base{ID: 2}, PatientID: 1, DoctorID: 3, ScheduledAt: at}
	assert.Equal(t, "Appointment(id=2, patient_id=1, doctor_id=3, scheduled_at=2030-01-15 14:30, notes=-)", a.String())
}
