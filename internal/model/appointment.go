package model

import (
	"fmt"
	"time"
)

const displayTimeLayout = "2006-01-02 15:04"

type Appointment struct {
	Base
	PatientID   int64     `db:"patient_id" json:"patient_id" validate:"gt=0"`
	DoctorID    int64     `db:"doctor_id" json:"doctor_id" validate:"gt=0"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at" validate:"required"`
	Notes       *string   `db:"notes" json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (a *Appointment) String() string {
	return fmt.Sprintf("Appointment(id=%d, patient_id=%d, doctor_id=%d, scheduled_at=%s, notes=%s)",
		a.ID, a.PatientID, a.DoctorID, formatTime(a.ScheduledAt), derefOr(a.Notes, "-"))
}

// AppointmentDetail is an appointment joined with its patient and doctor.
type AppointmentDetail struct {
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	DoctorID      int64     `db:"doctor_id" json:"doctor_id"`
	DoctorName    string    `db:"doctor_name" json:"doctor_name"`
	ScheduledAt   time.Time `db:"scheduled_at" json:"scheduled_at"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
}

func (d *AppointmentDetail) String() string {
	return fmt.Sprintf("#%d %s | patient %d %s | doctor %d %s | %s",
		d.AppointmentID, formatTime(d.ScheduledAt), d.PatientID, d.PatientName,
		d.DoctorID, d.DoctorName, derefOr(d.Notes, "-"))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(displayTimeLayout)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
