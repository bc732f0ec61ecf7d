package repository

import (
	"context"

	"github.com/jwalitptl/hospital-records/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository handles patient persistence
	PatientRepository interface {
		// Create inserts the patient and returns the id the store assigned.
		Create(ctx context.Context, patient *model.Patient) (int64, error)
		// List returns every patient ordered by id.
		List(ctx context.Context) ([]*model.Patient, error)
		// GetByID returns nil, nil when no patient has the id.
		GetByID(ctx context.Context, id int64) (*model.Patient, error)
		// SearchByName matches name case-insensitively on a substring.
		SearchByName(ctx context.Context, text string) ([]*model.Patient, error)
		// Update reports false when no patient has the id.
		Update(ctx context.Context, patient *model.Patient) (bool, error)
		Delete(ctx context.Context, id int64) (bool, error)
	}

	// DoctorRepository handles doctor persistence
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) (int64, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		GetByID(ctx context.Context, id int64) (*model.Doctor, error)
		// SearchBySpecialty matches specialty case-insensitively on a substring.
		SearchBySpecialty(ctx context.Context, text string) ([]*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) (bool, error)
		Delete(ctx context.Context, id int64) (bool, error)
	}

	// AppointmentRepository handles appointment persistence. Appointments are
	// never updated, only created and deleted.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) (int64, error)
		// List returns upcoming appointments soonest first, or the whole
		// history latest first.
		List(ctx context.Context, upcomingOnly bool) ([]*model.Appointment, error)
		GetByID(ctx context.Context, id int64) (*model.Appointment, error)
		// ListDetailed joins patient and doctor names, soonest first.
		ListDetailed(ctx context.Context) ([]*model.AppointmentDetail, error)
		Delete(ctx context.Context, id int64) (bool, error)
	}
)
