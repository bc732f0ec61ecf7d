package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-records/internal/model"
)

const appointmentColumns = `id, patient_id, doctor_id, scheduled_at, notes, created_at`

// Create inserts the appointment. A patient or doctor id with no matching
// row is rejected by the store's foreign keys, and that error is returned
// as is.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, scheduled_at, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	var (
		id        int64
		createdAt time.Time
	)
	err := r.db.WithTx(ctx, "appointment.create", func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			appointment.PatientID,
			appointment.DoctorID,
			appointment.ScheduledAt,
			appointment.Notes,
		).Scan(&id, &createdAt)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}

	appointment.ID = id
	appointment.CreatedAt = createdAt
	return id, nil
}

func (r *appointmentRepository) List(ctx context.Context, upcomingOnly bool) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY scheduled_at DESC, id DESC`
	if upcomingOnly {
		query = `
			SELECT ` + appointmentColumns + `
			FROM appointments
			WHERE scheduled_at >= NOW()
			ORDER BY scheduled_at ASC, id ASC
		`
	}

	var appointments []*model.Appointment
	err := r.db.WithConn(ctx, "appointment.list", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &appointments, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var appointment model.Appointment
	err := r.db.WithConn(ctx, "appointment.get", func(db *sqlx.DB) error {
		return db.GetContext(ctx, &appointment, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListDetailed(ctx context.Context) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id AS appointment_id,
			   p.id AS patient_id, p.name AS patient_name,
			   d.id AS doctor_id, d.name AS doctor_name,
			   a.scheduled_at, a.notes
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		ORDER BY a.scheduled_at ASC, a.id ASC
	`
	var details []*model.AppointmentDetail
	err := r.db.WithConn(ctx, "appointment.list_detailed", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &details, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment details: %w", err)
	}
	return details, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM appointments WHERE id = $1`
	var found bool
	err := r.db.WithTx(ctx, "appointment.delete", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		found, err = affected(result)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete appointment: %w", err)
	}
	return found, nil
}
