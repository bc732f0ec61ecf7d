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

const patientColumns = `id, name, age, gender, created_at`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) (int64, error) {
	query := `
		INSERT INTO patients (name, age, gender)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	var (
		id        int64
		createdAt time.Time
	)
	err := r.db.WithTx(ctx, "patient.create", func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query, patient.Name, patient.Age, patient.Gender).Scan(&id, &createdAt)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create patient: %w", err)
	}

	patient.ID = id
	patient.CreatedAt = createdAt
	return id, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY id`
	var patients []*model.Patient
	err := r.db.WithConn(ctx, "patient.list", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &patients, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.WithConn(ctx, "patient.get", func(db *sqlx.DB) error {
		return db.GetContext(ctx, &patient, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, text string) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE name ILIKE $1 ORDER BY id`
	var patients []*model.Patient
	err := r.db.WithConn(ctx, "patient.search", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &patients, query, containsPattern(text))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) (bool, error) {
	query := `UPDATE patients SET name = $1, age = $2, gender = $3 WHERE id = $4`
	var found bool
	err := r.db.WithTx(ctx, "patient.update", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, patient.Name, patient.Age, patient.Gender, patient.ID)
		if err != nil {
			return err
		}
		found, err = affected(result)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to update patient: %w", err)
	}
	return found, nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM patients WHERE id = $1`
	var found bool
	err := r.db.WithTx(ctx, "patient.delete", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		found, err = affected(result)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	return found, nil
}
