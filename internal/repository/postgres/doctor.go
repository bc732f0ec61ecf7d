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

const doctorColumns = `id, name, specialty, created_at`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) (int64, error) {
	query := `
		INSERT INTO doctors (name, specialty)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	var (
		id        int64
		createdAt time.Time
	)
	err := r.db.WithTx(ctx, "doctor.create", func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query, doctor.Name, doctor.Specialty).Scan(&id, &createdAt)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create doctor: %w", err)
	}

	doctor.ID = id
	doctor.CreatedAt = createdAt
	return id, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY id`
	var doctors []*model.Doctor
	err := r.db.WithConn(ctx, "doctor.list", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &doctors, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`
	var doctor model.Doctor
	err := r.db.WithConn(ctx, "doctor.get", func(db *sqlx.DB) error {
		return db.GetContext(ctx, &doctor, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) SearchBySpecialty(ctx context.Context, text string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE specialty ILIKE $1 ORDER BY id`
	var doctors []*model.Doctor
	err := r.db.WithConn(ctx, "doctor.search", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &doctors, query, containsPattern(text))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) (bool, error) {
	query := `UPDATE doctors SET name = $1, specialty = $2 WHERE id = $3`
	var found bool
	err := r.db.WithTx(ctx, "doctor.update", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, doctor.Name, doctor.Specialty, doctor.ID)
		if err != nil {
			return err
		}
		found, err = affected(result)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to update doctor: %w", err)
	}
	return found, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM doctors WHERE id = $1`
	var found bool
	err := r.db.WithTx(ctx, "doctor.delete", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		found, err = affected(result)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete doctor: %w", err)
	}
	return found, nil
}
