package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-records/internal/database"
	"github.com/jwalitptl/hospital-records/internal/repository"
)

type patientRepository struct {
	db *database.Provider
}

type doctorRepository struct {
	db *database.Provider
}

type appointmentRepository struct {
	db *database.Provider
}

func NewPatientRepository(db *database.Provider) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewDoctorRepository(db *database.Provider) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func NewAppointmentRepository(db *database.Provider) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// containsPattern builds an ILIKE pattern matching text anywhere, with the
// LIKE metacharacters in text matched literally.
func containsPattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
	return "%" + escaped + "%"
}

func affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
