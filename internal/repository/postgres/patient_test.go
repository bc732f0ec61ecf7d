package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/model"
)

var patientRowColumns = []string{"id", "name", "age", "gender", "created_at"}

func strPtr(s string) *string { return &s }

func TestPatientRepository_Create(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO patients (name, age, gender)")).
		WithArgs("Ana", 30, "F").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))
	mock.ExpectCommit()
	mock.ExpectClose()

	patient := &model.Patient{Name: "Ana", Age: 30, Gender: strPtr("F")}
	id, err := repo.Create(context.Background(), patient)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), patient.ID)
	assert.Equal(t, created, patient.CreatedAt)
}

func TestPatientRepository_CreateNullGender(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO patients")).
		WithArgs("Bo", 4, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(8, time.Now()))
	mock.ExpectCommit()
	mock.ExpectClose()

	id, err := repo.Create(context.Background(), &model.Patient{Name: "Bo", Age: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestPatientRepository_CreateFailureLeavesEntityUnpersisted(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO patients")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()
	mock.ExpectClose()

	patient := &model.Patient{Name: "Ana", Age: 30}
	_, err := repo.Create(context.Background(), patient)

	assert.ErrorContains(t, err, "failed to create patient")
	assert.False(t, patient.IsPersisted())
}

func TestPatientRepository_List(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, age, gender, created_at FROM patients ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(patientRowColumns).
			AddRow(1, "Ana", 30, "F", now).
			AddRow(2, "Bo", 4, nil, now))
	mock.ExpectClose()

	patients, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, int64(1), patients[0].ID)
	assert.Equal(t, "F", *patients[0].Gender)
	assert.Nil(t, patients[1].Gender)
}

func TestPatientRepository_GetByID(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients WHERE id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(patientRowColumns).AddRow(3, "Cy", 51, "M", now))
	mock.ExpectClose()

	patient, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, int64(3), patient.ID)
	assert.Equal(t, "Cy", patient.Name)
	assert.Equal(t, 51, patient.Age)
	assert.Equal(t, now, patient.CreatedAt)
}

func TestPatientRepository_GetByIDMissing(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients WHERE id = $1")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(patientRowColumns))
	mock.ExpectClose()

	patient, err := repo.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, patient)
}

func TestPatientRepository_SearchByName(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewPatientRepository(p)

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients WHERE name ILIKE $1")).
		WithArgs("%an%").
		WillReturnRows(sqlmock.NewRows(patientRowColumns).
			AddRow(1, "Ana", 30, "F", time.Now()).
			AddRow(4, "Daniel", 40, "M", time.Now()))
	mock.ExpectClose()

	patients, err := repo.SearchByName(context.Background(), "an")
	require.NoError(t, err)
	assert.Len(t, patients, 2)
}

func TestPatientRepository_Update(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing", affected: 1, want: true},
		{name: "missing", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mock := newTestProvider(t)
			repo := NewPatientRepository(p)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("UPDATE patients SET name = $1, age = $2, gender = $3 WHERE id = $4")).
				WithArgs("Ana", 31, nil, 5).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()
			mock.ExpectClose()

			ok, err := repo.Update(context.Background(), &model.Patient{Base: model.Base{ID: 5}, Name: "Ana", Age: 31})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestPatientRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing", affected: 1, want: true},
		{name: "missing", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mock := newTestProvider(t)
			repo := NewPatientRepository(p)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patients WHERE id = $1")).
				WithArgs(5).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()
			mock.ExpectClose()

			ok, err := repo.Delete(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
