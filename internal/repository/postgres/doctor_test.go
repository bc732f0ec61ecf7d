package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/model"
)

var doctorRowColumns = []string{"id", "name", "specialty", "created_at"}

func TestDoctorRepository_Create(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewDoctorRepository(p)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO doctors (name, specialty)")).
		WithArgs("House", "Diagnostics").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
	mock.ExpectCommit()
	mock.ExpectClose()

	doctor := &model.Doctor{Name: "House", Specialty: "Diagnostics"}
	id, err := repo.Create(context.Background(), doctor)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, int64(2), doctor.ID)
	assert.False(t, doctor.CreatedAt.IsZero())
}

func TestDoctorRepository_List(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewDoctorRepository(p)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(doctorRowColumns).
			AddRow(1, "Grey", "Surgery", time.Now()).
			AddRow(2, "House", "Diagnostics", time.Now()))
	mock.ExpectClose()

	doctors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Surgery", doctors[0].Specialty)
}

func TestDoctorRepository_GetByIDMissing(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewDoctorRepository(p)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors WHERE id = $1")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows(doctorRowColumns))
	mock.ExpectClose()

	doctor, err := repo.GetByID(context.Background(), 12)
	assert.NoError(t, err)
	assert.Nil(t, doctor)
}

func TestDoctorRepository_SearchBySpecialty(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewDoctorRepository(p)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors WHERE specialty ILIKE $1")).
		WithArgs("%cardio%").
		WillReturnRows(sqlmock.NewRows(doctorRowColumns).AddRow(3, "Yang", "Cardiology", time.Now()))
	mock.ExpectClose()

	doctors, err := repo.SearchBySpecialty(context.Background(), "cardio")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Yang", doctors[0].Name)
}

func TestDoctorRepository_UpdateMissing(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewDoctorRepository(p)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE doctors SET name = $1, specialty = $2 WHERE id = $3")).
		WithArgs("Grey", "Surgery", 40).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectClose()

	ok, err := repo.Update(context.Background(), &model.Doctor{Base: model.Base{ID: 40}, Name: "Grey", Specialty: "Surgery"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDoctorRepository_Delete(t *testing.T) {
	p, mock := newTestProvider(t)
	repo := NewDoctorRepository(p)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM doctors WHERE id = $1")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectClose()

	ok, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)
}
