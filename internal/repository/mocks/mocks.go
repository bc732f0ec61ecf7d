// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
)

var (
	_ repository.PatientRepository     = (*PatientRepository)(nil)
	_ repository.DoctorRepository      = (*DoctorRepository)(nil)
	_ repository.AppointmentRepository = (*AppointmentRepository)(nil)
)

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) (int64, error) {
	args := m.Called(ctx, patient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	args := m.Called(ctx)
	patients, _ := args.Get(0).([]*model.Patient)
	return patients, args.Error(1)
}

func (m *PatientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	args := m.Called(ctx, id)
	patient, _ := args.Get(0).(*model.Patient)
	return patient, args.Error(1)
}

func (m *PatientRepository) SearchByName(ctx context.Context, text string) ([]*model.Patient, error) {
	args := m.Called(ctx, text)
	patients, _ := args.Get(0).([]*model.Patient)
	return patients, args.Error(1)
}

func (m *PatientRepository) Update(ctx context.Context, patient *model.Patient) (bool, error) {
	args := m.Called(ctx, patient)
	return args.Bool(0), args.Error(1)
}

func (m *PatientRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) (int64, error) {
	args := m.Called(ctx, doctor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DoctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	args := m.Called(ctx)
	doctors, _ := args.Get(0).([]*model.Doctor)
	return doctors, args.Error(1)
}

func (m *DoctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	doctor, _ := args.Get(0).(*model.Doctor)
	return doctor, args.Error(1)
}

func (m *DoctorRepository) SearchBySpecialty(ctx context.Context, text string) ([]*model.Doctor, error) {
	args := m.Called(ctx, text)
	doctors, _ := args.Get(0).([]*model.Doctor)
	return doctors, args.Error(1)
}

func (m *DoctorRepository) Update(ctx context.Context, doctor *model.Doctor) (bool, error) {
	args := m.Called(ctx, doctor)
	return args.Bool(0), args.Error(1)
}

func (m *DoctorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) (int64, error) {
	args := m.Called(ctx, appointment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AppointmentRepository) List(ctx context.Context, upcomingOnly bool) ([]*model.Appointment, error) {
	args := m.Called(ctx, upcomingOnly)
	appointments, _ := args.Get(0).([]*model.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	appointment, _ := args.Get(0).(*model.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentRepository) ListDetailed(ctx context.Context) ([]*model.AppointmentDetail, error) {
	args := m.Called(ctx)
	details, _ := args.Get(0).([]*model.AppointmentDetail)
	return details, args.Error(1)
}

func (m *AppointmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
