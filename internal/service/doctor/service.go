package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type Service struct {
	repo      repository.DoctorRepository
	validator validator.Validator
	log       *logger.Logger
}

type Option func(*Service)

func WithValidator(v validator.Validator) Option {
	return func(s *Service) { s.validator = v }
}

func NewService(repo repository.DoctorRepository, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		repo:      repo,
		validator: validator.New(),
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, name, specialty string) (int64, error) {
	doctor, err := s.buildDoctor(name, specialty)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, doctor)
	if err != nil {
		return 0, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.log.Info("doctor created", "doctor_id", id)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int64, name, specialty string) (bool, error) {
	doctor, err := s.buildDoctor(name, specialty)
	if err != nil {
		return false, err
	}
	doctor.ID = id

	ok, err := s.repo.Update(ctx, doctor)
	if err != nil {
		return false, fmt.Errorf("failed to update doctor: %w", err)
	}
	if ok {
		s.log.Info("doctor updated", "doctor_id", id)
	}
	return ok, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// Search returns doctors whose specialty contains text as typed, ignoring case.
func (s *Service) Search(ctx context.Context, text string) ([]*model.Doctor, error) {
	doctors, err := s.repo.SearchBySpecialty(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

// Delete removes the doctor. Doctors that still have appointments are
// protected by the store and the constraint error is returned unchanged.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete doctor: %w", err)
	}
	if ok {
		s.log.Info("doctor deleted", "doctor_id", id)
	}
	return ok, nil
}

func (s *Service) buildDoctor(name, specialty string) (*model.Doctor, error) {
	doctor := &model.Doctor{
		Name:      strings.TrimSpace(name),
		Specialty: strings.TrimSpace(specialty),
	}
	if doctor.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if doctor.Specialty == "" {
		return nil, apperrors.Validation("specialty is required")
	}
	if err := s.validator.Validate(doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}
