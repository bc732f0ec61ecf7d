package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	"github.com/jwalitptl/hospital-records/internal/validation"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type Service struct {
	repo      repository.PatientRepository
	validator validator.Validator
	log       *logger.Logger
}

type Option func(*Service)

// WithValidator replaces the struct validator run before persistence.
func WithValidator(v validator.Validator) Option {
	return func(s *Service) { s.validator = v }
}

func NewService(repo repository.PatientRepository, log *logger.Logger, opts ...Option) *Service {
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

// Create validates the raw input and stores a new patient. ageRaw must be a
// positive integer and gender, when given, one of model.Genders.
func (s *Service) Create(ctx context.Context, name, ageRaw, gender string) (int64, error) {
	patient, err := s.buildPatient(name, ageRaw, gender)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, patient)
	if err != nil {
		return 0, fmt.Errorf("failed to create patient: %w", err)
	}

	s.log.Info("patient created", "patient_id", id)
	return id, nil
}

// Update replaces every field of patient id. It reports false when no
// patient has that id.
func (s *Service) Update(ctx context.Context, id int64, name, ageRaw, gender string) (bool, error) {
	patient, err := s.buildPatient(name, ageRaw, gender)
	if err != nil {
		return false, err
	}
	patient.ID = id

	ok, err := s.repo.Update(ctx, patient)
	if err != nil {
		return false, fmt.Errorf("failed to update patient: %w", err)
	}
	if ok {
		s.log.Info("patient updated", "patient_id", id)
	}
	return ok, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Search returns patients whose name contains text as typed, ignoring case.
func (s *Service) Search(ctx context.Context, text string) ([]*model.Patient, error) {
	patients, err := s.repo.SearchByName(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	if ok {
		s.log.Info("patient deleted", "patient_id", id)
	}
	return ok, nil
}

func (s *Service) buildPatient(name, ageRaw, gender string) (*model.Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}

	age, err := validation.ParseStrictInteger(ageRaw)
	if err != nil {
		return nil, apperrors.NewValidation("age must be a whole number", err)
	}
	if age <= 0 {
		return nil, apperrors.Validation("age must be greater than 0")
	}
	if age > model.MaxAge {
		return nil, apperrors.Validation(fmt.Sprintf("age must not exceed %d", model.MaxAge))
	}

	patient := &model.Patient{Name: name, Age: int(age)}

	gender = strings.TrimSpace(gender)
	if gender != "" {
		if !model.Gender(gender).Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("gender must be one of %s", joinGenders()))
		}
		patient.Gender = &gender
	}

	if err := s.validator.Validate(patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func joinGenders() string {
	names := make([]string, len(model.Genders))
	for i, g := range model.Genders {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
