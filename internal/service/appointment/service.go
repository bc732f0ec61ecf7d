package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
	"github.com/jwalitptl/hospital-records/internal/validation"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type Service struct {
	repo      repository.AppointmentRepository
	validator validator.Validator
	log       *logger.Logger
	now       func() time.Time
	location  *time.Location
}

type Option func(*Service)

// WithClock sets the source of "now" used to reject appointments in the past.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone typed dates are interpreted in. Defaults to local time.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

func WithValidator(v validator.Validator) Option {
	return func(s *Service) { s.validator = v }
}

func NewService(repo repository.AppointmentRepository, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		repo:      repo,
		validator: validator.New(),
		log:       log,
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule books a patient with a doctor. Both ids must be positive integers
// and scheduledRaw must parse to a time strictly in the future. Whether the
// patient and doctor exist is left to the store.
func (s *Service) Schedule(ctx context.Context, patientIDRaw, doctorIDRaw, scheduledRaw, notes string) (int64, error) {
	patientID, err := parseID("patient id", patientIDRaw)
	if err != nil {
		return 0, err
	}
	doctorID, err := parseID("doctor id", doctorIDRaw)
	if err != nil {
		return 0, err
	}

	scheduledAt, err := validation.ParseFlexibleDateTimeIn(scheduledRaw, s.location)
	if err != nil {
		return 0, apperrors.NewValidation("invalid appointment date", err)
	}
	if !scheduledAt.After(s.now()) {
		return 0, apperrors.Validation("appointment must be scheduled in the future")
	}

	appointment := &model.Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: scheduledAt,
	}
	if notes = strings.TrimSpace(notes); notes != "" {
		appointment.Notes = &notes
	}
	if err := s.validator.Validate(appointment); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, appointment)
	if err != nil {
		return 0, fmt.Errorf("failed to schedule appointment: %w", err)
	}

	s.log.Info("appointment scheduled",
		"appointment_id", id, "patient_id", patientID, "doctor_id", doctorID,
		"scheduled_at", scheduledAt.Format(time.RFC3339))
	return id, nil
}

// ListUpcoming returns appointments from now on, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appointments, nil
}

// ListAll returns every appointment, latest first.
func (s *Service) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListDetailed(ctx context.Context) ([]*model.AppointmentDetail, error) {
	details, err := s.repo.ListDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment details: %w", err)
	}
	return details, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// Cancel deletes the appointment idRaw names and reports whether it existed.
func (s *Service) Cancel(ctx context.Context, idRaw string) (bool, error) {
	id, err := parseID("appointment id", idRaw)
	if err != nil {
		return false, err
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if ok {
		s.log.Info("appointment cancelled", "appointment_id", id)
	}
	return ok, nil
}

func parseID(field, raw string) (int64, error) {
	id, err := validation.ParseStrictInteger(raw)
	if err != nil {
		return 0, apperrors.NewValidation(field+" must be a whole number", err)
	}
	if id <= 0 {
		return 0, apperrors.Validation(field + " must be greater than 0")
	}
	return id, nil
}
