package patients

import (
	"time"

	"github.com/glucodiario/diario/errors"
	"go.uber.org/zap"
)

// Monitor receives clinical rule checks after mutations. The monitoring
// engine implements it; the indirection keeps this package free of a
// dependency on the notification plumbing.
type Monitor interface {
	MeasurementRecorded(patient *Patient, measurement Measurement)
	CheckAdherence(patient *Patient, today time.Time)
}

type Service interface {
	AddMeasurement(patient *Patient, measurement Measurement) error
	RemoveMeasurement(patient *Patient, measurement Measurement) error
	AddIntake(patient *Patient, intake Intake) error
	RemoveIntake(patient *Patient, intake Intake) error
	AddTherapy(patient *Patient, therapy *Therapy) error
	SetTherapyStatus(patient *Patient, therapy *Therapy, status TherapyStatus) error
	AddClinicalEvent(patient *Patient, event ClinicalEvent) error
	AddConcomitantTherapy(patient *Patient, therapy ConcomitantTherapy) error
	RemoveConcomitantTherapy(patient *Patient, therapy ConcomitantTherapy) error
	UpdateClinicalChart(patient *Patient, chart ClinicalChart) error
	ActiveDrugs(patient *Patient) []string
}

type service struct {
	repo    *Repository
	monitor Monitor
	logger  *zap.SugaredLogger
	now     func() time.Time
}

var _ Service = &service{}

func NewService(repo *Repository, monitor Monitor, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:    repo,
		monitor: monitor,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// AddMeasurement rejects a second reading for the same date and meal slot,
// persists the patient's measurements and reports the new reading to the
// monitoring engine.
func (s *service) AddMeasurement(patient *Patient, measurement Measurement) error {
	if patient.HasMeasurement(measurement.Date, measurement.Meal) {
		return errors.DuplicateMeasurement
	}

	patient.Measurements = append(patient.Measurements, measurement)
	if err := s.repo.SaveMeasurements([]*Patient{patient}); err != nil {
		return err
	}

	s.monitor.MeasurementRecorded(patient, measurement)
	return nil
}

func (s *service) RemoveMeasurement(patient *Patient, measurement Measurement) error {
	for i, m := range patient.Measurements {
		if m.Meal == measurement.Meal && SameDay(m.Date, measurement.Date) && m.Value == measurement.Value {
			patient.Measurements = append(patient.Measurements[:i], patient.Measurements[i+1:]...)
			return s.repo.SaveMeasurements([]*Patient{patient})
		}
	}
	return errors.NotFound
}

// AddIntake refuses drugs without an active therapy covering today, persists
// the patient's intakes and re-runs the adherence checks.
func (s *service) AddIntake(patient *Patient, intake Intake) error {
	today := s.now()
	if !s.hasActiveTherapyFor(patient, intake.Drug, today) {
		return errors.TherapyNotActive
	}

	patient.Intakes = append(patient.Intakes, intake)
	if err := s.repo.SaveIntakes([]*Patient{patient}); err != nil {
		return err
	}

	s.monitor.CheckAdherence(patient, today)
	return nil
}

func (s *service) RemoveIntake(patient *Patient, intake Intake) error {
	for i, in := range patient.Intakes {
		if in.Drug == intake.Drug && SameDay(in.Date, intake.Date) &&
			in.Time.Equal(intake.Time) && in.Quantity == intake.Quantity {
			patient.Intakes = append(patient.Intakes[:i], patient.Intakes[i+1:]...)
			return s.repo.SaveIntakes([]*Patient{patient})
		}
	}
	return errors.NotFound
}

func (s *service) AddTherapy(patient *Patient, therapy *Therapy) error {
	patient.Therapies = append(patient.Therapies, therapy)
	return s.repo.SaveTherapies([]*Patient{patient})
}

func (s *service) SetTherapyStatus(patient *Patient, therapy *Therapy, status TherapyStatus) error {
	if err := therapy.SetStatus(status, s.now()); err != nil {
		return err
	}
	return s.repo.SaveTherapies([]*Patient{patient})
}

// AddClinicalEvent defaults the date and time to now when unset, matching how
// events are recorded at the moment they happen.
func (s *service) AddClinicalEvent(patient *Patient, event ClinicalEvent) error {
	if event.Date.IsZero() {
		now := s.now()
		event.Date = now
		event.Time = now.Truncate(time.Minute)
	}

	patient.ClinicalEvents = append(patient.ClinicalEvents, event)
	return s.repo.SaveClinicalEvents([]*Patient{patient})
}

func (s *service) AddConcomitantTherapy(patient *Patient, therapy ConcomitantTherapy) error {
	patient.ConcomitantTherapies = append(patient.ConcomitantTherapies, therapy)
	return s.repo.SaveConcomitantTherapies([]*Patient{patient})
}

func (s *service) RemoveConcomitantTherapy(patient *Patient, therapy ConcomitantTherapy) error {
	for i, t := range patient.ConcomitantTherapies {
		if t == therapy {
			patient.ConcomitantTherapies = append(patient.ConcomitantTherapies[:i], patient.ConcomitantTherapies[i+1:]...)
			return s.repo.SaveConcomitantTherapies([]*Patient{patient})
		}
	}
	return errors.NotFound
}

func (s *service) UpdateClinicalChart(patient *Patient, chart ClinicalChart) error {
	patient.Chart = &chart
	return s.repo.SaveClinicalCharts([]*Patient{patient})
}

// ActiveDrugs lists the distinct drugs the patient may log intakes for today.
func (s *service) ActiveDrugs(patient *Patient) []string {
	today := s.now()
	var drugs []string
	seen := map[string]bool{}
	for _, therapy := range patient.Therapies {
		if therapy.IsActive(today) && !seen[therapy.Drug] {
			seen[therapy.Drug] = true
			drugs = append(drugs, therapy.Drug)
		}
	}
	return drugs
}

func (s *service) hasActiveTherapyFor(patient *Patient, drug string, today time.Time) bool {
	for _, therapy := range patient.Therapies {
		if therapy.Drug == drug && therapy.IsActive(today) {
			return true
		}
	}
	return false
}
