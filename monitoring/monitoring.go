package monitoring

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glucodiario/diario/notifications"
	"github.com/glucodiario/diario/patients"
	"go.uber.org/zap"
)

// ConsecutiveMissedDays is how many fully missed days trigger a physician
// notification.
const ConsecutiveMissedDays = 3

// AlertFunc delivers a patient-facing message. The presentation layer decides
// how to show it; a nil func drops the message.
type AlertFunc func(patient *patients.Patient, message string)

// Engine evaluates the clinical rules on demand after mutations. It keeps no
// state of its own; physician-facing results go to the mailbox, patient-facing
// ones to the alert callback.
type Engine struct {
	mailbox *notifications.Mailbox
	alert   AlertFunc
	logger  *zap.SugaredLogger
}

var _ patients.Monitor = &Engine{}

func NewEngine(mailbox *notifications.Mailbox, alert AlertFunc, logger *zap.SugaredLogger) (*Engine, error) {
	return &Engine{
		mailbox: mailbox,
		alert:   alert,
		logger:  logger,
	}, nil
}

// MeasurementRecorded notifies the patient's physician when a new reading
// falls outside the accepted band for its meal slot.
func (e *Engine) MeasurementRecorded(patient *patients.Patient, measurement patients.Measurement) {
	if !measurement.OutOfRange() {
		return
	}

	message := fmt.Sprintf(
		"Il paziente %s ha registrato un valore di glicemia %d mg/dL (%s) il %s.",
		patient.FullName(), measurement.Value, measurement.Meal, measurement.Date.Format(patients.DateLayout),
	)
	e.mailbox.Enqueue(notifications.KindGlucose, strconv.Itoa(patient.PhysicianId), message)
	e.logger.Infow("glucose value out of range",
		"patientId", patient.Id, "physicianId", patient.PhysicianId, "value", measurement.Value)
}

// CheckAdherence runs the daily completion check and the consecutive
// missed-day escalation for every active therapy.
func (e *Engine) CheckAdherence(patient *patients.Patient, today time.Time) {
	for _, therapy := range patient.Therapies {
		if therapy.EffectiveStatus(today) != patients.TherapyActive {
			continue
		}

		e.checkDailyIntakes(patient, therapy, today)
		e.checkConsecutiveMissedDays(patient, therapy, today)
	}
}

func (e *Engine) checkDailyIntakes(patient *patients.Patient, therapy *patients.Therapy, today time.Time) {
	logged := patient.CountIntakes(therapy.Drug, today)
	if logged >= therapy.DailyIntakes {
		return
	}

	if e.alert != nil {
		missing := therapy.DailyIntakes - logged
		e.alert(patient, fmt.Sprintf(
			"Devi ancora registrare %d assunzione(i) per il farmaco: %s", missing, therapy.Drug))
	}
}

// checkConsecutiveMissedDays escalates to the physician when each of the
// previous N days falls inside the therapy window and none of them reached
// the daily intake count. A day outside the window ends the check early.
func (e *Engine) checkConsecutiveMissedDays(patient *patients.Patient, therapy *patients.Therapy, today time.Time) {
	for i := 1; i <= ConsecutiveMissedDays; i++ {
		day := today.AddDate(0, 0, -i)
		if !therapy.Covers(day) {
			return
		}
		if patient.CountIntakes(therapy.Drug, day) >= therapy.DailyIntakes {
			return
		}
	}

	message := fmt.Sprintf(
		"Il paziente %s non ha registrato le assunzioni del farmaco \"%s\" per %d giorni consecutivi.",
		patient.FullName(), therapy.Drug, ConsecutiveMissedDays,
	)
	e.mailbox.Enqueue(notifications.KindAdherence, strconv.Itoa(patient.PhysicianId), message)
	e.logger.Infow("missed doses for consecutive days",
		"patientId", patient.Id, "physicianId", patient.PhysicianId, "drug", therapy.Drug)
}
