package patients

import (
	"fmt"
	"strings"
	"time"

	"github.com/glucodiario/diario/errors"
)

// TherapyStatus literals match the values stored in the therapies file.
type TherapyStatus string

const (
	TherapyActive     TherapyStatus = "ATTIVA"
	TherapyPaused     TherapyStatus = "IN_PAUSA"
	TherapyTerminated TherapyStatus = "TERMINATA"
)

func ParseTherapyStatus(raw string) (TherapyStatus, error) {
	switch status := TherapyStatus(strings.ToUpper(strings.TrimSpace(raw))); status {
	case TherapyActive, TherapyPaused, TherapyTerminated:
		return status, nil
	default:
		return "", fmt.Errorf("unknown therapy status %q", raw)
	}
}

// Therapy is a drug prescription with a validity window. The stored status is
// what the patient or physician last set; EffectiveStatus derives termination
// from the calendar instead of caching it.
type Therapy struct {
	Drug          string
	DailyIntakes  int
	DosePerIntake float64
	Instructions  string
	Start         time.Time
	End           time.Time
	Status        TherapyStatus
	PhysicianId   int
}

// EffectiveStatus returns Terminated once today is past the end date,
// regardless of the stored status. Termination is never rolled back.
func (t *Therapy) EffectiveStatus(today time.Time) TherapyStatus {
	if today.After(endOfDay(t.End)) {
		return TherapyTerminated
	}
	return t.Status
}

// SetStatus changes the stored status. Manual changes are only allowed while
// today falls within the therapy window.
func (t *Therapy) SetStatus(status TherapyStatus, today time.Time) error {
	if !t.Covers(today) {
		return errors.StatusLocked
	}
	t.Status = status
	return nil
}

// Covers reports whether the given day falls within [start, end].
func (t *Therapy) Covers(day time.Time) bool {
	return !day.Before(startOfDay(t.Start)) && !day.After(endOfDay(t.End))
}

// IsActive reports whether the therapy is effectively active and covers the
// given day, which is the precondition for logging intakes of its drug.
func (t *Therapy) IsActive(today time.Time) bool {
	return t.EffectiveStatus(today) == TherapyActive && t.Covers(today)
}

// Intake is a free-standing log entry of a dose the patient took. It is only
// validated against therapies when created, never when loaded.
type Intake struct {
	Date     time.Time
	Time     time.Time
	Drug     string
	Quantity float64
}
