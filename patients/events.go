package patients

import "time"

// ClinicalEvent is a dated symptom or pathology note. The time is optional;
// a zero time serializes as an empty field.
type ClinicalEvent struct {
	Type        string
	Description string
	Date        time.Time
	Time        time.Time
	Notes       string
}

// Event types used by callers; the field itself is free text.
const (
	EventSymptom   = "Sintomo"
	EventPathology = "Patologia"
)

// ConcomitantTherapy is a two-field note about a treatment followed outside
// the diabetes therapy plan. It is unrelated to the dated Therapy entity.
type ConcomitantTherapy struct {
	Type        string
	Description string
}

// ClinicalChart holds the patient's background clinical picture. A patient
// has at most one; an absent chart saves as three empty fields.
type ClinicalChart struct {
	RiskFactors     string
	PastPathologies string
	Comorbidities   string
}
