package patients

import (
	"fmt"
	"time"
)

type Role string

// Role literals match the values stored in the users file; they are kept in
// Italian for round-trip compatibility with existing data.
const (
	RolePatient   Role = "Paziente"
	RolePhysician Role = "Diabetologo"
)

type User struct {
	Id        int
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      Role
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Account is implemented by both user variants, so callers can authenticate
// and list users without downcasting; concrete handling is done with a type
// switch over *Patient and *Physician.
type Account interface {
	Profile() *User
}

// Patient owns all of its clinical records exclusively; no list is ever
// shared with another patient. The physician link is rebuilt on every load.
type Patient struct {
	User

	PhysicianId          int
	Physician            *Physician
	Measurements         []Measurement
	Therapies            []*Therapy
	Intakes              []Intake
	ClinicalEvents       []ClinicalEvent
	ConcomitantTherapies []ConcomitantTherapy
	Chart                *ClinicalChart
}

func (p *Patient) Profile() *User {
	return &p.User
}

// CountIntakes returns how many intakes of the given drug were logged on the
// given calendar day.
func (p *Patient) CountIntakes(drug string, day time.Time) int {
	count := 0
	for _, intake := range p.Intakes {
		if intake.Drug == drug && SameDay(intake.Date, day) {
			count++
		}
	}
	return count
}

// HasMeasurement reports whether a measurement already exists for the given
// date and meal marker.
func (p *Patient) HasMeasurement(date time.Time, meal MealMarker) bool {
	for _, m := range p.Measurements {
		if m.Meal == meal && SameDay(m.Date, date) {
			return true
		}
	}
	return false
}

type Physician struct {
	User

	Patients []*Patient
}

func (d *Physician) Profile() *User {
	return &d.User
}

func (d *Physician) AddPatient(p *Patient) {
	d.Patients = append(d.Patients, p)
}
