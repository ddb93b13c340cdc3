package test

import (
	"time"

	"github.com/glucodiario/diario/patients"
	"github.com/glucodiario/diario/test"
)

func RandomDate() time.Time {
	return time.Date(2024, time.Month(test.Faker.IntBetween(1, 12)), test.Faker.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)
}

func RandomClock() time.Time {
	return time.Date(0, time.January, 1, test.Faker.IntBetween(0, 23), test.Faker.IntBetween(0, 59), 0, 0, time.UTC)
}

func RandomUser(role patients.Role) patients.User {
	return patients.User{
		Id:        test.Faker.IntBetween(1, 1000000),
		FirstName: test.Faker.Person().FirstName(),
		LastName:  test.Faker.Person().LastName(),
		Email:     test.Faker.Internet().Email(),
		Password:  test.Faker.Internet().Password(),
		Role:      role,
	}
}

func RandomPatient() *patients.Patient {
	return &patients.Patient{
		User:        RandomUser(patients.RolePatient),
		PhysicianId: test.Faker.IntBetween(1, 1000000),
	}
}

func RandomPhysician() *patients.Physician {
	return &patients.Physician{
		User: RandomUser(patients.RolePhysician),
	}
}

func RandomMealMarker() patients.MealMarker {
	return patients.MealMarkers[test.Rand.Intn(len(patients.MealMarkers))]
}

func RandomMeasurement() patients.Measurement {
	return patients.Measurement{
		Date:  RandomDate(),
		Meal:  RandomMealMarker(),
		Value: test.Faker.IntBetween(60, 260),
	}
}

func RandomTherapy() *patients.Therapy {
	start := RandomDate()
	return &patients.Therapy{
		Drug:          test.Faker.Lorem().Word(),
		DailyIntakes:  test.Faker.IntBetween(1, 4),
		DosePerIntake: float64(test.Faker.IntBetween(1, 40)) / 2,
		Instructions:  "dopo i pasti",
		Start:         start,
		End:           start.AddDate(0, 0, test.Faker.IntBetween(7, 90)),
		Status:        patients.TherapyActive,
		PhysicianId:   test.Faker.IntBetween(1, 1000000),
	}
}

// ActiveTherapy builds a therapy whose window comfortably covers today.
func ActiveTherapy(drug string, dailyIntakes int, today time.Time) *patients.Therapy {
	return &patients.Therapy{
		Drug:          drug,
		DailyIntakes:  dailyIntakes,
		DosePerIntake: 1,
		Instructions:  "dopo i pasti",
		Start:         today.AddDate(0, 0, -10),
		End:           today.AddDate(0, 0, 10),
		Status:        patients.TherapyActive,
		PhysicianId:   test.Faker.IntBetween(1, 1000000),
	}
}

func RandomIntake() patients.Intake {
	return patients.Intake{
		Date:     RandomDate(),
		Time:     RandomClock(),
		Drug:     test.Faker.Lorem().Word(),
		Quantity: float64(test.Faker.IntBetween(1, 10)),
	}
}

// IntakeOn builds an intake of the given drug logged on the given day.
func IntakeOn(day time.Time, drug string) patients.Intake {
	return patients.Intake{
		Date:     day,
		Time:     RandomClock(),
		Drug:     drug,
		Quantity: 1,
	}
}

func RandomClinicalEvent() patients.ClinicalEvent {
	return patients.ClinicalEvent{
		Type:        patients.EventSymptom,
		Description: test.Faker.Lorem().Word(),
		Date:        RandomDate(),
		Time:        RandomClock(),
		Notes:       test.Faker.Lorem().Word(),
	}
}

func RandomConcomitantTherapy() patients.ConcomitantTherapy {
	return patients.ConcomitantTherapy{
		Type:        test.Faker.Lorem().Word(),
		Description: test.Faker.Lorem().Word(),
	}
}

func RandomClinicalChart() patients.ClinicalChart {
	return patients.ClinicalChart{
		RiskFactors:     test.Faker.Lorem().Word(),
		PastPathologies: test.Faker.Lorem().Word(),
		Comorbidities:   test.Faker.Lorem().Word(),
	}
}
