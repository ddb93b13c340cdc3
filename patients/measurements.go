package patients

import (
	"fmt"
	"strings"
	"time"
)

// MealMarker identifies the meal slot a glucose measurement refers to. The
// literals are the exact strings stored in the measurements file.
type MealMarker string

const (
	BeforeBreakfast MealMarker = "Prima colazione"
	AfterBreakfast  MealMarker = "Dopo colazione"
	BeforeLunch     MealMarker = "Prima pranzo"
	AfterLunch      MealMarker = "Dopo pranzo"
	BeforeDinner    MealMarker = "Prima cena"
	AfterDinner     MealMarker = "Dopo cena"
)

var MealMarkers = []MealMarker{
	BeforeBreakfast, AfterBreakfast,
	BeforeLunch, AfterLunch,
	BeforeDinner, AfterDinner,
}

func ParseMealMarker(raw string) (MealMarker, error) {
	trimmed := strings.TrimSpace(raw)
	for _, marker := range MealMarkers {
		if strings.EqualFold(trimmed, string(marker)) {
			return marker, nil
		}
	}
	return "", fmt.Errorf("unknown meal marker %q", raw)
}

// PostMeal reports whether the marker refers to a slot after a meal.
func (m MealMarker) PostMeal() bool {
	switch m {
	case AfterBreakfast, AfterLunch, AfterDinner:
		return true
	}
	return false
}

// Glucose bands in mg/dL. Values outside the band for the measurement's meal
// slot are reported to the patient's physician.
const (
	PreMealMin  = 80
	PreMealMax  = 130
	PostMealMax = 180
)

// Measurement is a single glucose reading.
type Measurement struct {
	Date  time.Time
	Meal  MealMarker
	Value int
}

// OutOfRange derives the classification from the current meal marker and
// value, so it can never go stale when either changes.
func (m Measurement) OutOfRange() bool {
	if m.Meal.PostMeal() {
		return m.Value > PostMealMax
	}
	return m.Value < PreMealMin || m.Value > PreMealMax
}

func (m Measurement) String() string {
	return fmt.Sprintf("%s - %s: %d mg/dL", m.Date.Format(DateLayout), m.Meal, m.Value)
}
