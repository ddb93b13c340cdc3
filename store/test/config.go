package test

import "github.com/glucodiario/diario/store"

// NewConfig returns a store configuration rooted in the given directory,
// using the default file names.
func NewConfig(dir string) *store.Config {
	return &store.Config{
		DataDirectory:            dir,
		UsersFile:                "utenti.csv",
		MeasurementsFile:         "rilevazioni.csv",
		TherapiesFile:            "terapie.csv",
		IntakesFile:              "assunzioni.csv",
		ClinicalChartsFile:       "schede_cliniche.csv",
		ClinicalEventsFile:       "eventi_clinici.csv",
		ConcomitantTherapiesFile: "terapie_concomitanti.csv",
	}
}
