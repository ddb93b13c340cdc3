package store

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

type Config struct {
	DataDirectory            string `envconfig:"DIARIO_DATA_DIRECTORY" default:"data"`
	UsersFile                string `envconfig:"DIARIO_USERS_FILE" default:"utenti.csv"`
	MeasurementsFile         string `envconfig:"DIARIO_MEASUREMENTS_FILE" default:"rilevazioni.csv"`
	TherapiesFile            string `envconfig:"DIARIO_THERAPIES_FILE" default:"terapie.csv"`
	IntakesFile              string `envconfig:"DIARIO_INTAKES_FILE" default:"assunzioni.csv"`
	ClinicalChartsFile       string `envconfig:"DIARIO_CLINICAL_CHARTS_FILE" default:"schede_cliniche.csv"`
	ClinicalEventsFile       string `envconfig:"DIARIO_CLINICAL_EVENTS_FILE" default:"eventi_clinici.csv"`
	ConcomitantTherapiesFile string `envconfig:"DIARIO_CONCOMITANT_THERAPIES_FILE" default:"terapie_concomitanti.csv"`
}

func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDirectory, c.UsersFile)
}

func (c *Config) MeasurementsPath() string {
	return filepath.Join(c.DataDirectory, c.MeasurementsFile)
}

func (c *Config) TherapiesPath() string {
	return filepath.Join(c.DataDirectory, c.TherapiesFile)
}

func (c *Config) IntakesPath() string {
	return filepath.Join(c.DataDirectory, c.IntakesFile)
}

func (c *Config) ClinicalChartsPath() string {
	return filepath.Join(c.DataDirectory, c.ClinicalChartsFile)
}

func (c *Config) ClinicalEventsPath() string {
	return filepath.Join(c.DataDirectory, c.ClinicalEventsFile)
}

func (c *Config) ConcomitantTherapiesPath() string {
	return filepath.Join(c.DataDirectory, c.ConcomitantTherapiesFile)
}
