package users

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glucodiario/diario/errors"
	"github.com/glucodiario/diario/patients"
	"github.com/glucodiario/diario/store"
	"go.uber.org/zap"
)

// Directory owns the user collection and the physician-patient links. The
// whole graph is loaded by the constructor: users first, then every
// patient-scoped data file, so the rest of the application starts from a
// fully populated in-memory state.
type Directory struct {
	logger *zap.SugaredLogger

	accounts       []patients.Account
	patientsList   []*patients.Patient
	physiciansList []*patients.Physician
	patientsById   map[int]*patients.Patient
	physiciansById map[int]*patients.Physician
}

func NewDirectory(config *store.Config, repo *patients.Repository, logger *zap.SugaredLogger) (*Directory, error) {
	d := &Directory{
		logger:         logger,
		patientsById:   map[int]*patients.Patient{},
		physiciansById: map[int]*patients.Physician{},
	}

	d.loadUsers(config)
	if len(d.accounts) == 0 {
		logger.Warnw("no users loaded, check the users file", "path", config.UsersPath())
		return d, nil
	}

	d.crossLink()
	d.loadPatientData(repo)

	logger.Infof("directory loaded with %d users (%d patients, %d physicians)",
		len(d.accounts), len(d.patientsList), len(d.physiciansList))
	return d, nil
}

func (d *Directory) loadUsers(config *store.Config) {
	d.accounts = store.Load(config.UsersPath(), parseUserRow, d.logger)
	for _, account := range d.accounts {
		switch u := account.(type) {
		case *patients.Patient:
			d.patientsList = append(d.patientsList, u)
			d.patientsById[u.Id] = u
		case *patients.Physician:
			d.physiciansList = append(d.physiciansList, u)
			d.physiciansById[u.Id] = u
		}
	}
}

func parseUserRow(fields []string) (patients.Account, error) {
	if len(fields) < 6 {
		return nil, fmt.Errorf("expected at least 6 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q", fields[0])
	}

	user := patients.User{
		Id:        id,
		FirstName: strings.TrimSpace(fields[2]),
		LastName:  strings.TrimSpace(fields[3]),
		Email:     strings.TrimSpace(fields[4]),
		Password:  strings.TrimSpace(fields[5]),
	}

	role := strings.TrimSpace(fields[1])
	switch {
	case strings.EqualFold(role, string(patients.RolePatient)):
		if len(fields) < 7 {
			return nil, fmt.Errorf("patient row is missing the physician id")
		}
		physicianId, err := strconv.Atoi(strings.TrimSpace(fields[6]))
		if err != nil {
			return nil, fmt.Errorf("invalid physician id %q", fields[6])
		}
		user.Role = patients.RolePatient
		return &patients.Patient{User: user, PhysicianId: physicianId}, nil
	case strings.EqualFold(role, string(patients.RolePhysician)):
		user.Role = patients.RolePhysician
		return &patients.Physician{User: user}, nil
	default:
		return nil, fmt.Errorf("%w %q", errors.UnknownRole, role)
	}
}

// crossLink rebuilds the physician-patient links from scratch. A patient
// whose physician id has no match keeps a nil physician.
func (d *Directory) crossLink() {
	for _, p := range d.patientsList {
		physician, ok := d.physiciansById[p.PhysicianId]
		if !ok {
			d.logger.Warnw("patient references an unknown physician",
				"patientId", p.Id, "physicianId", p.PhysicianId)
			continue
		}
		p.Physician = physician
		physician.AddPatient(p)
	}
}

// loadPatientData populates every clinical list. Users must be loaded first;
// rows referencing unknown patients are dropped by the repository.
func (d *Directory) loadPatientData(repo *patients.Repository) {
	repo.LoadMeasurements(d.patientsById)
	repo.LoadTherapies(d.patientsById)
	repo.LoadIntakes(d.patientsById)
	repo.LoadClinicalCharts(d.patientsById)
	repo.LoadClinicalEvents(d.patientsById)
	repo.LoadConcomitantTherapies(d.patientsById)
}

// Login authenticates by trimmed, case-insensitive email and exact password.
// When several users share an email the first one in file order wins.
func (d *Directory) Login(email, password string) (patients.Account, bool) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		d.logger.Warnw("login attempt with empty credentials")
		return nil, false
	}

	for _, account := range d.accounts {
		user := account.Profile()
		if strings.EqualFold(user.Email, email) && user.Password == password {
			d.logger.Infow("login successful", "email", user.Email, "userId", user.Id)
			return account, true
		}
	}

	d.logger.Warnw("login failed", "email", strings.ToLower(email))
	return nil, false
}

// EmailExists reports whether any user has the given email, compared after
// trimming and ignoring case.
func (d *Directory) EmailExists(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, account := range d.accounts {
		if strings.EqualFold(account.Profile().Email, email) {
			return true
		}
	}
	return false
}

func (d *Directory) Accounts() []patients.Account {
	return d.accounts
}

func (d *Directory) Patients() []*patients.Patient {
	return d.patientsList
}

func (d *Directory) Physicians() []*patients.Physician {
	return d.physiciansList
}

func (d *Directory) Patient(id int) (*patients.Patient, bool) {
	p, ok := d.patientsById[id]
	return p, ok
}

func (d *Directory) Physician(id int) (*patients.Physician, bool) {
	p, ok := d.physiciansById[id]
	return p, ok
}

type Stats struct {
	Total      int
	Patients   int
	Physicians int
}

func (d *Directory) Stats() Stats {
	return Stats{
		Total:      len(d.accounts),
		Patients:   len(d.patientsList),
		Physicians: len(d.physiciansList),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Sistema caricato con %d utenti totali (%d pazienti, %d diabetologi)",
		s.Total, s.Patients, s.Physicians)
}
