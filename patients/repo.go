package patients

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glucodiario/diario/errors"
	"github.com/glucodiario/diario/store"
	"go.uber.org/zap"
)

// Headers written when a data file is created for the first time. When a file
// already exists its own header line is preserved instead.
const (
	measurementsHeader       = "pazienteId,data,tipoPasto,valore"
	therapiesHeader          = "pazienteId,farmaco,assunzioniGiornaliere,quantitaPerAssunzione,indicazioni,dataInizio,dataFine,stato,medicoId"
	intakesHeader            = "pazienteId,data,ora,farmaco,quantita"
	clinicalChartsHeader     = "pazienteId,fattoriRischio,pregressePatologie,comorbidita"
	clinicalEventsHeader     = "pazienteId,tipo,descrizione,data,ora,note"
	concomitantTherapyHeader = "pazienteId,tipoTerapia,descrizione"
)

// Repository loads each patient-scoped entity file into the in-memory graph
// and merge-saves modified patients back, one file per entity type. Rows
// whose patient id is not present in the graph are dropped.
type Repository struct {
	paths  *store.Config
	logger *zap.SugaredLogger
}

func NewRepository(config *store.Config, logger *zap.SugaredLogger) (*Repository, error) {
	return &Repository{
		paths:  config,
		logger: logger,
	}, nil
}

type ownedRow[T any] struct {
	patientId int
	record    T
}

func parseOwnerId(fields []string, minFields int) (int, error) {
	if len(fields) < minFields {
		return 0, fmt.Errorf("%w: expected at least %d fields, got %d", errors.MalformedRow, minFields, len(fields))
	}
	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid patient id %q", fields[0])
	}
	return id, nil
}

// save deduplicates modified patients by id and hands their serializers to
// the merge. A failing serializer only omits that patient's rows.
func (r *Repository) save(path, header string, modified []*Patient, rows func(*Patient) ([]string, error)) error {
	ids := make([]string, 0, len(modified))
	byId := make(map[string]*Patient, len(modified))
	for _, p := range modified {
		id := strconv.Itoa(p.Id)
		if _, seen := byId[id]; seen {
			continue
		}
		ids = append(ids, id)
		byId[id] = p
	}

	return store.MergeSave(path, header, ids, func(ownerId string) ([]string, error) {
		return rows(byId[ownerId])
	}, r.logger)
}

// ---------- Measurements ----------

func (r *Repository) LoadMeasurements(patientsById map[int]*Patient) {
	for _, row := range store.Load(r.paths.MeasurementsPath(), parseMeasurementRow, r.logger) {
		if p, ok := patientsById[row.patientId]; ok {
			p.Measurements = append(p.Measurements, row.record)
		}
	}
}

func parseMeasurementRow(fields []string) (ownedRow[Measurement], error) {
	var row ownedRow[Measurement]

	id, err := parseOwnerId(fields, 4)
	if err != nil {
		return row, err
	}
	date, err := ParseDate(fields[1])
	if err != nil {
		return row, err
	}
	meal, err := ParseMealMarker(fields[2])
	if err != nil {
		return row, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return row, fmt.Errorf("invalid glucose value %q", fields[3])
	}

	row.patientId = id
	row.record = Measurement{Date: date, Meal: meal, Value: value}
	return row, nil
}

func (r *Repository) SaveMeasurements(modified []*Patient) error {
	return r.save(r.paths.MeasurementsPath(), measurementsHeader, modified, func(p *Patient) ([]string, error) {
		rows := make([]string, 0, len(p.Measurements))
		for _, m := range p.Measurements {
			row, err := store.Row(strconv.Itoa(p.Id), m.Date.Format(DateLayout), string(m.Meal), strconv.Itoa(m.Value))
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
}

// ---------- Therapies ----------

func (r *Repository) LoadTherapies(patientsById map[int]*Patient) {
	for _, row := range store.Load(r.paths.TherapiesPath(), parseTherapyRow, r.logger) {
		if p, ok := patientsById[row.patientId]; ok {
			p.Therapies = append(p.Therapies, row.record)
		}
	}
}

func parseTherapyRow(fields []string) (ownedRow[*Therapy], error) {
	var row ownedRow[*Therapy]

	id, err := parseOwnerId(fields, 9)
	if err != nil {
		return row, err
	}
	dailyIntakes, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return row, fmt.Errorf("invalid daily intake count %q", fields[2])
	}
	dose, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return row, fmt.Errorf("invalid dose %q", fields[3])
	}
	start, err := ParseDate(fields[5])
	if err != nil {
		return row, err
	}
	end, err := ParseDate(fields[6])
	if err != nil {
		return row, err
	}
	status, err := ParseTherapyStatus(fields[7])
	if err != nil {
		return row, err
	}
	physicianId, err := strconv.Atoi(strings.TrimSpace(fields[8]))
	if err != nil {
		return row, fmt.Errorf("invalid physician id %q", fields[8])
	}

	row.patientId = id
	row.record = &Therapy{
		Drug:          strings.TrimSpace(fields[1]),
		DailyIntakes:  dailyIntakes,
		DosePerIntake: dose,
		Instructions:  strings.TrimSpace(fields[4]),
		Start:         start,
		End:           end,
		Status:        status,
		PhysicianId:   physicianId,
	}
	return row, nil
}

func (r *Repository) SaveTherapies(modified []*Patient) error {
	return r.save(r.paths.TherapiesPath(), therapiesHeader, modified, func(p *Patient) ([]string, error) {
		rows := make([]string, 0, len(p.Therapies))
		for _, t := range p.Therapies {
			row, err := store.Row(
				strconv.Itoa(p.Id),
				t.Drug,
				strconv.Itoa(t.DailyIntakes),
				strconv.FormatFloat(t.DosePerIntake, 'f', -1, 64),
				t.Instructions,
				t.Start.Format(DateLayout),
				t.End.Format(DateLayout),
				string(t.Status),
				strconv.Itoa(t.PhysicianId),
			)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
}

// ---------- Intakes ----------

func (r *Repository) LoadIntakes(patientsById map[int]*Patient) {
	for _, row := range store.Load(r.paths.IntakesPath(), parseIntakeRow, r.logger) {
		if p, ok := patientsById[row.patientId]; ok {
			p.Intakes = append(p.Intakes, row.record)
		}
	}
}

func parseIntakeRow(fields []string) (ownedRow[Intake], error) {
	var row ownedRow[Intake]

	id, err := parseOwnerId(fields, 5)
	if err != nil {
		return row, err
	}
	date, err := ParseDate(fields[1])
	if err != nil {
		return row, err
	}
	clock, err := ParseClock(fields[2])
	if err != nil {
		return row, fmt.Errorf("invalid intake time %q", fields[2])
	}
	quantity, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil {
		return row, fmt.Errorf("invalid quantity %q", fields[4])
	}

	row.patientId = id
	row.record = Intake{
		Date:     date,
		Time:     clock,
		Drug:     strings.TrimSpace(fields[3]),
		Quantity: quantity,
	}
	return row, nil
}

func (r *Repository) SaveIntakes(modified []*Patient) error {
	return r.save(r.paths.IntakesPath(), intakesHeader, modified, func(p *Patient) ([]string, error) {
		rows := make([]string, 0, len(p.Intakes))
		for _, intake := range p.Intakes {
			row, err := store.Row(
				strconv.Itoa(p.Id),
				intake.Date.Format(DateLayout),
				intake.Time.Format(TimeLayout),
				intake.Drug,
				strconv.FormatFloat(intake.Quantity, 'f', -1, 64),
			)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
}

// ---------- Clinical charts ----------

func (r *Repository) LoadClinicalCharts(patientsById map[int]*Patient) {
	for _, row := range store.Load(r.paths.ClinicalChartsPath(), parseClinicalChartRow, r.logger) {
		if p, ok := patientsById[row.patientId]; ok {
			chart := row.record
			p.Chart = &chart
		}
	}
}

func parseClinicalChartRow(fields []string) (ownedRow[ClinicalChart], error) {
	var row ownedRow[ClinicalChart]

	id, err := parseOwnerId(fields, 4)
	if err != nil {
		return row, err
	}

	row.patientId = id
	row.record = ClinicalChart{
		RiskFactors:     fields[1],
		PastPathologies: fields[2],
		Comorbidities:   fields[3],
	}
	return row, nil
}

func (r *Repository) SaveClinicalCharts(modified []*Patient) error {
	return r.save(r.paths.ClinicalChartsPath(), clinicalChartsHeader, modified, func(p *Patient) ([]string, error) {
		chart := p.Chart
		if chart == nil {
			chart = &ClinicalChart{}
		}
		row, err := store.Row(strconv.Itoa(p.Id), chart.RiskFactors, chart.PastPathologies, chart.Comorbidities)
		if err != nil {
			return nil, err
		}
		return []string{row}, nil
	})
}

// ---------- Clinical events ----------

func (r *Repository) LoadClinicalEvents(patientsById map[int]*Patient) {
	for _, row := range store.Load(r.paths.ClinicalEventsPath(), parseClinicalEventRow, r.logger) {
		if p, ok := patientsById[row.patientId]; ok {
			p.ClinicalEvents = append(p.ClinicalEvents, row.record)
		}
	}
}

func parseClinicalEventRow(fields []string) (ownedRow[ClinicalEvent], error) {
	var row ownedRow[ClinicalEvent]

	id, err := parseOwnerId(fields, 6)
	if err != nil {
		return row, err
	}
	date, err := ParseDate(fields[3])
	if err != nil {
		return row, err
	}

	event := ClinicalEvent{
		Type:        strings.TrimSpace(fields[1]),
		Description: strings.TrimSpace(fields[2]),
		Date:        date,
		Notes:       strings.TrimSpace(fields[5]),
	}
	if trimmed := strings.TrimSpace(fields[4]); trimmed != "" {
		clock, err := ParseClock(trimmed)
		if err != nil {
			return row, fmt.Errorf("invalid event time %q", fields[4])
		}
		event.Time = clock
	}

	row.patientId = id
	row.record = event
	return row, nil
}

func (r *Repository) SaveClinicalEvents(modified []*Patient) error {
	return r.save(r.paths.ClinicalEventsPath(), clinicalEventsHeader, modified, func(p *Patient) ([]string, error) {
		rows := make([]string, 0, len(p.ClinicalEvents))
		for _, event := range p.ClinicalEvents {
			clock := ""
			if !event.Time.IsZero() {
				clock = event.Time.Format(TimeLayout)
			}
			row, err := store.Row(
				strconv.Itoa(p.Id),
				event.Type,
				event.Description,
				event.Date.Format(DateLayout),
				clock,
				event.Notes,
			)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
}

// ---------- Concomitant therapies ----------

func (r *Repository) LoadConcomitantTherapies(patientsById map[int]*Patient) {
	for _, row := range store.Load(r.paths.ConcomitantTherapiesPath(), parseConcomitantTherapyRow, r.logger) {
		if p, ok := patientsById[row.patientId]; ok {
			p.ConcomitantTherapies = append(p.ConcomitantTherapies, row.record)
		}
	}
}

func parseConcomitantTherapyRow(fields []string) (ownedRow[ConcomitantTherapy], error) {
	var row ownedRow[ConcomitantTherapy]

	id, err := parseOwnerId(fields, 3)
	if err != nil {
		return row, err
	}

	row.patientId = id
	row.record = ConcomitantTherapy{
		Type:        strings.TrimSpace(fields[1]),
		Description: strings.TrimSpace(fields[2]),
	}
	return row, nil
}

func (r *Repository) SaveConcomitantTherapies(modified []*Patient) error {
	return r.save(r.paths.ConcomitantTherapiesPath(), concomitantTherapyHeader, modified, func(p *Patient) ([]string, error) {
		rows := make([]string, 0, len(p.ConcomitantTherapies))
		for _, therapy := range p.ConcomitantTherapies {
			row, err := store.Row(strconv.Itoa(p.Id), therapy.Type, therapy.Description)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
}
