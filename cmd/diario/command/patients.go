package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glucodiario/diario/patients"
	"github.com/glucodiario/diario/users"
	"github.com/spf13/cobra"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Inspect patient records",
}

var patientsSummaryCmd = &cobra.Command{
	Use:   "summary [patientId]",
	Short: "Print a summary of one patient's clinical records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		return Run(func(directory *users.Directory, service patients.Service) error {
			return summarizePatient(directory, service, id)
		})
	},
}

func summarizePatient(directory *users.Directory, service patients.Service, id int) error {
	patient, ok := directory.Patient(id)
	if !ok {
		return fmt.Errorf("no patient with id %d", id)
	}

	fmt.Printf("%s (id %d)\n", patient.FullName(), patient.Id)
	if patient.Physician != nil {
		fmt.Printf("physician: Dr. %s\n", patient.Physician.FullName())
	}

	outOfRange := 0
	for _, m := range patient.Measurements {
		if m.OutOfRange() {
			outOfRange++
		}
	}
	fmt.Printf("measurements: %d (%d out of range)\n", len(patient.Measurements), outOfRange)
	fmt.Printf("therapies: %d, intakes: %d, clinical events: %d, concomitant therapies: %d\n",
		len(patient.Therapies), len(patient.Intakes), len(patient.ClinicalEvents), len(patient.ConcomitantTherapies))

	if drugs := service.ActiveDrugs(patient); len(drugs) > 0 {
		fmt.Printf("active drugs: %s\n", strings.Join(drugs, ", "))
	}
	return nil
}

func init() {
	patientsCmd.AddCommand(patientsSummaryCmd)
	rootCmd.AddCommand(patientsCmd)
}
