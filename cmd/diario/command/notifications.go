package command

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glucodiario/diario/monitoring"
	"github.com/glucodiario/diario/notifications"
	"github.com/glucodiario/diario/users"
	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Evaluate clinical rules and report pending notifications",
}

var notificationsReportCmd = &cobra.Command{
	Use:   "report [physicianId]",
	Short: "Run the adherence checks for a physician's patients and print the resulting notifications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid physician id %q", args[0])
		}
		return Run(func(directory *users.Directory, engine *monitoring.Engine, mailbox *notifications.Mailbox) error {
			return reportNotifications(directory, engine, mailbox, id)
		})
	},
}

func reportNotifications(directory *users.Directory, engine *monitoring.Engine, mailbox *notifications.Mailbox, id int) error {
	physician, ok := directory.Physician(id)
	if !ok {
		return fmt.Errorf("no physician with id %d", id)
	}

	today := time.Now()
	for _, patient := range physician.Patients {
		engine.CheckAdherence(patient, today)
	}

	physicianId := strconv.Itoa(physician.Id)
	adherence := mailbox.Drain(notifications.KindAdherence, physicianId)
	glucose := mailbox.Drain(notifications.KindGlucose, physicianId)

	fmt.Printf("Dr. %s: %d adherence, %d glucose notifications\n",
		physician.FullName(), len(adherence), len(glucose))
	for _, message := range notifications.Messages(adherence) {
		fmt.Printf("  [assunzioni] %s\n", message)
	}
	for _, message := range notifications.Messages(glucose) {
		fmt.Printf("  [glicemia] %s\n", message)
	}
	return nil
}

func init() {
	notificationsCmd.AddCommand(notificationsReportCmd)
	rootCmd.AddCommand(notificationsCmd)
}
