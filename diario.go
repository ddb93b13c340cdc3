package diario

import (
	"github.com/glucodiario/diario/logger"
	"github.com/glucodiario/diario/monitoring"
	"github.com/glucodiario/diario/notifications"
	"github.com/glucodiario/diario/patients"
	"github.com/glucodiario/diario/store"
	"github.com/glucodiario/diario/users"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Dependencies returns the full dependency graph of the application. Hosts
// (the UI shell or the admin CLI) append their own options and invokes.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Sugar,
			store.NewConfig,
			patients.NewRepository,
			patients.NewService,
			users.NewDirectory,
			notifications.NewMailbox,
			monitoring.NewEngine,
			newMonitor,
			newPatientAlert,
		),
	}
}

func newMonitor(engine *monitoring.Engine) patients.Monitor {
	return engine
}

// newPatientAlert logs patient-facing alerts. An interactive host replaces it
// with its own presenter through fx.Replace.
func newPatientAlert(log *zap.SugaredLogger) monitoring.AlertFunc {
	return func(patient *patients.Patient, message string) {
		log.Infow("patient alert", "patientId", patient.Id, "message", message)
	}
}
