package monitoring_test

import (
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/glucodiario/diario/monitoring"
	"github.com/glucodiario/diario/notifications"
	"github.com/glucodiario/diario/patients"
	patientsTest "github.com/glucodiario/diario/patients/test"
)

var _ = Describe("Engine", func() {
	var mailbox *notifications.Mailbox
	var alerts []string
	var engine *monitoring.Engine
	var patient *patients.Patient
	var physicianId string

	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		mailbox = notifications.NewMailbox()
		alerts = nil
		alert := func(_ *patients.Patient, message string) {
			alerts = append(alerts, message)
		}

		var err error
		engine, err = monitoring.NewEngine(mailbox, alert, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		patient = patientsTest.RandomPatient()
		physicianId = strconv.Itoa(patient.PhysicianId)
	})

	Describe("MeasurementRecorded", func() {
		It("notifies the physician for an out of range reading", func() {
			measurement := patients.Measurement{Date: today, Meal: patients.AfterLunch, Value: 181}
			engine.MeasurementRecorded(patient, measurement)

			pending := mailbox.Drain(notifications.KindGlucose, physicianId)
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].Message).To(ContainSubstring(patient.FullName()))
			Expect(pending[0].Message).To(ContainSubstring("181"))
			Expect(pending[0].Message).To(ContainSubstring("Dopo pranzo"))
		})

		It("stays silent for a reading within range", func() {
			measurement := patients.Measurement{Date: today, Meal: patients.AfterLunch, Value: 180}
			engine.MeasurementRecorded(patient, measurement)

			Expect(mailbox.Pending(notifications.KindGlucose, physicianId)).To(BeZero())
		})
	})

	Describe("CheckAdherence", func() {
		BeforeEach(func() {
			patient.Therapies = []*patients.Therapy{patientsTest.ActiveTherapy("Metformina", 2, today)}
		})

		It("reminds the patient of the doses still missing today", func() {
			patient.Intakes = []patients.Intake{patientsTest.IntakeOn(today, "Metformina")}
			engine.CheckAdherence(patient, today)

			Expect(alerts).To(HaveLen(1))
			Expect(alerts[0]).To(ContainSubstring("1 assunzione(i)"))
			Expect(alerts[0]).To(ContainSubstring("Metformina"))
		})

		It("stays quiet once today's doses are all logged", func() {
			patient.Intakes = []patients.Intake{
				patientsTest.IntakeOn(today, "Metformina"),
				patientsTest.IntakeOn(today, "Metformina"),
			}
			engine.CheckAdherence(patient, today)

			Expect(alerts).To(BeEmpty())
		})

		It("escalates to the physician after three fully missed days", func() {
			engine.CheckAdherence(patient, today)

			pending := mailbox.Drain(notifications.KindAdherence, physicianId)
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].Message).To(ContainSubstring(patient.FullName()))
			Expect(pending[0].Message).To(ContainSubstring("Metformina"))
			Expect(pending[0].Message).To(ContainSubstring("3 giorni consecutivi"))
		})

		It("does not escalate when one of the previous days was satisfied", func() {
			yesterday := today.AddDate(0, 0, -1)
			patient.Intakes = []patients.Intake{
				patientsTest.IntakeOn(yesterday, "Metformina"),
				patientsTest.IntakeOn(yesterday, "Metformina"),
			}
			engine.CheckAdherence(patient, today)

			Expect(mailbox.Pending(notifications.KindAdherence, physicianId)).To(BeZero())
		})

		It("does not escalate when a previous day falls before the therapy start", func() {
			patient.Therapies[0].Start = today.AddDate(0, 0, -2)
			engine.CheckAdherence(patient, today)

			Expect(mailbox.Pending(notifications.KindAdherence, physicianId)).To(BeZero())
		})

		It("ignores paused therapies", func() {
			patient.Therapies[0].Status = patients.TherapyPaused
			engine.CheckAdherence(patient, today)

			Expect(alerts).To(BeEmpty())
			Expect(mailbox.Pending(notifications.KindAdherence, physicianId)).To(BeZero())
		})

		It("ignores therapies past their end date", func() {
			patient.Therapies[0].End = today.AddDate(0, 0, -1)
			engine.CheckAdherence(patient, today)

			Expect(alerts).To(BeEmpty())
			Expect(mailbox.Pending(notifications.KindAdherence, physicianId)).To(BeZero())
		})

		It("only counts intakes of the therapy's own drug", func() {
			for i := 1; i <= 3; i++ {
				day := today.AddDate(0, 0, -i)
				patient.Intakes = append(patient.Intakes,
					patientsTest.IntakeOn(day, "Insulina"),
					patientsTest.IntakeOn(day, "Insulina"),
				)
			}
			engine.CheckAdherence(patient, today)

			Expect(mailbox.Pending(notifications.KindAdherence, physicianId)).To(Equal(1))
		})
	})
})
