package users_test

import (
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/glucodiario/diario/patients"
	"github.com/glucodiario/diario/store"
	storeTest "github.com/glucodiario/diario/store/test"
	"github.com/glucodiario/diario/users"
)

var _ = Describe("Directory", func() {
	var config *store.Config
	var repo *patients.Repository

	BeforeEach(func() {
		config = storeTest.NewConfig(GinkgoT().TempDir())

		var err error
		repo, err = patients.NewRepository(config, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	writeUsers := func(rows ...string) {
		content := "id,ruolo,nome,cognome,email,password,diabetologoId\n" + strings.Join(rows, "\n") + "\n"
		Expect(os.WriteFile(config.UsersPath(), []byte(content), 0o644)).To(Succeed())
	}

	newDirectory := func() *users.Directory {
		directory, err := users.NewDirectory(config, repo, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		return directory
	}

	Describe("NewDirectory", func() {
		It("loads users and links patients to their physician", func() {
			writeUsers(
				"1,Diabetologo,Anna,Verdi,anna.verdi@asl.it,segretissima,",
				"2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,1",
				"3,Paziente,Lucia,Bianchi,lucia.bianchi@example.com,password2,1",
			)

			directory := newDirectory()
			Expect(directory.Stats()).To(Equal(users.Stats{Total: 3, Patients: 2, Physicians: 1}))

			patient, ok := directory.Patient(2)
			Expect(ok).To(BeTrue())
			Expect(patient.Physician).ToNot(BeNil())
			Expect(patient.Physician.Id).To(Equal(1))

			physician, ok := directory.Physician(1)
			Expect(ok).To(BeTrue())
			Expect(physician.Patients).To(HaveLen(2))
		})

		It("keeps a nil physician for an unmatched link", func() {
			writeUsers("2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,99")

			directory := newDirectory()
			patient, ok := directory.Patient(2)
			Expect(ok).To(BeTrue())
			Expect(patient.Physician).To(BeNil())
		})

		It("skips rows with an unknown role", func() {
			writeUsers(
				"1,Amministratore,Ugo,Neri,ugo.neri@example.com,password,",
				"2,Diabetologo,Anna,Verdi,anna.verdi@asl.it,segretissima,",
			)

			Expect(newDirectory().Stats()).To(Equal(users.Stats{Total: 1, Physicians: 1}))
		})

		It("skips patient rows missing the physician id field", func() {
			writeUsers("2,Paziente,Mario,Rossi,mario.rossi@example.com,password1")

			Expect(newDirectory().Stats()).To(Equal(users.Stats{}))
		})

		It("tolerates a missing users file", func() {
			Expect(newDirectory().Accounts()).To(BeEmpty())
		})

		It("loads the clinical data of each patient", func() {
			writeUsers(
				"1,Diabetologo,Anna,Verdi,anna.verdi@asl.it,segretissima,",
				"2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,1",
			)
			measurements := "pazienteId,data,tipoPasto,valore\n2,2024-03-05,Prima colazione,95\n"
			Expect(os.WriteFile(config.MeasurementsPath(), []byte(measurements), 0o644)).To(Succeed())

			patient, ok := newDirectory().Patient(2)
			Expect(ok).To(BeTrue())
			Expect(patient.Measurements).To(HaveLen(1))
			Expect(patient.Measurements[0].Value).To(Equal(95))
			Expect(patient.Measurements[0].Meal).To(Equal(patients.BeforeBreakfast))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			writeUsers(
				"1,Diabetologo,Anna,Verdi,anna.verdi@asl.it,segretissima,",
				"2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,1",
			)
		})

		It("authenticates with the exact credentials", func() {
			account, ok := newDirectory().Login("mario.rossi@example.com", "password1")
			Expect(ok).To(BeTrue())
			Expect(account.Profile().Id).To(Equal(2))
			Expect(account).To(BeAssignableToTypeOf(&patients.Patient{}))
		})

		It("ignores email case and surrounding spaces", func() {
			_, ok := newDirectory().Login("  Mario.Rossi@Example.COM ", "password1")
			Expect(ok).To(BeTrue())
		})

		It("compares the password exactly", func() {
			_, ok := newDirectory().Login("mario.rossi@example.com", "Password1")
			Expect(ok).To(BeFalse())
		})

		It("rejects empty credentials", func() {
			directory := newDirectory()
			_, ok := directory.Login("", "password1")
			Expect(ok).To(BeFalse())
			_, ok = directory.Login("mario.rossi@example.com", "")
			Expect(ok).To(BeFalse())
		})

		It("returns the first match when an email is duplicated", func() {
			writeUsers(
				"2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,1",
				"3,Paziente,Mario,Rossi,MARIO.ROSSI@example.com,password1,1",
			)

			account, ok := newDirectory().Login("mario.rossi@example.com", "password1")
			Expect(ok).To(BeTrue())
			Expect(account.Profile().Id).To(Equal(2))
		})
	})

	Describe("EmailExists", func() {
		BeforeEach(func() {
			writeUsers("2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,1")
		})

		It("matches after trimming and ignoring case", func() {
			directory := newDirectory()
			Expect(directory.EmailExists(" MARIO.rossi@Example.com ")).To(BeTrue())
			Expect(directory.EmailExists("lucia.bianchi@example.com")).To(BeFalse())
			Expect(directory.EmailExists("")).To(BeFalse())
		})
	})

	Describe("Stats", func() {
		It("formats the user counts", func() {
			writeUsers(
				"1,Diabetologo,Anna,Verdi,anna.verdi@asl.it,segretissima,",
				"2,Paziente,Mario,Rossi,mario.rossi@example.com,password1,1",
			)

			Expect(newDirectory().Stats().String()).
				To(Equal("Sistema caricato con 2 utenti totali (1 pazienti, 1 diabetologi)"))
		})
	})
})
