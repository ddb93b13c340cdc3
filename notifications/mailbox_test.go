package notifications_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/glucodiario/diario/notifications"
)

var _ = Describe("Mailbox", func() {
	var mailbox *notifications.Mailbox

	BeforeEach(func() {
		mailbox = notifications.NewMailbox()
	})

	Describe("Enqueue", func() {
		It("assigns an id and records the physician and kind", func() {
			notification := mailbox.Enqueue(notifications.KindGlucose, "12", "valore fuori range")

			Expect(notification.Id).ToNot(BeEmpty())
			Expect(notification.Kind).To(Equal(notifications.KindGlucose))
			Expect(notification.PhysicianId).To(Equal("12"))
			Expect(notification.Message).To(Equal("valore fuori range"))
			Expect(notification.CreatedTime).ToNot(BeZero())
		})
	})

	Describe("Drain", func() {
		It("returns pending notifications in enqueue order and empties the queue", func() {
			mailbox.Enqueue(notifications.KindAdherence, "12", "primo")
			mailbox.Enqueue(notifications.KindAdherence, "12", "secondo")

			pending := mailbox.Drain(notifications.KindAdherence, "12")
			Expect(notifications.Messages(pending)).To(Equal([]string{"primo", "secondo"}))

			Expect(mailbox.Drain(notifications.KindAdherence, "12")).To(BeEmpty())
		})

		It("keeps kinds independent", func() {
			mailbox.Enqueue(notifications.KindAdherence, "12", "assunzioni")
			mailbox.Enqueue(notifications.KindGlucose, "12", "glicemia")

			Expect(mailbox.Drain(notifications.KindAdherence, "12")).To(HaveLen(1))
			Expect(mailbox.Pending(notifications.KindGlucose, "12")).To(Equal(1))
		})

		It("keeps physicians independent", func() {
			mailbox.Enqueue(notifications.KindGlucose, "12", "per il dodici")
			mailbox.Enqueue(notifications.KindGlucose, "34", "per il trentaquattro")

			Expect(mailbox.Drain(notifications.KindGlucose, "12")).To(HaveLen(1))
			Expect(mailbox.Pending(notifications.KindGlucose, "34")).To(Equal(1))
		})
	})

	Describe("Pending", func() {
		It("counts without consuming", func() {
			mailbox.Enqueue(notifications.KindGlucose, "12", "valore fuori range")

			Expect(mailbox.Pending(notifications.KindGlucose, "12")).To(Equal(1))
			Expect(mailbox.Pending(notifications.KindGlucose, "12")).To(Equal(1))
			Expect(mailbox.Pending(notifications.KindAdherence, "12")).To(BeZero())
		})
	})
})
