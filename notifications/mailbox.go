package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the kind of notification
type Kind string

const (
	KindAdherence Kind = "adherence"
	KindGlucose   Kind = "glucose"
)

// Notification is a pending message for a physician.
type Notification struct {
	Id          string
	Kind        Kind
	PhysicianId string
	Message     string
	CreatedTime time.Time
}

// Mailbox holds per-physician pending notifications, one independent queue
// per kind. Messages live in memory only; a restart loses them. All
// operations are safe for concurrent use.
type Mailbox struct {
	mu     sync.Mutex
	queues map[Kind]map[string][]Notification
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		queues: map[Kind]map[string][]Notification{
			KindAdherence: {},
			KindGlucose:   {},
		},
	}
}

func (m *Mailbox) Enqueue(kind Kind, physicianId string, message string) Notification {
	notification := Notification{
		Id:          uuid.NewString(),
		Kind:        kind,
		PhysicianId: physicianId,
		Message:     message,
		CreatedTime: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	queue, ok := m.queues[kind]
	if !ok {
		queue = map[string][]Notification{}
		m.queues[kind] = queue
	}
	queue[physicianId] = append(queue[physicianId], notification)

	return notification
}

// Drain returns the physician's pending notifications of one kind and clears
// the queue. Each notification is delivered to at most one drain call.
func (m *Mailbox) Drain(kind Kind, physicianId string) []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	queue, ok := m.queues[kind]
	if !ok {
		return nil
	}
	pending := queue[physicianId]
	delete(queue, physicianId)
	return pending
}

// Pending returns how many notifications are queued without consuming them.
func (m *Mailbox) Pending(kind Kind, physicianId string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if queue, ok := m.queues[kind]; ok {
		return len(queue[physicianId])
	}
	return 0
}

// Messages extracts just the message text of each notification.
func Messages(notifications []Notification) []string {
	messages := make([]string, len(notifications))
	for i, n := range notifications {
		messages[i] = n.Message
	}
	return messages
}
