package outbox

import (
	"errors"
	"sync"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

var ErrNotFound = errors.New("outbox entry not found")

// Email is a queued outbound message. Rows are written by request
// handlers and drained by the poller, so a failed send never affects the
// HTTP response that queued it.
type Email struct {
	ID        int     `json:"outboxId"`
	Recipient string  `json:"recipient"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
	Status    string  `json:"status"`
	Attempts  int     `json:"attempts"`
	LastError *string `json:"lastError,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	SentAt    *string `json:"sentAt,omitempty"`
}

type Repository interface {
	Enqueue(e Email) (Email, error)
	// Pending returns up to limit messages still awaiting delivery.
	Pending(limit int) ([]Email, error)
	MarkSent(id int) error
	// MarkFailed records the attempt; when final is true the message is
	// parked in the failed state and no longer retried.
	MarkFailed(id int, attempts int, reason string, final bool) error
}

// InMemoryRepository is used by the poller tests.
type InMemoryRepository struct {
	mu     sync.Mutex
	emails map[int]*Email
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{emails: map[int]*Email{}, nextID: 1}
}

func (r *InMemoryRepository) Enqueue(e Email) (Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	e.Status = StatusPending
	stored := e
	r.emails[e.ID] = &stored
	return e, nil
}

func (r *InMemoryRepository) Pending(limit int) ([]Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Email, 0)
	for id := 1; id < r.nextID && len(out) < limit; id++ {
		if e, ok := r.emails[id]; ok && e.Status == StatusPending {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) MarkSent(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.emails[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = StatusSent
	return nil
}

func (r *InMemoryRepository) MarkFailed(id int, attempts int, reason string, final bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.emails[id]
	if !ok {
		return ErrNotFound
	}
	e.Attempts = attempts
	e.LastError = &reason
	if final {
		e.Status = StatusFailed
	}
	return nil
}
