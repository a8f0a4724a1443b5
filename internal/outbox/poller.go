package outbox

import (
	"context"
	"log"
	"time"
)

// Sender delivers a single message. Implemented by the SMTP mailer.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Poller drains the outbox on a ticker. Delivery failures are logged and
// retried on later ticks until the attempt cap, then parked as failed.
type Poller struct {
	tick        time.Duration
	batchSize   int
	maxAttempts int
	repo        Repository
	sender      Sender
}

func NewPoller(repo Repository, sender Sender) *Poller {
	return &Poller{
		tick:        5 * time.Second,
		batchSize:   20,
		maxAttempts: 3,
		repo:        repo,
		sender:      sender,
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processPending()
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) processPending() {
	emails, err := p.repo.Pending(p.batchSize)
	if err != nil {
		log.Printf("outbox: failed to fetch pending emails: %v", err)
		return
	}

	for _, e := range emails {
		if err := p.sender.Send(e.Recipient, e.Subject, e.Body); err != nil {
			attempts := e.Attempts + 1
			final := attempts >= p.maxAttempts
			log.Printf("outbox: send failed id=%d attempt=%d final=%v: %v", e.ID, attempts, final, err)
			if errMark := p.repo.MarkFailed(e.ID, attempts, err.Error(), final); errMark != nil {
				log.Printf("outbox: failed to record failure id=%d: %v", e.ID, errMark)
			}
			continue
		}

		if err := p.repo.MarkSent(e.ID); err != nil {
			log.Printf("outbox: failed to mark sent id=%d: %v", e.ID, err)
		}
	}
}
