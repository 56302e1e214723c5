package notify

import (
	"context"
	"sync"
	"time"

	"github.com/clinicasol/turnero/internal/booking"
	"github.com/clinicasol/turnero/internal/observability/metrics"
	"github.com/clinicasol/turnero/pkg/logging"
)

const (
	defaultQueueSize   = 64
	defaultSendTimeout = 15 * time.Second
)

// Dispatcher delivers confirmation emails on a background worker, after the
// booking transaction has committed. Enqueueing never blocks and delivery
// failures are logged, never surfaced to the booking caller.
type Dispatcher struct {
	sender      EmailSender
	clinicEmail string
	metrics     *metrics.BookingMetrics
	logger      *logging.Logger
	sendTimeout time.Duration

	jobs chan EmailMessage
	wg   sync.WaitGroup
	once sync.Once
}

// NewDispatcher creates a dispatcher and starts its worker goroutine.
func NewDispatcher(sender EmailSender, clinicEmail string, m *metrics.BookingMetrics, logger *logging.Logger) *Dispatcher {
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	d := &Dispatcher{
		sender:      sender,
		clinicEmail: clinicEmail,
		metrics:     m,
		logger:      logger,
		sendTimeout: defaultSendTimeout,
		jobs:        make(chan EmailMessage, defaultQueueSize),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// BookingConfirmed queues the patient confirmation and the clinic notice.
// The two sends are independent; ordering between them is not guaranteed.
func (d *Dispatcher) BookingConfirmed(b *booking.Booking) {
	d.enqueue(patientConfirmation(b))
	if d.clinicEmail != "" {
		d.enqueue(clinicNotice(b, d.clinicEmail))
	}
}

// Close stops accepting messages and waits for queued sends to finish.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.jobs) })
	d.wg.Wait()
}

func (d *Dispatcher) enqueue(msg EmailMessage) {
	defer func() {
		// Sending on the closed channel after Close is a caller bug, but it
		// must not take down the process.
		if recover() != nil {
			d.logger.Warn("notification dropped: dispatcher closed", "to", msg.To)
		}
	}()
	select {
	case d.jobs <- msg:
	default:
		d.logger.Warn("notification dropped: queue full", "to", msg.To, "subject", msg.Subject)
		d.metrics.ObserveEmail(false)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.sender.Send(ctx, msg)
		cancel()
		if err != nil {
			d.logger.Error("notification delivery failed", "error", err, "to", msg.To)
			d.metrics.ObserveEmail(false)
			continue
		}
		d.metrics.ObserveEmail(true)
	}
}
