package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicasol/turnero/internal/observability/metrics"
	"github.com/clinicasol/turnero/pkg/logging"
)

var bookingTracer = otel.Tracer("turnero.internal.booking")

// pg error code for unique constraint violations
const uniqueViolation = "23505"

// DB is the transactional handle the engine needs. pgxmock satisfies it in
// tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// InsurerSource loads a doctor's accepted-insurer set.
type InsurerSource interface {
	AcceptedInsurers(ctx context.Context, doctorID string) (map[string]struct{}, error)
}

// Notifier receives fire-and-forget notifications after a booking commits.
// Implementations must never block the caller.
type Notifier interface {
	BookingConfirmed(b *Booking)
}

// Engine atomically converts availability slots into bookings and back.
// Both directions of the swap rely on the same (doctor, date, time) unique
// constraint: the store rejects the second writer at commit time, so no
// application-level locking is needed.
type Engine struct {
	db       DB
	insurers InsurerSource
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewEngine constructs a booking engine. notifier and metrics may be nil.
func NewEngine(db DB, insurers InsurerSource, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Engine {
	if db == nil {
		panic("booking: db required")
	}
	if insurers == nil {
		panic("booking: insurer source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{db: db, insurers: insurers, notifier: notifier, metrics: m, logger: logger}
}

// Book consumes the open slot matching the request into a new booking.
// The slot lookup, booking insert and slot delete run in one transaction;
// under concurrent attempts for the same slot exactly one caller succeeds,
// the rest get ErrSlotUnavailable or ErrSlotTaken.
func (e *Engine) Book(ctx context.Context, req *BookRequest) (*Booking, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.book")
	defer span.End()

	if err := req.Validate(); err != nil {
		e.metrics.ObserveBooking("validation_error")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("turnero.doctor_id", req.DoctorID),
		attribute.String("turnero.date", req.Date),
		attribute.String("turnero.time", req.Time),
	)

	if _, err := uuid.Parse(req.DoctorID); err != nil {
		// unknown doctor can have no open slot
		e.metrics.ObserveBooking("conflict")
		return nil, ErrSlotUnavailable
	}

	accepted, err := e.insurers.AcceptedInsurers(ctx, req.DoctorID)
	if err != nil {
		span.RecordError(err)
		e.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("booking: load insurers: %w", err)
	}

	choice := DeclaredChoice(req.Insurer, req.InsurerOther)
	b := &Booking{
		ID:           uuid.NewString(),
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Time:         req.Time,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		Insurer:      req.Insurer,
		OutOfNetwork: OutOfNetwork(accepted, choice),
		Reason:       req.Reason,
	}
	if choice.IsOther() {
		b.InsurerOther = choice.Name()
	}

	err = e.inTx(ctx, func(tx pgx.Tx) error {
		var slotID uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT id FROM availability
			WHERE doctor_id = $1 AND date = $2 AND time = $3
		`, b.DoctorID, b.Date, b.Time).Scan(&slotID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotUnavailable
		}
		if err != nil {
			return fmt.Errorf("booking: lookup slot: %w", err)
		}

		var createdAt time.Time
		err = tx.QueryRow(ctx, `
			INSERT INTO bookings
				(id, doctor_id, date, time, patient_name, patient_email,
				 patient_insurer, patient_insurer_other, out_of_network, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at
		`, b.ID, b.DoctorID, b.Date, b.Time, b.PatientName, b.PatientEmail,
			b.Insurer, b.InsurerOther, b.OutOfNetwork, b.Reason).Scan(&createdAt)
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		if err != nil {
			return fmt.Errorf("booking: insert booking: %w", err)
		}
		b.CreatedAt = createdAt

		if _, err := tx.Exec(ctx, `
			DELETE FROM availability WHERE id = $1
		`, slotID); err != nil {
			return fmt.Errorf("booking: consume slot: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrSlotTaken) {
			e.metrics.ObserveBooking("conflict")
		} else {
			e.metrics.ObserveBooking("error")
		}
		return nil, err
	}

	e.metrics.ObserveBooking("confirmed")
	e.logger.Info("booking confirmed",
		"booking_id", b.ID,
		"doctor_id", b.DoctorID,
		"date", b.Date,
		"time", b.Time,
		"out_of_network", b.OutOfNetwork,
	)
	if e.notifier != nil {
		e.notifier.BookingConfirmed(b)
	}
	return b, nil
}

// Cancel deletes a booking and restores its availability slot in one
// transaction. The slot insert skips if one already exists for the key.
func (e *Engine) Cancel(ctx context.Context, bookingID string) error {
	ctx, span := bookingTracer.Start(ctx, "booking.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("turnero.booking_id", bookingID))

	if _, err := uuid.Parse(bookingID); err != nil {
		return ErrBookingNotFound
	}

	err := e.inTx(ctx, func(tx pgx.Tx) error {
		var doctorID uuid.UUID
		var date, tm string
		err := tx.QueryRow(ctx, `
			DELETE FROM bookings WHERE id = $1
			RETURNING doctor_id, date, time
		`, bookingID).Scan(&doctorID, &date, &tm)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("booking: delete booking: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO availability (id, doctor_id, date, time)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (doctor_id, date, time) DO NOTHING
		`, uuid.New(), doctorID, date, tm); err != nil {
			return fmt.Errorf("booking: restore slot: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) {
			span.RecordError(err)
		}
		return err
	}

	e.metrics.ObserveBooking("cancelled")
	e.logger.Info("booking cancelled", "booking_id", bookingID)
	return nil
}

// inTx is the shared swap primitive: begin, run one direction of the
// slot⇄booking exchange, commit, with rollback on any failure.
func (e *Engine) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("booking: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("booking: commit: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
