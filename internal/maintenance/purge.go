// Package maintenance holds housekeeping jobs run outside the request path.
package maintenance

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinicasol/turnero/pkg/logging"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Execer is the subset of pgxpool.Pool the purger needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PurgeResult reports how many rows each table lost.
type PurgeResult struct {
	Slots    int64
	Bookings int64
}

// Purger removes stale rows: open slots whose date has passed can never be
// booked, and bookings older than the retention window are no longer needed.
type Purger struct {
	pool   Execer
	logger *logging.Logger
}

// NewPurger creates a purger backed by pgxpool.
func NewPurger(pool Execer, logger *logging.Logger) *Purger {
	if pool == nil {
		panic("maintenance: pgx pool required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Purger{pool: pool, logger: logger}
}

// PurgePastSlots deletes open availability slots dated strictly before cutoff
// (YYYY-MM-DD). Slots on the cutoff date survive.
func (p *Purger) PurgePastSlots(ctx context.Context, cutoff string) (int64, error) {
	if !dateRe.MatchString(cutoff) {
		return 0, fmt.Errorf("maintenance: invalid cutoff date %q", cutoff)
	}
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM availability WHERE date < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("maintenance: purge slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PurgeOldBookings deletes bookings dated strictly before cutoff (YYYY-MM-DD).
func (p *Purger) PurgeOldBookings(ctx context.Context, cutoff string) (int64, error) {
	if !dateRe.MatchString(cutoff) {
		return 0, fmt.Errorf("maintenance: invalid cutoff date %q", cutoff)
	}
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM bookings WHERE date < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("maintenance: purge bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Run purges both tables against the same cutoff and logs the totals.
func (p *Purger) Run(ctx context.Context, cutoff string) (*PurgeResult, error) {
	slots, err := p.PurgePastSlots(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	bookings, err := p.PurgeOldBookings(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	p.logger.Info("purge complete", "cutoff", cutoff, "slots", slots, "bookings", bookings)
	return &PurgeResult{Slots: slots, Bookings: bookings}, nil
}
