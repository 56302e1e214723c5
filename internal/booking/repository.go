package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the read-only subset of pgxpool.Pool the ledger needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Ledger reads confirmed bookings.
type Ledger struct {
	pool Querier
}

// NewLedger initializes the booking ledger reader.
func NewLedger(pool Querier) *Ledger {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return &Ledger{pool: pool}
}

// List returns bookings joined with doctor name and specialty, ordered by
// date then time ascending.
func (l *Ledger) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	query := `
		SELECT b.id, b.doctor_id, b.date, b.time, b.patient_name, b.patient_email,
		       b.patient_insurer, b.patient_insurer_other, b.out_of_network,
		       b.reason, b.created_at, d.name, d.specialty
		FROM bookings b
		JOIN doctors d ON d.id = b.doctor_id
	`
	var (
		conds []string
		args  []any
	)
	if filter.DoctorID != "" {
		args = append(args, filter.DoctorID)
		conds = append(conds, fmt.Sprintf("b.doctor_id = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conds = append(conds, fmt.Sprintf("b.date = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY b.date, b.time"

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("booking: select bookings: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.DoctorID, &b.Date, &b.Time, &b.PatientName, &b.PatientEmail,
			&b.Insurer, &b.InsurerOther, &b.OutOfNetwork,
			&b.Reason, &b.CreatedAt, &b.DoctorName, &b.Specialty,
		); err != nil {
			return nil, fmt.Errorf("booking: scan booking: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking: iterate bookings: %w", err)
	}
	return out, nil
}
