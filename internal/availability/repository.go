package availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository stores open availability slots in Postgres.
type Repository struct {
	pool PgxPool
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool PgxPool) *Repository {
	if pool == nil {
		panic("availability: pgx pool required")
	}
	return &Repository{pool: pool}
}

// GenerateAndSave bulk-inserts slots for a doctor, silently skipping any
// (doctor, date, time) that already exists. Returns the number of rows
// actually inserted, so retried submissions are idempotent.
func (r *Repository) GenerateAndSave(ctx context.Context, doctorID string, slots []SlotTime) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("availability: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, s := range slots {
		date := strings.TrimSpace(s.Date)
		tm := strings.TrimSpace(s.Time)
		if date == "" || tm == "" {
			continue
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO availability (id, doctor_id, date, time)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (doctor_id, date, time) DO NOTHING
		`, uuid.New(), doctorID, date, tm)
		if err != nil {
			return 0, fmt.Errorf("availability: insert slot: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("availability: commit: %w", err)
	}
	return inserted, nil
}

// List returns open slots joined with doctor name and specialty, ordered by
// date then time ascending.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Slot, error) {
	query := `
		SELECT a.id, a.doctor_id, a.date, a.time, d.name, d.specialty
		FROM availability a
		JOIN doctors d ON d.id = a.doctor_id
	`
	var (
		conds []string
		args  []any
	)
	if filter.DoctorID != "" {
		args = append(args, filter.DoctorID)
		conds = append(conds, fmt.Sprintf("a.doctor_id = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conds = append(conds, fmt.Sprintf("a.date = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.date, a.time"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("availability: select slots: %w", err)
	}
	defer rows.Close()

	var out []*Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.DoctorID, &s.Date, &s.Time, &s.DoctorName, &s.Specialty); err != nil {
			return nil, fmt.Errorf("availability: scan slot: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("availability: iterate slots: %w", err)
	}
	return out, nil
}

// Delete removes one open slot by id, reporting how many rows were removed
// (0 or 1). A missing id is not an error.
func (r *Repository) Delete(ctx context.Context, slotID string) (int64, error) {
	if _, err := uuid.Parse(slotID); err != nil {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM availability WHERE id = $1
	`, slotID)
	if err != nil {
		return 0, fmt.Errorf("availability: delete slot: %w", err)
	}
	return tag.RowsAffected(), nil
}
