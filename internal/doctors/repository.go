package doctors

import (
	"context"
	"fmt"
	"time"

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

// Repository stores doctors and their accepted insurers in Postgres.
type Repository struct {
	pool PgxPool
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool PgxPool) *Repository {
	if pool == nil {
		panic("doctors: pgx pool required")
	}
	return &Repository{pool: pool}
}

// Create inserts a doctor and its insurer pairings in one transaction.
// Duplicate insurers in the request are absorbed by ON CONFLICT DO NOTHING.
func (r *Repository) Create(ctx context.Context, req *CreateDoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("doctors: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New()
	var createdAt time.Time
	if err := tx.QueryRow(ctx, `
		INSERT INTO doctors (id, name, specialty)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, id, req.Name, req.Specialty).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("doctors: insert doctor: %w", err)
	}

	for _, insurer := range req.Insurers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO doctor_insurers (doctor_id, insurer)
			VALUES ($1, $2)
			ON CONFLICT (doctor_id, insurer) DO NOTHING
		`, id, insurer); err != nil {
			return nil, fmt.Errorf("doctors: insert insurer: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("doctors: commit: %w", err)
	}

	return &Doctor{
		ID:        id.String(),
		Name:      req.Name,
		Specialty: req.Specialty,
		Insurers:  req.Insurers,
		CreatedAt: createdAt,
	}, nil
}

// List returns all doctors with their insurer sets, ordered by specialty then name.
func (r *Repository) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, specialty, created_at
		FROM doctors
		ORDER BY specialty, name
	`)
	if err != nil {
		return nil, fmt.Errorf("doctors: select doctors: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	index := make(map[string]*Doctor)
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("doctors: scan doctor: %w", err)
		}
		d.Insurers = []string{}
		out = append(out, &d)
		index[d.ID] = &d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate doctors: %w", err)
	}

	insRows, err := r.pool.Query(ctx, `
		SELECT doctor_id, insurer
		FROM doctor_insurers
		ORDER BY insurer
	`)
	if err != nil {
		return nil, fmt.Errorf("doctors: select insurers: %w", err)
	}
	defer insRows.Close()

	for insRows.Next() {
		var doctorID, insurer string
		if err := insRows.Scan(&doctorID, &insurer); err != nil {
			return nil, fmt.Errorf("doctors: scan insurer: %w", err)
		}
		if d, ok := index[doctorID]; ok {
			d.Insurers = append(d.Insurers, insurer)
		}
	}
	if err := insRows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate insurers: %w", err)
	}

	return out, nil
}

// AcceptedInsurers returns the insurer set for one doctor.
func (r *Repository) AcceptedInsurers(ctx context.Context, doctorID string) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT insurer
		FROM doctor_insurers
		WHERE doctor_id = $1
	`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("doctors: select accepted insurers: %w", err)
	}
	defer rows.Close()

	accepted := make(map[string]struct{})
	for rows.Next() {
		var insurer string
		if err := rows.Scan(&insurer); err != nil {
			return nil, fmt.Errorf("doctors: scan accepted insurer: %w", err)
		}
		accepted[insurer] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate accepted insurers: %w", err)
	}
	return accepted, nil
}

// ListSpecialties returns distinct specialty values, ordered.
func (r *Repository) ListSpecialties(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT specialty
		FROM doctors
		ORDER BY specialty
	`)
	if err != nil {
		return nil, fmt.Errorf("doctors: select specialties: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("doctors: scan specialty: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate specialties: %w", err)
	}
	return out, nil
}
