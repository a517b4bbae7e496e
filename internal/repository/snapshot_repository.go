package repository

import (
	"context"
	"encoding/json"
	"time"

	"freelance-trends/internal/database"
	"freelance-trends/internal/domain/trend"

	"github.com/google/uuid"
)

// SnapshotRepository is the append-only snapshot history. Entries are never
// mutated or deleted.
type SnapshotRepository interface {
	Append(ctx context.Context, s trend.Snapshot) error
	Latest(ctx context.Context) (trend.Snapshot, bool, error)
	List(ctx context.Context, limit int) ([]trend.Snapshot, error)
}

type PostgresSnapshotRepository struct {
	db database.DB
}

func NewPostgresSnapshotRepository(db database.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// Append writes the snapshot as a single INSERT so a concurrent Latest
// never observes a partial entry.
func (r *PostgresSnapshotRepository) Append(ctx context.Context, s trend.Snapshot) error {
	skills, err := json.Marshal(s.Skills)
	if err != nil {
		return err
	}
	roles, err := json.Marshal(s.Roles)
	if err != nil {
		return err
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO trend_snapshots (id, window_start, window_end, window_days, total_jobs, skills, roles, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), s.WindowStart.UTC(), s.WindowEnd.UTC(), s.WindowDays, s.TotalJobs, skills, roles, createdAt,
	)
	return err
}

func (r *PostgresSnapshotRepository) Latest(ctx context.Context) (trend.Snapshot, bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT window_start, window_end, window_days, total_jobs, skills, roles, created_at
		 FROM trend_snapshots ORDER BY created_at DESC LIMIT 1`,
	)
	if err != nil {
		return trend.Snapshot{}, false, err
	}
	defer rows.Close()

	out, err := scanSnapshots(rows)
	if err != nil {
		return trend.Snapshot{}, false, err
	}
	if len(out) == 0 {
		return trend.Snapshot{}, false, nil
	}
	return out[0], true, nil
}

func (r *PostgresSnapshotRepository) List(ctx context.Context, limit int) ([]trend.Snapshot, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT window_start, window_end, window_days, total_jobs, skills, roles, created_at
		 FROM trend_snapshots ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

func scanSnapshots(rows database.Rows) ([]trend.Snapshot, error) {
	out := make([]trend.Snapshot, 0)
	for rows.Next() {
		var (
			s      trend.Snapshot
			skills []byte
			roles  []byte
		)
		if err := rows.Scan(&s.WindowStart, &s.WindowEnd, &s.WindowDays, &s.TotalJobs, &skills, &roles, &s.CreatedAt); err != nil {
			return nil, err
		}
		if len(skills) > 0 {
			if err := json.Unmarshal(skills, &s.Skills); err != nil {
				return nil, err
			}
		}
		if len(roles) > 0 {
			if err := json.Unmarshal(roles, &s.Roles); err != nil {
				return nil, err
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
