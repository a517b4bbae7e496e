package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"freelance-trends/internal/database"
	"freelance-trends/internal/domain/job"

	"github.com/google/uuid"
)

type JobFilter struct {
	Title   string
	Company string
	Tags    []string
	Limit   int
}

type JobStats struct {
	TotalJobs int
	Jobs24h   int
	Jobs7d    int
	Companies int
	TopSkills []string
}

type JobRepository interface {
	ListWindow(ctx context.Context, start, end time.Time) ([]job.Posting, error)
	ListFiltered(ctx context.Context, f JobFilter) ([]job.Posting, error)
	UpsertPostings(ctx context.Context, postings []job.Posting) (int, error)
	Stats(ctx context.Context) (JobStats, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, company, location, tags, source_url, posted_at, created_at`

// ListWindow returns postings in the half-open interval [start, end).
func (r *PostgresJobRepository) ListWindow(ctx context.Context, start, end time.Time) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE posted_at >= $1 AND posted_at < $2 ORDER BY posted_at DESC`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

func (r *PostgresJobRepository) ListFiltered(ctx context.Context, f JobFilter) ([]job.Posting, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := make([]any, 0, 4)
	idx := 1

	if t := strings.TrimSpace(f.Title); t != "" {
		query += ` AND title ILIKE '%' || $` + itoa(idx) + ` || '%'`
		args = append(args, t)
		idx++
	}
	if c := strings.TrimSpace(f.Company); c != "" {
		query += ` AND company ILIKE '%' || $` + itoa(idx) + ` || '%'`
		args = append(args, c)
		idx++
	}
	if tags := job.NormalizeTags(f.Tags); len(tags) > 0 {
		query += ` AND tags && $` + itoa(idx)
		args = append(args, tags)
		idx++
	}

	query += ` ORDER BY posted_at DESC LIMIT $` + itoa(idx)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

// UpsertPostings inserts postings keyed by source URL and reports how many
// were new. Duplicates are deduplicated here, not by callers.
func (r *PostgresJobRepository) UpsertPostings(ctx context.Context, postings []job.Posting) (int, error) {
	added := 0
	for _, p := range postings {
		if strings.TrimSpace(p.SourceURL) == "" {
			continue
		}
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		n, err := r.db.Exec(ctx,
			`INSERT INTO jobs (id, title, company, location, tags, source_url, posted_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (source_url) DO NOTHING`,
			id, p.Title, p.Company, p.Location, p.NormalizedTags(), p.SourceURL, p.PostedAt.UTC(),
		)
		if err != nil {
			return added, err
		}
		added += int(n)
	}
	return added, nil
}

func (r *PostgresJobRepository) Stats(ctx context.Context) (JobStats, error) {
	var s JobStats
	now := time.Now().UTC()

	row := r.db.QueryRow(ctx, `SELECT
		count(*),
		count(*) FILTER (WHERE posted_at >= $1),
		count(*) FILTER (WHERE posted_at >= $2),
		count(DISTINCT company)
	FROM jobs`, now.Add(-24*time.Hour), now.Add(-7*24*time.Hour))
	if err := row.Scan(&s.TotalJobs, &s.Jobs24h, &s.Jobs7d, &s.Companies); err != nil {
		return JobStats{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT t.tag FROM jobs, unnest(tags) AS t(tag) GROUP BY t.tag ORDER BY count(*) DESC, t.tag ASC LIMIT 5`,
	)
	if err != nil {
		return JobStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return JobStats{}, err
		}
		s.TopSkills = append(s.TopSkills, tag)
	}
	if err := rows.Err(); err != nil {
		return JobStats{}, err
	}
	return s, nil
}

func scanPostings(rows database.Rows) ([]job.Posting, error) {
	out := make([]job.Posting, 0)
	for rows.Next() {
		var p job.Posting
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.Tags, &p.SourceURL, &p.PostedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
