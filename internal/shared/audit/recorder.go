package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one audited API call. Duration is the wall time of the call;
// Message is only set for error outcomes.
type Entry struct {
	Function   string
	Status     string
	Message    string
	Duration   time.Duration
	HTTPMethod string
	Path       string
	UserAgent  string
}

// Outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder persists audit entries. Implementations are best-effort: callers
// must never let a Record failure affect the request being audited.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// PostgresRecorder writes audit rows into the logs table.
type PostgresRecorder struct {
	pool     *pgxpool.Pool
	disabled bool
}

func NewPostgresRecorder(pool *pgxpool.Pool, disabled bool) *PostgresRecorder {
	return &PostgresRecorder{pool: pool, disabled: disabled}
}

func (r *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	if r.disabled {
		return nil
	}

	const query = `
		INSERT INTO logs (function_name, status, message, execution_time, http_method, path, user_agent)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		e.Function,
		e.Status,
		e.Message,
		e.Duration.Seconds(),
		e.HTTPMethod,
		e.Path,
		truncate(e.UserAgent, 255),
	)
	return err
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
