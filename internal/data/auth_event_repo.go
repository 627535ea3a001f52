package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/partyhub/party-ui-api/internal/data/pgxutil"
	apperrors "github.com/partyhub/party-ui-api/internal/errors"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// AuthEventRecord is one persisted row of the auth activity log.
type AuthEventRecord struct {
	ID          uuid.UUID `db:"id"`
	Kind        string    `db:"kind"`
	Role        string    `db:"role"`
	PrincipalID int64     `db:"principal_id"`
	Detail      string    `db:"detail"`
	CreatedAt   time.Time `db:"created_at"`
}

// AuthEventRepo persists auth activity to Postgres. It implements
// ports.AuthEventRecorder.
type AuthEventRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAuthEventRepo creates a new AuthEventRepo with real time provider.
func NewAuthEventRepo(db *sql.DB) *AuthEventRepo {
	return &AuthEventRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAuthEventRepoWithTimeProvider creates a new AuthEventRepo with a custom time provider (useful for tests).
func NewAuthEventRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AuthEventRepo {
	return &AuthEventRepo{DB: db, timeProvider: tp}
}

// Record inserts one auth event.
func (r *AuthEventRepo) Record(ctx context.Context, event ports.AuthEvent) error {
	if event.Kind == "" {
		return apperrors.ValidationField("kind", "event kind is required")
	}

	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO auth_events (id, kind, role, principal_id, detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			uuid.New(),
			string(event.Kind),
			string(event.Role),
			event.PrincipalID,
			event.Detail,
			r.timeProvider.Now().UTC(),
		)
		return err
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// ListRecent returns the newest events, most recent first.
func (r *AuthEventRepo) ListRecent(ctx context.Context, limit int) ([]AuthEventRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []AuthEventRecord
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, kind, role, principal_id, detail, created_at
			FROM auth_events
			ORDER BY created_at DESC, id
			LIMIT $1
		`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[AuthEventRecord])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// CountByKind returns how many events of each kind were recorded since the cutoff.
func (r *AuthEventRepo) CountByKind(ctx context.Context, since time.Time) (map[string]int64, error) {
	counts := make(map[string]int64)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT kind, COUNT(*) FROM auth_events
			WHERE created_at >= $1
			GROUP BY kind
		`, since.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var kind string
			var n int64
			if scanErr := rows.Scan(&kind, &n); scanErr != nil {
				return scanErr
			}
			counts[kind] = n
		}
		return rows.Err()
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return counts, nil
}

// PurgeOlderThan deletes events recorded before the cutoff and reports how
// many rows went away. Used by the retention sweep.
func (r *AuthEventRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM auth_events WHERE created_at < $1`, cutoff.UTC())
		if err != nil {
			return err
		}
		purged = tag.RowsAffected()
		return nil
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return purged, nil
}
