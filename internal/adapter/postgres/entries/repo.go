// Package entries implements the session store backend on top of the
// session_entries table.
package entries

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres"
)

const table = "session_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type entryRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// Repo stores session entries in PostgreSQL. Every call uses the
// transaction from ctx when one is present.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new session entries repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, now: time.Now}
}

func ref(profileID uuid.UUID, key string) string {
	return profileID.String() + "/" + key
}

func (r *Repo) Read(ctx context.Context, profileID uuid.UUID, key string) (string, error) {
	query, args, err := psql.
		Select("value").
		From(table).
		Where(sq.Eq{"profile_id": profileID, "key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build read query: %w", err)
	}

	var value string
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", postgres.MapError(err, "session entry", ref(profileID, key))
	}
	return value, nil
}

func (r *Repo) Write(ctx context.Context, profileID uuid.UUID, key, value string) error {
	query, args, err := psql.
		Insert(table).
		Columns("profile_id", "key", "value", "updated_at").
		Values(profileID, key, value, r.now().UTC()).
		Suffix("ON CONFLICT (profile_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build write query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "session entry", ref(profileID, key))
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"profile_id": profileID, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "session entry", ref(profileID, key))
	}
	return nil
}

func (r *Repo) Snapshot(ctx context.Context, profileID uuid.UUID) (map[string]string, error) {
	query, args, err := psql.
		Select("key", "value").
		From(table).
		Where(sq.Eq{"profile_id": profileID}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "session namespace", profileID.String())
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// DeleteStale removes every profile namespace whose newest entry is older
// than threshold and returns the number of rows deleted.
func (r *Repo) DeleteStale(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := psql.
		Delete(table).
		Where(sq.Expr(
			"profile_id IN (SELECT profile_id FROM "+table+" GROUP BY profile_id HAVING max(updated_at) < ?)",
			threshold,
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete stale query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale profiles: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountStale returns how many profile namespaces DeleteStale would remove.
func (r *Repo) CountStale(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := psql.
		Select("count(*)").
		FromSelect(
			psql.Select("profile_id").
				From(table).
				GroupBy("profile_id").
				Having("max(updated_at) < ?", threshold),
			"stale",
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count stale query: %w", err)
	}

	var n int64
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &n, query, args...); err != nil {
		return 0, fmt.Errorf("count stale profiles: %w", err)
	}
	return n, nil
}
