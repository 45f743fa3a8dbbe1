package auditlog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotbook/slotbook/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

var ErrNotFound = errors.New("audit entry not found")

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const auditCols = `id, actor, action, resource, resource_id, details, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Actor, &e.Action, &e.Resource, &e.ResourceID, &e.Details, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO audit_events (id, actor, action, resource, resource_id, details, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.Actor, e.Action, e.Resource, e.ResourceID, e.Details, e.CreatedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, actor, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(r.conn(ctx).QueryRow(ctx,
		`SELECT `+auditCols+` FROM audit_events WHERE id = $1 AND actor = $2`, id, actor))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *repoPG) Search(ctx context.Context, actor uuid.UUID, filter Filter, limit, offset int) ([]*Entry, int, error) {
	where := []string{"actor = $1"}
	args := []interface{}{actor}
	idx := 2

	if filter.Action != "" {
		where = append(where, fmt.Sprintf("action = $%d", idx))
		args = append(args, filter.Action)
		idx++
	}
	if filter.Resource != "" {
		where = append(where, fmt.Sprintf("resource = $%d", idx))
		args = append(args, filter.Resource)
		idx++
	}
	if !filter.From.IsZero() {
		where = append(where, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, filter.From)
		idx++
	}
	if !filter.To.IsZero() {
		where = append(where, fmt.Sprintf("created_at < $%d", idx))
		args = append(args, filter.To)
		idx++
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM audit_events %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf("SELECT %s FROM audit_events %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		auditCols, whereClause, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
