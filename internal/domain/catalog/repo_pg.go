package catalog

import (
	"context"
	"errors"

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

// ErrNotFound is returned when the service does not exist or belongs to
// another owner.
var ErrNotFound = errors.New("service not found")

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const serviceCols = `id, owner_id, name, duration_min, price_cents, active, created_at, updated_at`

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.DurationMin, &s.PriceCents,
		&s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Create(ctx context.Context, s *Service) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO services (id, owner_id, name, duration_min, price_cents, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.OwnerID, s.Name, s.DurationMin, s.PriceCents, s.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Service, error) {
	return scanService(r.conn(ctx).QueryRow(ctx,
		`SELECT `+serviceCols+` FROM services WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit, offset int) ([]*Service, int, error) {
	where := `WHERE owner_id = $1`
	if activeOnly {
		where += ` AND active`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM services `+where, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+serviceCols+` FROM services `+where+` ORDER BY name LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, s *Service) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE services SET name=$3, duration_min=$4, price_cents=$5, active=$6, updated_at=NOW()
		WHERE id = $1 AND owner_id = $2`,
		s.ID, s.OwnerID, s.Name, s.DurationMin, s.PriceCents, s.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM services WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) CountAppointments(ctx context.Context, ownerID, serviceID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE owner_id = $1 AND service_id = $2`,
		ownerID, serviceID).Scan(&count)
	return count, err
}
