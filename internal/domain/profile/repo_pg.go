package profile

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

// ErrNotFound is returned when the owner has no profile saved.
var ErrNotFound = errors.New("availability profile not found")

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const profileCols = `owner_id, weekdays, start_time, end_time, slot_duration_min, lead_time_hours, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	var weekdays []int32
	err := row.Scan(&p.OwnerID, &weekdays, &p.StartTime, &p.EndTime,
		&p.SlotDurationMin, &p.LeadTimeHours, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Weekdays = make([]int, len(weekdays))
	for i, d := range weekdays {
		p.Weekdays[i] = int(d)
	}
	return &p, nil
}

func (r *repoPG) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	p, err := scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM availability_profiles WHERE owner_id = $1`, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) Save(ctx context.Context, p *Profile) error {
	weekdays := make([]int32, len(p.Weekdays))
	for i, d := range p.Weekdays {
		weekdays[i] = int32(d)
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO availability_profiles (owner_id, weekdays, start_time, end_time, slot_duration_min, lead_time_hours)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (owner_id) DO UPDATE SET
			weekdays = EXCLUDED.weekdays,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration_min = EXCLUDED.slot_duration_min,
			lead_time_hours = EXCLUDED.lead_time_hours,
			updated_at = NOW()`,
		p.OwnerID, weekdays, p.StartTime, p.EndTime, p.SlotDurationMin, p.LeadTimeHours)
	return err
}
