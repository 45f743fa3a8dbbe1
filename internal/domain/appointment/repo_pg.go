package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotbook/slotbook/internal/platform/crypto"
	"github.com/slotbook/slotbook/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// repoPG stores appointments with freeform contact fields encrypted at
// rest. A nil codec stores them in plaintext, acceptable only in
// development.
type repoPG struct {
	pool  *pgxpool.Pool
	codec *crypto.Codec
}

func NewRepoPG(pool *pgxpool.Pool, codec *crypto.Codec) Repository {
	return &repoPG{pool: pool, codec: codec}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) encode(value string) (string, error) {
	if r.codec == nil || value == "" {
		return value, nil
	}
	return r.codec.Encrypt(value)
}

func (r *repoPG) decode(value string) (string, error) {
	if r.codec == nil || value == "" {
		return value, nil
	}
	return r.codec.Decrypt(value)
}

const apptCols = `id, owner_id, client_id, client_name, client_email, client_phone,
	service_id, service_name, duration_min, price_cents, start_time, status, notes,
	created_at, updated_at, deleted_at`

func (r *repoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.OwnerID, &a.ClientID, &a.ClientName, &a.ClientEmail, &a.ClientPhone,
		&a.ServiceID, &a.ServiceName, &a.DurationMin, &a.PriceCents, &a.StartTime, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.ClientEmail, err = r.decode(a.ClientEmail); err != nil {
		return nil, fmt.Errorf("decode client email: %w", err)
	}
	if a.ClientPhone, err = r.decode(a.ClientPhone); err != nil {
		return nil, fmt.Errorf("decode client phone: %w", err)
	}
	return &a, nil
}

// lockOwner takes a transaction-scoped advisory lock keyed on the owner.
// Row locks alone cannot serialize two writers racing for the same free
// interval: neither sees a conflicting row, so neither blocks. The advisory
// lock forces one writer through the conflict check at a time; it is
// released automatically at commit or rollback.
func lockOwner(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, ownerID)
	return err
}

// isExclusionViolation reports whether err is the appointments_no_overlap
// constraint firing. The constraint is the database-level backstop for the
// advisory lock; either way the caller surfaces ErrTimeConflict.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

// lockConflicts locks every stored row whose occupied interval overlaps
// [start, end) and reports whether any exists. Must run inside the same
// transaction as the write that follows, after lockOwner has been taken.
func lockConflicts(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT id FROM appointments
		WHERE owner_id = $1
		  AND deleted_at IS NULL
		  AND status <> 'CANCELLED'
		  AND start_time < $2
		  AND start_time + make_interval(mins => duration_min) > $3`
	args := []interface{}{ownerID, end, start}
	if excludeID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	query += ` FOR UPDATE`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	conflict := rows.Next()
	rows.Close()
	return conflict, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	email, err := r.encode(a.ClientEmail)
	if err != nil {
		return fmt.Errorf("encode client email: %w", err)
	}
	phone, err := r.encode(a.ClientPhone)
	if err != nil {
		return fmt.Errorf("encode client phone: %w", err)
	}

	tx, err := r.conn(ctx).Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockOwner(ctx, tx, a.OwnerID); err != nil {
		return err
	}
	conflict, err := lockConflicts(ctx, tx, a.OwnerID, a.StartTime, a.EndTime(), nil)
	if err != nil {
		return err
	}
	if conflict {
		return ErrTimeConflict
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO appointments (id, owner_id, client_id, client_name, client_email, client_phone,
			service_id, service_name, duration_min, price_cents, start_time, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		a.ID, a.OwnerID, a.ClientID, a.ClientName, email, phone,
		a.ServiceID, a.ServiceName, a.DurationMin, a.PriceCents, a.StartTime, a.Status, a.Notes)
	if isExclusionViolation(err) {
		return ErrTimeConflict
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		id, ownerID))
}

func (r *repoPG) ListForDay(ctx context.Context, ownerID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]*Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Overlap, not containment: an appointment started the previous day can
	// spill past midnight and still occupy part of this one.
	query := `SELECT ` + apptCols + ` FROM appointments
		WHERE owner_id = $1
		  AND deleted_at IS NULL
		  AND status <> 'CANCELLED'
		  AND start_time < $2
		  AND start_time + make_interval(mins => duration_min) > $3`
	args := []interface{}{ownerID, dayEnd, dayStart}
	if excludeID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	query += ` ORDER BY start_time`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) ListRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE owner_id = $1 AND deleted_at IS NULL AND start_time >= $2 AND start_time < $3`,
		ownerID, from, to).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE owner_id = $1 AND deleted_at IS NULL AND start_time >= $2 AND start_time < $3
		ORDER BY start_time DESC LIMIT $4 OFFSET $5`,
		ownerID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	email, err := r.encode(a.ClientEmail)
	if err != nil {
		return fmt.Errorf("encode client email: %w", err)
	}
	phone, err := r.encode(a.ClientPhone)
	if err != nil {
		return fmt.Errorf("encode client phone: %w", err)
	}

	tx, err := r.conn(ctx).Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockOwner(ctx, tx, a.OwnerID); err != nil {
		return err
	}
	conflict, err := lockConflicts(ctx, tx, a.OwnerID, a.StartTime, a.EndTime(), &a.ID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrTimeConflict
	}

	tag, err := tx.Exec(ctx, `
		UPDATE appointments SET client_id=$3, client_name=$4, client_email=$5, client_phone=$6,
			service_id=$7, service_name=$8, duration_min=$9, price_cents=$10,
			start_time=$11, status=$12, notes=$13, updated_at=NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		a.ID, a.OwnerID, a.ClientID, a.ClientName, email, phone,
		a.ServiceID, a.ServiceName, a.DurationMin, a.PriceCents,
		a.StartTime, a.Status, a.Notes)
	if isExclusionViolation(err) {
		return ErrTimeConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *repoPG) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET status = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		id, ownerID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
