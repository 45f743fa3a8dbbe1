package client

import (
	"context"
	"errors"
	"fmt"

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
}

// ErrNotFound is returned when the client does not exist, was soft-deleted,
// or belongs to another owner.
var ErrNotFound = errors.New("client not found")

// repoPG stores clients with email and phone encrypted at rest. A nil codec
// stores them in plaintext, which is only acceptable in development.
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

const clientCols = `id, owner_id, name, email, phone, notes, created_at, updated_at, deleted_at`

func (r *repoPG) scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Email, err = r.decode(c.Email); err != nil {
		return nil, fmt.Errorf("decode client email: %w", err)
	}
	if c.Phone, err = r.decode(c.Phone); err != nil {
		return nil, fmt.Errorf("decode client phone: %w", err)
	}
	return &c, nil
}

func (r *repoPG) Create(ctx context.Context, c *Client) error {
	email, err := r.encode(c.Email)
	if err != nil {
		return fmt.Errorf("encode client email: %w", err)
	}
	phone, err := r.encode(c.Phone)
	if err != nil {
		return fmt.Errorf("encode client phone: %w", err)
	}

	c.ID = uuid.New()
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO clients (id, owner_id, name, email, phone, notes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.OwnerID, c.Name, email, phone, c.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Client, error) {
	return r.scanClient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+clientCols+` FROM clients WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		id, ownerID))
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Client, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE owner_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+clientCols+` FROM clients WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY name LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, c *Client) error {
	email, err := r.encode(c.Email)
	if err != nil {
		return fmt.Errorf("encode client email: %w", err)
	}
	phone, err := r.encode(c.Phone)
	if err != nil {
		return fmt.Errorf("encode client phone: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE clients SET name=$3, email=$4, phone=$5, notes=$6, updated_at=NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		c.ID, c.OwnerID, c.Name, email, phone, c.Notes)
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
		UPDATE clients SET deleted_at = NOW(), updated_at = NOW()
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
