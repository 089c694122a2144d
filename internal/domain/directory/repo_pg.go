package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowdesk/glowdesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Staff Repository ===========

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewStaffRepoPG(pool *pgxpool.Pool) StaffRepository { return &staffRepoPG{pool: pool} }

func (r *staffRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const staffCols = `id, display_name, email, phone, role, color, is_active, created_at, updated_at`

func (r *staffRepoPG) scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	err := row.Scan(&s.ID, &s.DisplayName, &s.Email, &s.Phone, &s.Role, &s.Color,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *staffRepoPG) Create(ctx context.Context, s *Staff) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO staff (id, display_name, email, phone, role, color, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.DisplayName, s.Email, s.Phone, s.Role, s.Color, s.IsActive)
	return err
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return r.scanStaff(r.conn(ctx).QueryRow(ctx, `SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *staffRepoPG) Update(ctx context.Context, s *Staff) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE staff SET display_name=$2, email=$3, phone=$4, role=$5, color=$6,
			is_active=$7, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.DisplayName, s.Email, s.Phone, s.Role, s.Color, s.IsActive)
	return err
}

func (r *staffRepoPG) List(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+staffCols+` FROM staff ORDER BY display_name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Staff
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}

func (r *staffRepoPG) ListActive(ctx context.Context) ([]*Staff, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+staffCols+` FROM staff WHERE is_active ORDER BY display_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Staff
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

// =========== Client Repository ===========

type clientRepoPG struct{ pool *pgxpool.Pool }

func NewClientRepoPG(pool *pgxpool.Pool) ClientRepository { return &clientRepoPG{pool: pool} }

func (r *clientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const clientCols = `id, name, email, phone, notes, created_at, updated_at`

func (r *clientRepoPG) scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *clientRepoPG) Create(ctx context.Context, c *Client) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO client (id, name, email, phone, notes)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Email, c.Phone, c.Notes)
	return err
}

func (r *clientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	return r.scanClient(r.conn(ctx).QueryRow(ctx, `SELECT `+clientCols+` FROM client WHERE id = $1`, id))
}

func (r *clientRepoPG) Update(ctx context.Context, c *Client) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE client SET name=$2, email=$3, phone=$4, notes=$5, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.Email, c.Phone, c.Notes)
	return err
}

func (r *clientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM client WHERE id = $1`, id)
	return err
}

func (r *clientRepoPG) List(ctx context.Context, search string, limit, offset int) ([]*Client, int, error) {
	query := `SELECT ` + clientCols + ` FROM client WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM client WHERE 1=1`
	var args []interface{}
	idx := 1

	if search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		args = append(args, "%"+search+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
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
	return items, total, nil
}

// =========== Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

func (r *serviceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const serviceCols = `id, name, category, duration_minutes, price, is_active, created_at, updated_at`

func (r *serviceRepoPG) scanService(row pgx.Row) (*Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.DurationMinutes, &s.Price,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *serviceRepoPG) Create(ctx context.Context, s *Service) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO service (id, name, category, duration_minutes, price, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.Name, s.Category, s.DurationMinutes, s.Price, s.IsActive)
	return err
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	return r.scanService(r.conn(ctx).QueryRow(ctx, `SELECT `+serviceCols+` FROM service WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, s *Service) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE service SET name=$2, category=$3, duration_minutes=$4, price=$5,
			is_active=$6, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.Category, s.DurationMinutes, s.Price, s.IsActive)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM service WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context, limit, offset int) ([]*Service, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM service`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+serviceCols+` FROM service ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Service
	for rows.Next() {
		s, err := r.scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
