package scheduling

import (
	"context"
	"fmt"
	"time"

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

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const apptCols = `id, client_id, staff_id, service_ids, start_time, end_time, status,
	notes, total_price, deposit_paid, is_recurring, has_unread_messages,
	cancellation_reason, canceled_at, created_at, updated_at`

func (r *repoPG) scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.ClientID, &a.StaffID, &a.ServiceIDs, &a.StartTime, &a.EndTime,
		&a.Status, &a.Notes, &a.TotalPrice, &a.DepositPaid, &a.IsRecurring,
		&a.HasUnreadMessages, &a.CancellationReason, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, appt *Appointment) error {
	appt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, client_id, staff_id, service_ids, start_time, end_time,
			status, notes, total_price, deposit_paid, is_recurring, has_unread_messages)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		appt.ID, appt.ClientID, appt.StaffID, appt.ServiceIDs, appt.StartTime, appt.EndTime,
		appt.Status, appt.Notes, appt.TotalPrice, appt.DepositPaid, appt.IsRecurring,
		appt.HasUnreadMessages)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, appt *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET client_id=$2, staff_id=$3, service_ids=$4, start_time=$5,
			end_time=$6, status=$7, notes=$8, total_price=$9, deposit_paid=$10,
			is_recurring=$11, has_unread_messages=$12, cancellation_reason=$13,
			canceled_at=$14, updated_at=NOW()
		WHERE id = $1`,
		appt.ID, appt.ClientID, appt.StaffID, appt.ServiceIDs, appt.StartTime, appt.EndTime,
		appt.Status, appt.Notes, appt.TotalPrice, appt.DepositPaid, appt.IsRecurring,
		appt.HasUnreadMessages, appt.CancellationReason, appt.CanceledAt)
	return err
}

func (r *repoPG) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointment WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE 1=1`
	var args []interface{}
	idx := 1

	addCond := func(cond string, val interface{}) {
		clause := fmt.Sprintf(cond, idx)
		query += clause
		countQuery += clause
		args = append(args, val)
		idx++
	}

	if filter.StartDate != nil {
		addCond(` AND end_time > $%d`, *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCond(` AND start_time < $%d`, *filter.EndDate)
	}
	if filter.ClientID != nil {
		addCond(` AND client_id = $%d`, *filter.ClientID)
	}
	if filter.StaffID != nil {
		addCond(` AND staff_id = $%d`, *filter.StaffID)
	}
	if filter.Status != "" {
		addCond(` AND status = $%d`, filter.Status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY start_time ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *repoPG) FindOverlapping(ctx context.Context, staffID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error) {
	query := `SELECT ` + apptCols + ` FROM appointment
		WHERE staff_id = $1
		  AND status NOT IN ('canceled', 'no-show')
		  AND start_time < $3 AND end_time > $2`
	args := []interface{}{staffID, start, end}
	if excludeID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	query += ` ORDER BY start_time ASC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

func (r *repoPG) ListInRange(ctx context.Context, start, end time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}
