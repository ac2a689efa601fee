package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/libs/db"
)

type PgAppointments struct {
	pool *db.Pool
}

func NewPgAppointments(pool *db.Pool) *PgAppointments {
	return &PgAppointments{pool: pool}
}

const apptColumns = `
	id, patient_id, practitioner_id, service_id,
	starts_at, duration_min, estimated_end_at,
	state, reason, emergency, home_visit,
	price_cents, paid,
	confirmed_at, attention_start, attention_end, cancelled_at,
	real_duration_min,
	COALESCE(cancel_reason, ''), COALESCE(cancelled_by, ''),
	rating, COALESCE(rating_comment, ''),
	created_at, updated_at`

func (r *PgAppointments) Create(ctx context.Context, appt *model.Appointment) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments
			(patient_id, practitioner_id, service_id, starts_at, duration_min, estimated_end_at,
			 state, reason, emergency, home_visit, price_cents, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, appt.PatientID, appt.PractitionerID, appt.ServiceID, appt.StartsAt, appt.DurationMin,
		appt.EstimatedEndAt, appt.State, appt.Reason, appt.Emergency, appt.HomeVisit,
		appt.PriceCents, appt.Paid, appt.CreatedAt, appt.UpdatedAt).Scan(&id)
	if err != nil {
		return "", err
	}
	appt.ID = id
	return id, nil
}

func (r *PgAppointments) Get(ctx context.Context, id string) (*model.Appointment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+apptColumns+` FROM appointments WHERE id = $1`, id)
	appt, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.NotFound("appointment", id)
	}
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (r *PgAppointments) Update(ctx context.Context, appt *model.Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET starts_at = $2,
			duration_min = $3,
			estimated_end_at = $4,
			state = $5,
			reason = $6,
			emergency = $7,
			home_visit = $8,
			price_cents = $9,
			paid = $10,
			confirmed_at = $11,
			attention_start = $12,
			attention_end = $13,
			cancelled_at = $14,
			real_duration_min = $15,
			cancel_reason = $16,
			cancelled_by = $17,
			rating = $18,
			rating_comment = $19,
			updated_at = $20
		WHERE id = $1
	`, appt.ID, appt.StartsAt, appt.DurationMin, appt.EstimatedEndAt, appt.State, appt.Reason,
		appt.Emergency, appt.HomeVisit, appt.PriceCents, appt.Paid,
		appt.ConfirmedAt, appt.AttentionStart, appt.AttentionEnd, appt.CancelledAt,
		appt.RealDurationMin, appt.CancelReason, appt.CancelledBy,
		appt.Rating, appt.RatingComment, appt.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.NotFound("appointment", appt.ID)
	}
	return nil
}

func (r *PgAppointments) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.NotFound("appointment", id)
	}
	return nil
}

func (r *PgAppointments) List(ctx context.Context) ([]*model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+apptColumns+` FROM appointments ORDER BY starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []*model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var appt model.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.PractitionerID,
		&appt.ServiceID,
		&appt.StartsAt,
		&appt.DurationMin,
		&appt.EstimatedEndAt,
		&appt.State,
		&appt.Reason,
		&appt.Emergency,
		&appt.HomeVisit,
		&appt.PriceCents,
		&appt.Paid,
		&appt.ConfirmedAt,
		&appt.AttentionStart,
		&appt.AttentionEnd,
		&appt.CancelledAt,
		&appt.RealDurationMin,
		&appt.CancelReason,
		&appt.CancelledBy,
		&appt.Rating,
		&appt.RatingComment,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}
