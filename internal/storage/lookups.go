package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/libs/db"
)

type PgPatients struct {
	pool *db.Pool
}

func NewPgPatients(pool *db.Pool) *PgPatients {
	return &PgPatients{pool: pool}
}

func (r *PgPatients) Get(ctx context.Context, id string) (*model.Patient, error) {
	var p model.Patient
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, species, owner_name, COALESCE(owner_email, ''), COALESCE(owner_phone, '')
		FROM patients
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Species, &p.OwnerName, &p.OwnerEmail, &p.OwnerPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.NotFound("patient", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgPatients) List(ctx context.Context) ([]*model.Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, species, owner_name, COALESCE(owner_email, ''), COALESCE(owner_phone, '')
		FROM patients
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []*model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.OwnerName, &p.OwnerEmail, &p.OwnerPhone); err != nil {
			return nil, err
		}
		patients = append(patients, &p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return patients, nil
}

func (r *PgPatients) Save(ctx context.Context, p *model.Patient) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, species, owner_name, owner_email, owner_phone)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = $2, species = $3, owner_name = $4, owner_email = $5, owner_phone = $6
		RETURNING id
	`, p.ID, p.Name, p.Species, p.OwnerName, p.OwnerEmail, p.OwnerPhone).Scan(&p.ID)
}

func (r *PgPatients) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.NotFound("patient", id)
	}
	return nil
}

type PgPractitioners struct {
	pool *db.Pool
}

func NewPgPractitioners(pool *db.Pool) *PgPractitioners {
	return &PgPractitioners{pool: pool}
}

func (r *PgPractitioners) Get(ctx context.Context, id string) (*model.Practitioner, error) {
	var p model.Practitioner
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(email, ''), active
		FROM practitioners
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Email, &p.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.NotFound("practitioner", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgPractitioners) List(ctx context.Context) ([]*model.Practitioner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(email, ''), active
		FROM practitioners
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var practitioners []*model.Practitioner
	for rows.Next() {
		var p model.Practitioner
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Active); err != nil {
			return nil, err
		}
		practitioners = append(practitioners, &p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return practitioners, nil
}

func (r *PgPractitioners) Save(ctx context.Context, p *model.Practitioner) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO practitioners (id, name, email, active)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = $2, email = $3, active = $4
		RETURNING id
	`, p.ID, p.Name, p.Email, p.Active).Scan(&p.ID)
}

func (r *PgPractitioners) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM practitioners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.NotFound("practitioner", id)
	}
	return nil
}

type PgServices struct {
	pool *db.Pool
}

func NewPgServices(pool *db.Pool) *PgServices {
	return &PgServices{pool: pool}
}

func (r *PgServices) Get(ctx context.Context, id string) (*model.Service, error) {
	var s model.Service
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, base_price_cents, duration_min, active
		FROM services
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.BasePriceCents, &s.DurationMin, &s.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.NotFound("service", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgServices) List(ctx context.Context) ([]*model.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, base_price_cents, duration_min, active
		FROM services
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.BasePriceCents, &s.DurationMin, &s.Active); err != nil {
			return nil, err
		}
		services = append(services, &s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return services, nil
}

func (r *PgServices) Save(ctx context.Context, s *model.Service) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO services (id, name, base_price_cents, duration_min, active)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = $2, base_price_cents = $3, duration_min = $4, active = $5
		RETURNING id
	`, s.ID, s.Name, s.BasePriceCents, s.DurationMin, s.Active).Scan(&s.ID)
}

func (r *PgServices) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.NotFound("service", id)
	}
	return nil
}
