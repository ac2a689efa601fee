// Package storage defines the repository contracts the scheduling core
// consumes, with Postgres implementations alongside and in-memory
// implementations under memstore.
package storage

import (
	"context"

	"github.com/mfigueredo/vetsched/internal/model"
)

type AppointmentRepo interface {
	// Create persists a new appointment and returns the assigned identity.
	Create(ctx context.Context, appt *model.Appointment) (string, error)
	Get(ctx context.Context, id string) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.Appointment, error)
}

type PatientRepo interface {
	Get(ctx context.Context, id string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Save(ctx context.Context, p *model.Patient) error
	Delete(ctx context.Context, id string) error
}

type PractitionerRepo interface {
	Get(ctx context.Context, id string) (*model.Practitioner, error)
	List(ctx context.Context) ([]*model.Practitioner, error)
	Save(ctx context.Context, p *model.Practitioner) error
	Delete(ctx context.Context, id string) error
}

type ServiceRepo interface {
	Get(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	Save(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, id string) error
}

type InventoryRepo interface {
	Get(ctx context.Context, id string) (*model.InventoryItem, error)
	List(ctx context.Context) ([]*model.InventoryItem, error)
	Save(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id string) error
}
