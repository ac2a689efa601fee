// Package memstore provides in-memory repository implementations, used by
// tests and by local development runs without a database.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
)

type Appointments struct {
	mu    sync.RWMutex
	items map[string]model.Appointment
}

func NewAppointments() *Appointments {
	return &Appointments{items: make(map[string]model.Appointment)}
}

func (s *Appointments) Create(_ context.Context, appt *model.Appointment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	s.items[appt.ID] = *appt
	return appt.ID, nil
}

func (s *Appointments) Get(_ context.Context, id string) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	appt, ok := s.items[id]
	if !ok {
		return nil, fault.NotFound("appointment", id)
	}
	return &appt, nil
}

func (s *Appointments) Update(_ context.Context, appt *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[appt.ID]; !ok {
		return fault.NotFound("appointment", appt.ID)
	}
	s.items[appt.ID] = *appt
	return nil
}

func (s *Appointments) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fault.NotFound("appointment", id)
	}
	delete(s.items, id)
	return nil
}

func (s *Appointments) List(_ context.Context) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	appts := make([]*model.Appointment, 0, len(s.items))
	for _, appt := range s.items {
		a := appt
		appts = append(appts, &a)
	}
	return appts, nil
}

func (s *Appointments) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

type Patients struct {
	mu    sync.RWMutex
	items map[string]model.Patient
}

func NewPatients() *Patients {
	return &Patients{items: make(map[string]model.Patient)}
}

func (s *Patients) Get(_ context.Context, id string) (*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return nil, fault.NotFound("patient", id)
	}
	return &p, nil
}

func (s *Patients) List(_ context.Context) ([]*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patients := make([]*model.Patient, 0, len(s.items))
	for _, p := range s.items {
		cp := p
		patients = append(patients, &cp)
	}
	return patients, nil
}

func (s *Patients) Save(_ context.Context, p *model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.items[p.ID] = *p
	return nil
}

func (s *Patients) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fault.NotFound("patient", id)
	}
	delete(s.items, id)
	return nil
}

type Practitioners struct {
	mu    sync.RWMutex
	items map[string]model.Practitioner
}

func NewPractitioners() *Practitioners {
	return &Practitioners{items: make(map[string]model.Practitioner)}
}

func (s *Practitioners) Get(_ context.Context, id string) (*model.Practitioner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return nil, fault.NotFound("practitioner", id)
	}
	return &p, nil
}

func (s *Practitioners) List(_ context.Context) ([]*model.Practitioner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	practitioners := make([]*model.Practitioner, 0, len(s.items))
	for _, p := range s.items {
		cp := p
		practitioners = append(practitioners, &cp)
	}
	return practitioners, nil
}

func (s *Practitioners) Save(_ context.Context, p *model.Practitioner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.items[p.ID] = *p
	return nil
}

func (s *Practitioners) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fault.NotFound("practitioner", id)
	}
	delete(s.items, id)
	return nil
}

type Services struct {
	mu    sync.RWMutex
	items map[string]model.Service
}

func NewServices() *Services {
	return &Services{items: make(map[string]model.Service)}
}

func (s *Services) Get(_ context.Context, id string) (*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.items[id]
	if !ok {
		return nil, fault.NotFound("service", id)
	}
	return &svc, nil
}

func (s *Services) List(_ context.Context) ([]*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	services := make([]*model.Service, 0, len(s.items))
	for _, svc := range s.items {
		cp := svc
		services = append(services, &cp)
	}
	return services, nil
}

func (s *Services) Save(_ context.Context, svc *model.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	s.items[svc.ID] = *svc
	return nil
}

func (s *Services) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fault.NotFound("service", id)
	}
	delete(s.items, id)
	return nil
}

type Inventory struct {
	mu    sync.RWMutex
	items map[string]model.InventoryItem
}

func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]model.InventoryItem)}
}

func (s *Inventory) Get(_ context.Context, id string) (*model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fault.NotFound("inventory item", id)
	}
	return &item, nil
}

func (s *Inventory) List(_ context.Context) ([]*model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*model.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		cp := item
		items = append(items, &cp)
	}
	return items, nil
}

func (s *Inventory) Save(_ context.Context, item *model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.items[item.ID] = *item
	return nil
}

func (s *Inventory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fault.NotFound("inventory item", id)
	}
	delete(s.items, id)
	return nil
}
