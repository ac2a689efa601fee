package model

import "time"

// Patient is the animal receiving care. Contact details belong to the owner
// and are what notification channels deliver to.
type Patient struct {
	ID         string
	Name       string
	Species    string
	OwnerName  string
	OwnerEmail string
	OwnerPhone string
}

type Practitioner struct {
	ID     string
	Name   string
	Email  string
	Active bool
}

// Service is a billable clinic service (consultation, surgery, vaccination).
type Service struct {
	ID             string
	Name           string
	BasePriceCents int64
	DurationMin    int
	Active         bool
}

type InventoryItem struct {
	ID          string
	Name        string
	Quantity    int
	MinQuantity int
	UpdatedAt   time.Time
}
