package entity

import "time"

// Supplier proveedor registrado (recurso CRUD protegido por token).
type Supplier struct {
	ID        string
	Name      string
	Document  string // NIT / documento fiscal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
