package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Active   bool   `json:"active"`
}

// Validate valida la forma del proveedor.
func (r CreateSupplierRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Document, validation.Required, validation.Length(5, 20)),
	)
}

// UpdateSupplierRequest entrada para actualizar un proveedor (misma forma que crear).
type UpdateSupplierRequest = CreateSupplierRequest

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
