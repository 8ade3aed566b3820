package dto

import validation "github.com/go-ozzo/ozzo-validation"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error de validación con detalle campo -> mensajes.
type ValidationErrorResponse struct {
	Code   string              `json:"code"`
	Errors map[string][]string `json:"errors"`
}

// FieldErrors convierte los errores de ozzo-validation al mapa campo -> mensajes.
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)
	if errs, ok := err.(validation.Errors); ok {
		for field, ferr := range errs {
			out[field] = append(out[field], ferr.Error())
		}
		return out
	}
	if err != nil {
		out[""] = append(out[""], err.Error())
	}
	return out
}
