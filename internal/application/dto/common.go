package dto

import "github.com/tu-usuario/facturacion-api/internal/domain"

// APIResponse es el sobre común de todas las respuestas JSON de la API:
// {success, data?, message?, error?, errors?, count?}.
type APIResponse struct {
	Success bool               `json:"success"`
	Data    interface{}        `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Count   *int               `json:"count,omitempty"`
}

// OK respuesta exitosa con datos.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// OKList respuesta exitosa de listado con count.
func OKList(data interface{}, count int) APIResponse {
	return APIResponse{Success: true, Data: data, Count: &count}
}

// OKMessage respuesta exitosa con mensaje y datos opcionales.
func OKMessage(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Fail respuesta de error con mensaje para el usuario.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}

// FailDetail respuesta de error con detalle técnico (solo fuera de producción).
func FailDetail(message, detail string) APIResponse {
	return APIResponse{Success: false, Message: message, Error: detail}
}

// FailValidation respuesta 400 con la lista de errores campo a campo.
func FailValidation(fields []domain.FieldError) APIResponse {
	return APIResponse{Success: false, Errors: fields}
}
