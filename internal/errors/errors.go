// Package errors provides the error taxonomy for the Chenchen API.
// All service-layer errors are either an AppError sentinel (not found,
// conflict, referential integrity) or a ValidationError carrying every
// field-level failure of a submission at once.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Autenticación requerida", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Email o contraseña inválidos", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Entrada inválida", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Ocurrió un error interno", StatusCode: http.StatusInternalServerError}
)

// Not-found errors, one per entity.
var (
	ErrUsuarioNotFound             = &AppError{Code: "USUARIO_NOT_FOUND", Message: "Usuario no encontrado", StatusCode: http.StatusNotFound}
	ErrCuentaNotFound              = &AppError{Code: "CUENTA_NOT_FOUND", Message: "Cuenta no encontrada", StatusCode: http.StatusNotFound}
	ErrSubcuentaNotFound           = &AppError{Code: "SUBCUENTA_NOT_FOUND", Message: "Subcuenta no encontrada", StatusCode: http.StatusNotFound}
	ErrCategoriaNotFound           = &AppError{Code: "CATEGORIA_NOT_FOUND", Message: "Categoría no encontrada", StatusCode: http.StatusNotFound}
	ErrTransaccionNotFound         = &AppError{Code: "TRANSACCION_NOT_FOUND", Message: "Transacción no encontrada", StatusCode: http.StatusNotFound}
	ErrDeudaNotFound               = &AppError{Code: "DEUDA_NOT_FOUND", Message: "Deuda no encontrada", StatusCode: http.StatusNotFound}
	ErrMovimientoDeudaNotFound     = &AppError{Code: "MOVIMIENTO_DEUDA_NOT_FOUND", Message: "Movimiento de deuda no encontrado", StatusCode: http.StatusNotFound}
	ErrMovimientoSubcuentaNotFound = &AppError{Code: "MOVIMIENTO_SUBCUENTA_NOT_FOUND", Message: "Movimiento de subcuenta no encontrado", StatusCode: http.StatusNotFound}
	ErrCompromisoNotFound          = &AppError{Code: "COMPROMISO_NOT_FOUND", Message: "Compromiso recurrente no encontrado", StatusCode: http.StatusNotFound}
	ErrPlanItemNotFound            = &AppError{Code: "PLAN_ITEM_NOT_FOUND", Message: "Item del plan quincenal no encontrado", StatusCode: http.StatusNotFound}
	ErrGastoPlanificadoNotFound    = &AppError{Code: "GASTO_PLANIFICADO_NOT_FOUND", Message: "Gasto planificado no encontrado", StatusCode: http.StatusNotFound}
)

// Conflict errors (uniqueness violations).
var (
	ErrDuplicateEmail      = &AppError{Code: "DUPLICATE_EMAIL", Message: "El email ya está registrado", StatusCode: http.StatusConflict}
	ErrDuplicateCuentaName = &AppError{Code: "DUPLICATE_CUENTA_NAME", Message: "Ya existe una cuenta con ese nombre para este usuario", StatusCode: http.StatusConflict}
)

// FieldError describes a single field-level rule violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every rule violation found while validating one
// entity submission, so a client sees all problems at once instead of only
// the first.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validación fallida"
	}
	msg := e.Fields[0].Field + ": " + e.Fields[0].Message
	if len(e.Fields) > 1 {
		return msg + " (y otros errores)"
	}
	return msg
}

// Add appends a field violation. It is a no-op when message is empty, so
// callers can feed it rule results directly.
func (e *ValidationError) Add(field, message string) {
	if message == "" {
		return
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// Has reports whether a violation was recorded for the given field.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// AsAppError converts the validation error into the AppError shape used by
// the HTTP layer, or returns nil when no violation was recorded.
func (e *ValidationError) AsAppError() *AppError {
	if !e.HasErrors() {
		return nil
	}
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    e.Error(),
		StatusCode: http.StatusBadRequest,
		Internal:   e,
	}
}

// ReferentialIntegrityError reports a delete blocked by RESTRICT dependents.
// It names the blocking relationship so the caller can act on it.
type ReferentialIntegrityError struct {
	Entity    string `json:"entity"`
	Dependent string `json:"dependent"`
	Count     int64  `json:"count"`
}

// Error implements the error interface.
func (e *ReferentialIntegrityError) Error() string {
	return "no se puede eliminar " + e.Entity + ": existen registros dependientes en " + e.Dependent
}

// AsAppError converts the referential error into the AppError shape.
func (e *ReferentialIntegrityError) AsAppError() *AppError {
	return &AppError{
		Code:       "REFERENTIAL_INTEGRITY",
		Message:    e.Error(),
		StatusCode: http.StatusConflict,
		Internal:   e,
	}
}
