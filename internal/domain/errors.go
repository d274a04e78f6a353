package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los tres primeros forman la taxonomía que ve el cliente: NotFound, Validation, Conflict.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInsufficientStock es un conflicto: errors.Is(err, ErrConflict) también es true.
	ErrInsufficientStock = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	// ErrInvalidTransition cambio de estado no permitido para una orden.
	ErrInvalidTransition = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
)

// Error es un error de dominio con mensaje legible para el usuario.
// Kind es uno de los sentinelas de arriba; errors.Is(err, Kind) funciona vía Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFoundf construye un ErrNotFound con mensaje.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalidf construye un ErrInvalidInput con mensaje.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Conflictf construye un ErrConflict con mensaje.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockf construye un ErrInsufficientStock con mensaje.
func InsufficientStockf(format string, args ...any) error {
	return &Error{Kind: ErrInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

// Message devuelve el mensaje legible de err (el de *Error si existe).
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// InvalidTransitionf construye un ErrInvalidTransition con mensaje.
func InvalidTransitionf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidTransition, Message: fmt.Sprintf(format, args...)}
}
