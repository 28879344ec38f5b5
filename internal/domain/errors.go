package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrAlreadyAuthorized       = errors.New("el movimiento ya está autorizado")
	ErrUnsupportedMovementType = errors.New("tipo de movimiento no soportado")
	ErrNotCancellable          = errors.New("el movimiento no puede ser cancelado")
	ErrEditNotAllowed          = errors.New("no se puede editar un movimiento autorizado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
)

// DetailError envuelve el error de un detalle concreto durante la autorización
// o cancelación de un movimiento. Index es la posición del detalle (base 0) en
// el orden almacenado. La operación completa se revierte: no hay efectos parciales.
type DetailError struct {
	Index int
	Err   error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("detalle %d: %v", e.Index, e.Err)
}

// Unwrap permite comparar contra los centinelas con errors.Is.
func (e *DetailError) Unwrap() error { return e.Err }
