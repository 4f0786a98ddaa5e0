package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicateDispatch  = errors.New("la orden ya fue despachada por completo")
	ErrQuantityExceeded   = errors.New("la cantidad excede lo pendiente de la orden")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// InsufficientStockError conserva el stock disponible para que el caller
// reintente con una cantidad corregida. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// QuantityExceededError conserva la cantidad pendiente de despacho de la orden.
// errors.Is(err, ErrQuantityExceeded) == true.
type QuantityExceededError struct {
	Remaining int64
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("la cantidad excede lo pendiente: pendiente %d", e.Remaining)
}

func (e *QuantityExceededError) Is(target error) bool {
	return target == ErrQuantityExceeded
}
