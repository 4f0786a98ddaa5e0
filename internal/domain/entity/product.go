package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio de stock. Cada movimiento sobre current_stock queda
// registrado con el tipo y la cantidad del último cambio.
const (
	ChangeTypeIncrease = "increase"
	ChangeTypeDecrease = "decrease"
)

// Product representa un artículo almacenable. CurrentStock nunca es negativo:
// la verificación se hace antes de mutar, no recortando después.
type Product struct {
	ID              string
	AdminID         string // tenant propietario
	SKU             string
	Name            string
	UnitPrice       decimal.Decimal
	CurrentStock    int64
	ChangeType      string // increase | decrease (último cambio)
	QuantityChanged int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
