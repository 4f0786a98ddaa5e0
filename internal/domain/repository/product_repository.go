package repository

import (
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
)

// ProductRepository puerto de persistencia para productos y su contador de stock.
// Los Get* devuelven el registro por id; el caller autoriza contra el tenant
// con tenant.Authorize. Las escrituras componen el Scope en el predicado.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// la transacción en curso: serializa reservas concurrentes sobre el mismo stock.
	GetForUpdate(id string) (*entity.Product, error)
	// ApplyStockChange aplica delta a current_stock de forma condicional: la
	// sentencia solo muta si el resultado no queda negativo, y registra
	// change_type/quantity_changed. Devuelve ErrInsufficientStock si no aplica.
	ApplyStockChange(scope tenant.Scope, id string, delta int64) (*entity.Product, error)
}
