package repository

import (
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
)

// SalesOrderRepository puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	// GetForUpdate bloquea la fila de la orden: serializa creaciones de
	// despacho concurrentes contra la misma orden.
	GetForUpdate(id string) (*entity.SalesOrder, error)
	// UpdateStatus cambia el estado; si approved != nil también lo actualiza.
	UpdateStatus(scope tenant.Scope, id string, status entity.OrderStatus, approved *bool) error
	List(scope tenant.Scope, limit, offset int) ([]*entity.SalesOrder, int, error)
}
