package repository

import (
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
)

// DispatchListFilter filtros del listado paginado de despachos.
type DispatchListFilter struct {
	Status string // vacío o "All" = todos
	Search string // busca en merchant_name, item_name y sales_order_id
	Limit  int
	Offset int
}

// DispatchStats conteos por estado para el tablero.
type DispatchStats struct {
	Total      int64 `json:"total"`
	Dispatched int64 `json:"dispatched"`
	Delivered  int64 `json:"delivered"`
	Pending    int64 `json:"pending"`
}

// DispatchRepository puerto de persistencia del libro de despachos (append-only
// salvo ajuste de cantidad y eliminación con restitución de stock).
type DispatchRepository interface {
	Create(event *entity.DispatchEvent) error
	GetByID(id string) (*entity.DispatchEvent, error)
	// TotalDispatched suma dispatch_qty de todos los despachos de una orden
	// dentro del scope. Leído dentro de la misma transacción que muta, refleja
	// los eventos confirmados estrictamente antes de la lectura.
	TotalDispatched(scope tenant.Scope, salesOrderID string) (int64, error)
	ListByOrder(scope tenant.Scope, salesOrderID string) ([]*entity.DispatchEvent, error)
	List(scope tenant.Scope, filter DispatchListFilter) ([]*entity.DispatchEvent, int, error)
	Update(event *entity.DispatchEvent) error
	Delete(scope tenant.Scope, id string) error
	CountByStatus(scope tenant.Scope) (*DispatchStats, error)
}
