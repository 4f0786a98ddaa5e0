package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de venta.
type OrderStatus string

// Estados posibles de la orden. "Dispatch Pending" no es terminal: se alcanza
// desde Dispatch al editar cantidades y vuelve a Dispatch solo con cobertura total.
const (
	OrderStatusPending             OrderStatus = "Pending"
	OrderStatusProductionCompleted OrderStatus = "Production Completed"
	OrderStatusDispatch            OrderStatus = "Dispatch"
	OrderStatusDispatchPending     OrderStatus = "Dispatch Pending"
)

// OrderTransition evento que mueve la orden de estado. Las transiciones legales
// viven en una sola tabla en lugar de mutaciones ad hoc por endpoint.
type OrderTransition string

const (
	// TransitionProductionCompleted marca producción terminada (solo desde Pending).
	TransitionProductionCompleted OrderTransition = "production_completed"
	// TransitionFullCoverage pasa a Dispatch cuando la suma de despachos cubre
	// la cantidad comprometida. Unidireccional en el flujo de creación.
	TransitionFullCoverage OrderTransition = "full_coverage"
	// TransitionQuantityEdited regresa a "Dispatch Pending" cuando se edita o
	// elimina un despacho: obliga re-revisión del operador.
	TransitionQuantityEdited OrderTransition = "quantity_edited"
	// TransitionDirectDispatch es el bypass manual: fuerza Dispatch y approved
	// desde cualquier estado, sin verificar cobertura del libro de despachos.
	TransitionDirectDispatch OrderTransition = "direct_dispatch"
)

// transitions tabla central de transiciones legales: evento -> estados origen permitidos.
// Un mapa vacío significa "desde cualquier estado".
var transitions = map[OrderTransition]map[OrderStatus]bool{
	TransitionProductionCompleted: {OrderStatusPending: true, "": true},
	TransitionFullCoverage: {
		OrderStatusPending:             true,
		"":                             true,
		OrderStatusProductionCompleted: true,
		OrderStatusDispatchPending:     true,
	},
	TransitionQuantityEdited: {
		OrderStatusDispatch:            true,
		OrderStatusDispatchPending:     true,
		OrderStatusProductionCompleted: true,
		OrderStatusPending:             true,
		"":                             true,
	},
	TransitionDirectDispatch: {}, // escape explícito: cualquier origen
}

// targets estado destino de cada transición.
var targets = map[OrderTransition]OrderStatus{
	TransitionProductionCompleted: OrderStatusProductionCompleted,
	TransitionFullCoverage:        OrderStatusDispatch,
	TransitionQuantityEdited:      OrderStatusDispatchPending,
	TransitionDirectDispatch:      OrderStatusDispatch,
}

// NextStatus devuelve el estado destino de aplicar la transición desde `from`.
// ok == false si la transición no es legal desde ese estado.
func NextStatus(from OrderStatus, via OrderTransition) (OrderStatus, bool) {
	allowed, known := transitions[via]
	if !known {
		return from, false
	}
	if len(allowed) > 0 && !allowed[from] {
		return from, false
	}
	return targets[via], true
}

// SalesOrder es un compromiso de venta: la suma de los despachos activos de la
// orden nunca puede exceder CommittedQty.
type SalesOrder struct {
	ID           string
	AdminID      string // tenant propietario
	ProductID    string
	PartyName    string
	CommittedQty int64
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	Approved     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullyDispatched indica si el total despachado ya cubre la cantidad comprometida.
func (o *SalesOrder) FullyDispatched(totalDispatched int64) bool {
	return totalDispatched >= o.CommittedQty
}
