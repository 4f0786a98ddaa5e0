package entity

import "time"

// Estados de un despacho individual.
const (
	DispatchStatusDispatch  = "Dispatch"
	DispatchStatusPending   = "Dispatch Pending"
	DispatchStatusDelivered = "Delivered"
)

// DispatchEvent es un envío parcial contra una orden de venta: consume stock
// del producto y cuenta hacia la cobertura de CommittedQty de la orden.
type DispatchEvent struct {
	ID           string
	AdminID      string // tenant propietario
	SalesOrderID string
	ProductID    string
	DispatchQty  int64 // siempre > 0
	Status       string
	MerchantName string
	ItemName     string
	CreatedBy    string // UserID que creó el despacho
	DispatchDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
