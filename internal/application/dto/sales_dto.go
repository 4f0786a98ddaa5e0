package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
)

// CreateSalesOrderRequest cuerpo de POST /api/sales.
type CreateSalesOrderRequest struct {
	ProductID    string          `json:"product_id"`
	PartyName    string          `json:"party_name"`
	CommittedQty int64           `json:"committed_qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// DirectDispatchRequest cuerpo de PATCH /api/sales/:id/direct-dispatch.
type DirectDispatchRequest struct {
	Status string `json:"status"`
}

// SalesOrderResponse representación JSON de una orden de venta.
type SalesOrderResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	PartyName    string          `json:"party_name"`
	CommittedQty int64           `json:"committed_qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	Approved     bool            `json:"approved"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToSalesOrderResponse mapea la entidad al DTO.
func ToSalesOrderResponse(o *entity.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:           o.ID,
		ProductID:    o.ProductID,
		PartyName:    o.PartyName,
		CommittedQty: o.CommittedQty,
		UnitPrice:    o.UnitPrice,
		TotalAmount:  o.TotalAmount,
		Status:       string(o.Status),
		Approved:     o.Approved,
		CreatedAt:    o.CreatedAt,
	}
}

// RemainingQtyResponse cantidades comprometida, despachada y pendiente de una orden.
type RemainingQtyResponse struct {
	SalesOrderID    string `json:"sales_order_id"`
	CommittedQty    int64  `json:"committed_qty"`
	TotalDispatched int64  `json:"total_dispatched"`
	PendingQty      int64  `json:"pending_qty"`
}
