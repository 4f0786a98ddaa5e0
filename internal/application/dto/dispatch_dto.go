package dto

import (
	"time"

	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
)

// CreateDispatchRequest cuerpo de POST /api/dispatches.
type CreateDispatchRequest struct {
	SalesOrderID string     `json:"sales_order_id"`
	ProductID    string     `json:"product_id"`
	DispatchQty  int64      `json:"dispatch_qty"`
	MerchantName string     `json:"merchant_name"`
	ItemName     string     `json:"item_name"`
	DispatchDate *time.Time `json:"dispatch_date"`
}

// UpdateDispatchRequest cuerpo de PUT /api/dispatches/:id.
type UpdateDispatchRequest struct {
	DispatchQty  int64  `json:"dispatch_qty"`
	MerchantName string `json:"merchant_name"`
	ItemName     string `json:"item_name"`
}

// DispatchResponse representación JSON de un despacho.
type DispatchResponse struct {
	ID           string    `json:"id"`
	SalesOrderID string    `json:"sales_order_id"`
	ProductID    string    `json:"product_id"`
	DispatchQty  int64     `json:"dispatch_qty"`
	Status       string    `json:"status"`
	MerchantName string    `json:"merchant_name,omitempty"`
	ItemName     string    `json:"item_name,omitempty"`
	DispatchDate time.Time `json:"dispatch_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToDispatchResponse mapea la entidad al DTO.
func ToDispatchResponse(d *entity.DispatchEvent) DispatchResponse {
	return DispatchResponse{
		ID:           d.ID,
		SalesOrderID: d.SalesOrderID,
		ProductID:    d.ProductID,
		DispatchQty:  d.DispatchQty,
		Status:       d.Status,
		MerchantName: d.MerchantName,
		ItemName:     d.ItemName,
		DispatchDate: d.DispatchDate,
		CreatedAt:    d.CreatedAt,
	}
}

// CreateDispatchResponse respuesta 201: evento creado y stock actualizado.
type CreateDispatchResponse struct {
	Message      string           `json:"message"`
	Data         DispatchResponse `json:"data"`
	UpdatedStock int64            `json:"updated_stock"`
}

// UpdateDispatchResponse respuesta de PUT: evento y stock resultante.
type UpdateDispatchResponse struct {
	Message      string           `json:"message"`
	Data         DispatchResponse `json:"data"`
	UpdatedStock int64            `json:"updated_stock"`
}

// OrderDispatchQtyResponse cantidades despachadas de una orden.
type OrderDispatchQtyResponse struct {
	SalesOrderID    string             `json:"sales_order_id"`
	TotalDispatched int64              `json:"total_dispatched"`
	Data            []DispatchResponse `json:"data"`
}
