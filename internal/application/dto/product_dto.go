package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
)

// CreateProductRequest cuerpo de POST /api/products.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int64           `json:"initial_stock"`
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CurrentStock    int64           `json:"current_stock"`
	ChangeType      string          `json:"change_type,omitempty"`
	QuantityChanged int64           `json:"quantity_changed,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		UnitPrice:       p.UnitPrice,
		CurrentStock:    p.CurrentStock,
		ChangeType:      p.ChangeType,
		QuantityChanged: p.QuantityChanged,
		CreatedAt:       p.CreatedAt,
	}
}
