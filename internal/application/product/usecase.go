package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/despacho-pro/internal/application/dto"
	"github.com/tu-usuario/despacho-pro/internal/domain"
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
)

// UseCase alta y consulta de productos. El stock solo se muta después vía el
// libro de despachos; aquí solo se fija el inventario inicial.
type UseCase struct {
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository) *UseCase {
	return &UseCase{products: products}
}

// Create registra un producto con su stock inicial.
func (uc *UseCase) Create(_ context.Context, caller tenant.Identity, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		AdminID:      tenant.OwnerForCreation(caller),
		SKU:          in.SKU,
		Name:         in.Name,
		UnitPrice:    in.UnitPrice,
		CurrentStock: in.InitialStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.InitialStock > 0 {
		p.ChangeType = entity.ChangeTypeIncrease
		p.QuantityChanged = in.InitialStock
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto autorizando contra el tenant del caller.
func (uc *UseCase) GetByID(_ context.Context, caller tenant.Identity, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !tenant.Authorize(caller, p.AdminID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}
