package sales

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
	"github.com/tu-usuario/despacho-pro/pkg/logger"
)

// UseCase órdenes de venta y su reconciliador de estado. Las transiciones pasan
// por la tabla central de entity (NextStatus); directSendToDispatch es el único
// bypass, y es una transición con nombre, no una mutación ad hoc.
type UseCase struct {
	orders     repository.SalesOrderRepository
	dispatches repository.DispatchRepository
	products   repository.ProductRepository
	log        *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	orders repository.SalesOrderRepository,
	dispatches repository.DispatchRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{orders: orders, dispatches: dispatches, products: products, log: log}
}

// Create registra una orden de venta. Nace sin aprobar y en estado Pending.
func (uc *UseCase) Create(_ context.Context, caller tenant.Identity, in dto.CreateSalesOrderRequest) (*entity.SalesOrder, error) {
	if in.ProductID == "" || in.CommittedQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !tenant.Authorize(caller, product.AdminID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:           uuid.New().String(),
		AdminID:      tenant.OwnerForCreation(caller),
		ProductID:    in.ProductID,
		PartyName:    in.PartyName,
		CommittedQty: in.CommittedQty,
		UnitPrice:    in.UnitPrice,
		TotalAmount:  in.UnitPrice.Mul(decimal.NewFromInt(in.CommittedQty)),
		Status:       entity.OrderStatusPending,
		Approved:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sales_order_id", order.ID).Int64("committed_qty", order.CommittedQty).Msg("orden de venta creada")
	return order, nil
}

// GetByID devuelve una orden autorizando contra el tenant del caller.
func (uc *UseCase) GetByID(_ context.Context, caller tenant.Identity, id string) (*entity.SalesOrder, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !tenant.Authorize(caller, order.AdminID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// List listado paginado de órdenes del tenant.
func (uc *UseCase) List(_ context.Context, caller tenant.Identity, limit, offset int) ([]*entity.SalesOrder, int, error) {
	return uc.orders.List(tenant.ScopeFor(caller), limit, offset)
}

// Remaining cantidades comprometida, despachada y pendiente de una orden.
func (uc *UseCase) Remaining(ctx context.Context, caller tenant.Identity, id string) (*dto.RemainingQtyResponse, error) {
	order, err := uc.GetByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	total, err := uc.dispatches.TotalDispatched(tenant.ScopeFor(caller), order.ID)
	if err != nil {
		return nil, err
	}
	return &dto.RemainingQtyResponse{
		SalesOrderID:    order.ID,
		CommittedQty:    order.CommittedQty,
		TotalDispatched: total,
		PendingQty:      order.CommittedQty - total,
	}, nil
}

// MarkProductionCompleted marca producción terminada. Legal solo desde Pending
// según la tabla de transiciones.
func (uc *UseCase) MarkProductionCompleted(ctx context.Context, caller tenant.Identity, id string) (*entity.SalesOrder, error) {
	order, err := uc.GetByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	next, ok := entity.NextStatus(order.Status, entity.TransitionProductionCompleted)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.orders.UpdateStatus(tenant.ScopeFor(caller), order.ID, next, nil); err != nil {
		return nil, err
	}
	order.Status = next
	uc.log.Info().Str("sales_order_id", order.ID).Msg("orden marcada como producción terminada")
	return order, nil
}

// DirectSendToDispatch transición de escape: fuerza approved y estado Dispatch
// desde cualquier estado, sin verificar cobertura del libro de despachos. Es el
// override manual para órdenes enviadas sin registro formal de despachos parciales.
func (uc *UseCase) DirectSendToDispatch(ctx context.Context, caller tenant.Identity, id string, status string) (*entity.SalesOrder, error) {
	if entity.OrderStatus(status) != entity.OrderStatusDispatch {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.GetByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	next, ok := entity.NextStatus(order.Status, entity.TransitionDirectDispatch)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	approved := true
	if err := uc.orders.UpdateStatus(tenant.ScopeFor(caller), order.ID, next, &approved); err != nil {
		return nil, err
	}
	order.Status = next
	order.Approved = true
	uc.log.Info().Str("sales_order_id", order.ID).Msg("orden enviada a despacho por override manual")
	return order, nil
}
