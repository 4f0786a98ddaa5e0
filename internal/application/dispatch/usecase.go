package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/despacho-pro/internal/application/dto"
	"github.com/tu-usuario/despacho-pro/internal/domain"
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
	"github.com/tu-usuario/despacho-pro/pkg/logger"
)

const statsTTL = 60 * time.Second

// UseCase libro de despachos: creación con reserva de stock, ajuste por delta,
// eliminación con restitución y reconciliación del estado de la orden. Todas
// las rutas que mutan corren dentro de una transacción del TxRunner, con la
// fila de la orden y la del producto bloqueadas (SELECT FOR UPDATE): ambos
// chequeos (stock suficiente, cantidad pendiente) se revalidan dentro de la
// misma unidad atómica que muta.
type UseCase struct {
	txRunner   TxRunner
	orders     repository.SalesOrderRepository
	dispatches repository.DispatchRepository
	products   repository.ProductRepository
	cache      StatsCache
	log        *logger.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil (stats sin cache).
func NewUseCase(
	txRunner TxRunner,
	orders repository.SalesOrderRepository,
	dispatches repository.DispatchRepository,
	products repository.ProductRepository,
	cache StatsCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, orders: orders, dispatches: dispatches, products: products, cache: cache, log: log}
}

// CreateResult evento creado y stock resultante del producto.
type CreateResult struct {
	Event        *entity.DispatchEvent
	UpdatedStock int64
}

// Create registra un despacho contra una orden de venta. Dentro de la transacción:
// bloquea orden y producto, rechaza si la orden ya está en Dispatch (reenvío
// duplicado), recalcula el total despachado, verifica cantidad pendiente y stock,
// descuenta stock de forma condicional, inserta el evento y reconcilia la orden.
func (uc *UseCase) Create(ctx context.Context, caller tenant.Identity, in dto.CreateDispatchRequest) (*CreateResult, error) {
	if in.SalesOrderID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DispatchQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	scope := tenant.ScopeFor(caller)

	var result *CreateResult
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		orders repository.SalesOrderRepository,
		dispatches repository.DispatchRepository,
	) error {
		order, err := orders.GetForUpdate(in.SalesOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !tenant.Authorize(caller, order.AdminID) {
			return domain.ErrForbidden
		}
		// Guard de idempotencia: solo dispara con cobertura total, no en cada
		// despacho parcial legítimo.
		if order.Status == entity.OrderStatusDispatch {
			return domain.ErrDuplicateDispatch
		}

		product, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !tenant.Authorize(caller, product.AdminID) {
			return domain.ErrForbidden
		}

		total, err := dispatches.TotalDispatched(scope, order.ID)
		if err != nil {
			return err
		}
		remaining := order.CommittedQty - total
		if in.DispatchQty > remaining {
			return &domain.QuantityExceededError{Remaining: remaining}
		}
		if product.CurrentStock < in.DispatchQty {
			return &domain.InsufficientStockError{Available: product.CurrentStock}
		}

		updated, err := products.ApplyStockChange(scope, product.ID, -in.DispatchQty)
		if err != nil {
			return err
		}

		now := time.Now()
		dispatchDate := now
		if in.DispatchDate != nil {
			dispatchDate = *in.DispatchDate
		}
		event := &entity.DispatchEvent{
			ID:           uuid.New().String(),
			AdminID:      tenant.OwnerForCreation(caller),
			SalesOrderID: order.ID,
			ProductID:    product.ID,
			DispatchQty:  in.DispatchQty,
			Status:       entity.DispatchStatusDispatch,
			MerchantName: in.MerchantName,
			ItemName:     in.ItemName,
			CreatedBy:    caller.UserID,
			DispatchDate: dispatchDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := dispatches.Create(event); err != nil {
			return err
		}

		// Reconciliación: con cobertura total la orden pasa a Dispatch.
		// Unidireccional en esta ruta; nunca revierte automáticamente.
		if order.FullyDispatched(total + in.DispatchQty) {
			if next, ok := entity.NextStatus(order.Status, entity.TransitionFullCoverage); ok {
				if err := orders.UpdateStatus(scope, order.ID, next, nil); err != nil {
					return err
				}
			}
		}

		result = &CreateResult{Event: event, UpdatedStock: updated.CurrentStock}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sales_order_id", result.Event.SalesOrderID).
		Str("dispatch_id", result.Event.ID).
		Int64("dispatch_qty", result.Event.DispatchQty).
		Str("product_id", result.Event.ProductID).
		Msg("despacho creado")
	return result, nil
}

// UpdateResult evento actualizado y stock resultante.
type UpdateResult struct {
	Event        *entity.DispatchEvent
	UpdatedStock int64
	QtyChanged   bool
}

// Update ajusta un despacho existente. El delta contra la cantidad anterior se
// re-aplica al stock (delta positivo = reserva adicional, negativo = liberación).
// Si la cantidad cambió, el evento y la orden regresan a "Dispatch Pending"
// para forzar re-revisión del operador.
func (uc *UseCase) Update(ctx context.Context, caller tenant.Identity, eventID string, in dto.UpdateDispatchRequest) (*UpdateResult, error) {
	if in.DispatchQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	scope := tenant.ScopeFor(caller)

	var result *UpdateResult
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		orders repository.SalesOrderRepository,
		dispatches repository.DispatchRepository,
	) error {
		event, err := dispatches.GetByID(eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrNotFound
		}
		if !tenant.Authorize(caller, event.AdminID) {
			return domain.ErrForbidden
		}

		order, err := orders.GetForUpdate(event.SalesOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		product, err := products.GetForUpdate(event.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		delta := in.DispatchQty - event.DispatchQty
		qtyChanged := delta != 0
		updatedStock := product.CurrentStock

		if qtyChanged {
			total, err := dispatches.TotalDispatched(scope, order.ID)
			if err != nil {
				return err
			}
			othersQty := total - event.DispatchQty
			if othersQty+in.DispatchQty > order.CommittedQty {
				return &domain.QuantityExceededError{Remaining: order.CommittedQty - othersQty}
			}
			if delta > 0 && product.CurrentStock < delta {
				return &domain.InsufficientStockError{Available: product.CurrentStock}
			}
			updated, err := products.ApplyStockChange(scope, product.ID, -delta)
			if err != nil {
				return err
			}
			updatedStock = updated.CurrentStock
		}

		event.DispatchQty = in.DispatchQty
		if in.MerchantName != "" {
			event.MerchantName = in.MerchantName
		}
		if in.ItemName != "" {
			event.ItemName = in.ItemName
		}
		if qtyChanged {
			event.Status = entity.DispatchStatusPending
		}
		event.UpdatedAt = time.Now()
		if err := dispatches.Update(event); err != nil {
			return err
		}

		if qtyChanged {
			if next, ok := entity.NextStatus(order.Status, entity.TransitionQuantityEdited); ok {
				if err := orders.UpdateStatus(scope, order.ID, next, nil); err != nil {
					return err
				}
			}
		}

		result = &UpdateResult{Event: event, UpdatedStock: updatedStock, QtyChanged: qtyChanged}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("dispatch_id", result.Event.ID).
		Int64("dispatch_qty", result.Event.DispatchQty).
		Bool("qty_changed", result.QtyChanged).
		Msg("despacho actualizado")
	return result, nil
}

// Delete elimina un despacho y restituye simétricamente el stock reservado; si
// la orden estaba cubierta por completo deja de estarlo y regresa a "Dispatch Pending".
func (uc *UseCase) Delete(ctx context.Context, caller tenant.Identity, eventID string) error {
	scope := tenant.ScopeFor(caller)

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		orders repository.SalesOrderRepository,
		dispatches repository.DispatchRepository,
	) error {
		event, err := dispatches.GetByID(eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrNotFound
		}
		if !tenant.Authorize(caller, event.AdminID) {
			return domain.ErrForbidden
		}

		order, err := orders.GetForUpdate(event.SalesOrderID)
		if err != nil {
			return err
		}
		product, err := products.GetForUpdate(event.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			if _, err := products.ApplyStockChange(scope, product.ID, event.DispatchQty); err != nil {
				return err
			}
		}
		if err := dispatches.Delete(scope, event.ID); err != nil {
			return err
		}

		// La orden pierde cobertura: si estaba en Dispatch vuelve a pendiente.
		if order != nil && order.Status == entity.OrderStatusDispatch {
			if next, ok := entity.NextStatus(order.Status, entity.TransitionQuantityEdited); ok {
				if err := orders.UpdateStatus(scope, order.ID, next, nil); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("dispatch_id", eventID).Msg("despacho eliminado, stock restituido")
	return nil
}

// GetByID devuelve un despacho autorizando contra el tenant del caller.
func (uc *UseCase) GetByID(_ context.Context, caller tenant.Identity, eventID string) (*entity.DispatchEvent, error) {
	event, err := uc.dispatches.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if !tenant.Authorize(caller, event.AdminID) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// List listado paginado de despachos del tenant, con filtro por estado y búsqueda.
func (uc *UseCase) List(_ context.Context, caller tenant.Identity, filter repository.DispatchListFilter) ([]*entity.DispatchEvent, int, error) {
	return uc.dispatches.List(tenant.ScopeFor(caller), filter)
}

// QtyByOrder cantidades despachadas de una orden y su total. La orden debe
// existir y pertenecer al tenant del caller, igual que en GetByID.
func (uc *UseCase) QtyByOrder(_ context.Context, caller tenant.Identity, salesOrderID string) ([]*entity.DispatchEvent, int64, error) {
	order, err := uc.orders.GetByID(salesOrderID)
	if err != nil {
		return nil, 0, err
	}
	if order == nil {
		return nil, 0, domain.ErrNotFound
	}
	if !tenant.Authorize(caller, order.AdminID) {
		return nil, 0, domain.ErrForbidden
	}
	events, err := uc.dispatches.ListByOrder(tenant.ScopeFor(caller), salesOrderID)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, e := range events {
		total += e.DispatchQty
	}
	return events, total, nil
}

// DeliveryNoteData datos para renderizar la remisión de un despacho.
type DeliveryNoteData struct {
	Event           *entity.DispatchEvent
	Order           *entity.SalesOrder
	Product         *entity.Product
	TotalDispatched int64
}

// DeliveryNote reúne despacho, orden, producto y total despachado para la remisión.
func (uc *UseCase) DeliveryNote(ctx context.Context, caller tenant.Identity, eventID string) (*DeliveryNoteData, error) {
	event, err := uc.GetByID(ctx, caller, eventID)
	if err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(event.SalesOrderID)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(event.ProductID)
	if err != nil {
		return nil, err
	}
	if order == nil || product == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.dispatches.TotalDispatched(tenant.ScopeFor(caller), order.ID)
	if err != nil {
		return nil, err
	}
	return &DeliveryNoteData{Event: event, Order: order, Product: product, TotalDispatched: total}, nil
}

// Stats conteos por estado para el tablero. Lectura eventual: puede servirse
// desde cache sin consistencia transaccional con escrituras concurrentes.
func (uc *UseCase) Stats(ctx context.Context, caller tenant.Identity) (*repository.DispatchStats, error) {
	scope := tenant.ScopeFor(caller)
	key := "dispatch:stats:" + scope.AdminID

	if uc.cache != nil {
		if raw, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
			var stats repository.DispatchStats
			if json.Unmarshal([]byte(raw), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := uc.dispatches.CountByStatus(scope)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := uc.cache.Set(ctx, key, string(raw), statsTTL); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo cachear stats de despachos")
			}
		}
	}
	return stats, nil
}
