package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/despacho-pro/internal/application/dto"
	"github.com/tu-usuario/despacho-pro/internal/application/sales"
	"github.com/tu-usuario/despacho-pro/internal/domain"
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
	"github.com/tu-usuario/despacho-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: solo los métodos que el caso de uso de órdenes toca.
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.SalesOrder
}

func (r *fakeOrderRepo) Create(o *entity.SalesOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) UpdateStatus(scope tenant.Scope, id string, status entity.OrderStatus, approved *bool) error {
	o, ok := r.orders[id]
	if !ok || o.AdminID != scope.AdminID {
		return domain.ErrNotFound
	}
	o.Status = status
	if approved != nil {
		o.Approved = *approved
	}
	return nil
}

func (r *fakeOrderRepo) List(scope tenant.Scope, _, _ int) ([]*entity.SalesOrder, int, error) {
	var out []*entity.SalesOrder
	for _, o := range r.orders {
		if o.AdminID == scope.AdminID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

type fakeDispatchRepo struct {
	repository.DispatchRepository
	totalByOrder map[string]int64
}

func (r *fakeDispatchRepo) TotalDispatched(_ tenant.Scope, salesOrderID string) (int64, error) {
	return r.totalByOrder[salesOrderID], nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID   = "00000000-0000-0000-0000-00000000000a"
	productID = "10000000-0000-0000-0000-000000000001"
	orderID   = "20000000-0000-0000-0000-000000000001"
)

func newFixture(t *testing.T, status entity.OrderStatus) (*sales.UseCase, *fakeOrderRepo, *fakeDispatchRepo, tenant.Identity) {
	t.Helper()
	orders := &fakeOrderRepo{orders: map[string]*entity.SalesOrder{
		orderID: {
			ID:           orderID,
			AdminID:      adminID,
			ProductID:    productID,
			CommittedQty: 60,
			Status:       status,
		},
	}}
	dispatches := &fakeDispatchRepo{totalByOrder: map[string]int64{}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, AdminID: adminID, Name: "Tubo PVC 3m"},
	}}
	uc := sales.NewUseCase(orders, dispatches, products, logger.Nop())
	return uc, orders, dispatches, tenant.Identity{UserID: adminID, IsSuper: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NaceEnPendingSinAprobar(t *testing.T) {
	uc, _, _, caller := newFixture(t, entity.OrderStatusPending)

	order, err := uc.Create(context.Background(), caller, dto.CreateSalesOrderRequest{
		ProductID:    productID,
		PartyName:    "Distribuidora Norte",
		CommittedQty: 40,
		UnitPrice:    decimal.NewFromFloat(12.50),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.False(t, order.Approved)
	assert.Equal(t, adminID, order.AdminID)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(500)),
		"total = 12.50 x 40, esperado 500, obtenido %s", order.TotalAmount)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	uc, _, _, caller := newFixture(t, entity.OrderStatusPending)

	_, err := uc.Create(context.Background(), caller, dto.CreateSalesOrderRequest{
		ProductID:    productID,
		CommittedQty: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ProductoDeOtroTenant(t *testing.T) {
	uc, _, _, _ := newFixture(t, entity.OrderStatusPending)
	intruder := tenant.Identity{UserID: "otro-admin", IsSuper: true}

	_, err := uc.Create(context.Background(), intruder, dto.CreateSalesOrderRequest{
		ProductID:    productID,
		CommittedQty: 10,
		UnitPrice:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remaining
// ──────────────────────────────────────────────────────────────────────────────

func TestRemaining_CalculaPendiente(t *testing.T) {
	uc, _, dispatches, caller := newFixture(t, entity.OrderStatusPending)
	dispatches.totalByOrder[orderID] = 25

	out, err := uc.Remaining(context.Background(), caller, orderID)
	require.NoError(t, err)

	assert.Equal(t, int64(60), out.CommittedQty)
	assert.Equal(t, int64(25), out.TotalDispatched)
	assert.Equal(t, int64(35), out.PendingQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkProductionCompleted
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkProductionCompleted_DesdePending(t *testing.T) {
	uc, orders, _, caller := newFixture(t, entity.OrderStatusPending)

	order, err := uc.MarkProductionCompleted(context.Background(), caller, orderID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusProductionCompleted, order.Status)
	assert.Equal(t, entity.OrderStatusProductionCompleted, orders.orders[orderID].Status)
}

func TestMarkProductionCompleted_DesdeDispatchEsConflicto(t *testing.T) {
	uc, orders, _, caller := newFixture(t, entity.OrderStatusDispatch)

	_, err := uc.MarkProductionCompleted(context.Background(), caller, orderID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderStatusDispatch, orders.orders[orderID].Status,
		"el rechazo no debe mover el estado")
}

// ──────────────────────────────────────────────────────────────────────────────
// DirectSendToDispatch: la transición de escape
// ──────────────────────────────────────────────────────────────────────────────

func TestDirectSendToDispatch_DesdeCualquierEstado(t *testing.T) {
	for _, from := range []entity.OrderStatus{
		entity.OrderStatusPending,
		entity.OrderStatusProductionCompleted,
		entity.OrderStatusDispatchPending,
		entity.OrderStatusDispatch,
	} {
		uc, orders, _, caller := newFixture(t, from)

		order, err := uc.DirectSendToDispatch(context.Background(), caller, orderID, "Dispatch")
		require.NoError(t, err, "el override debe aceptarse desde %q", from)

		assert.Equal(t, entity.OrderStatusDispatch, order.Status)
		assert.True(t, order.Approved, "el override fuerza la aprobación")
		assert.True(t, orders.orders[orderID].Approved)
	}
}

func TestDirectSendToDispatch_EstadoDistintoDeDispatchEsInvalido(t *testing.T) {
	uc, _, _, caller := newFixture(t, entity.OrderStatusPending)

	_, err := uc.DirectSendToDispatch(context.Background(), caller, orderID, "Delivered")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDirectSendToDispatch_TenantAjeno(t *testing.T) {
	uc, _, _, _ := newFixture(t, entity.OrderStatusPending)
	intruder := tenant.Identity{UserID: "otro-admin", IsSuper: true}

	_, err := uc.DirectSendToDispatch(context.Background(), intruder, orderID, "Dispatch")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
