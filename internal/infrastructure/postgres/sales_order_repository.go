package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = "id, admin_id, product_id, party_name, committed_qty, unit_price, total_amount, status, approved, created_at, updated_at"

// SalesOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste una orden de venta.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (` + salesOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.AdminID, order.ProductID, order.PartyName, order.CommittedQty,
		order.UnitPrice, order.TotalAmount, string(order.Status), order.Approved,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. El cast a text hace que un id malformado
// no encuentre fila en vez de fallar el encode del parámetro uuid.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id::text = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE):
// serializa despachos concurrentes contra la misma orden.
func (r *SalesOrderRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id::text = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// UpdateStatus cambia el estado de la orden; si approved != nil también lo actualiza.
func (r *SalesOrderRepo) UpdateStatus(scope tenant.Scope, id string, status entity.OrderStatus, approved *bool) error {
	query := `
		UPDATE sales_orders
		SET status = $3, approved = COALESCE($4, approved), updated_at = now()
		WHERE id = $1 AND admin_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, id, scope.AdminID, string(status), approved)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update sales order status: orden %s fuera de scope", id)
	}
	return nil
}

// List lista órdenes del tenant, más recientes primero.
func (r *SalesOrderRepo) List(scope tenant.Scope, limit, offset int) ([]*entity.SalesOrder, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM sales_orders WHERE admin_id = $1`, scope.AdminID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count sales orders: %w", err)
	}

	query := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders WHERE admin_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, scope.AdminID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		var status string
		if err := rows.Scan(&o.ID, &o.AdminID, &o.ProductID, &o.PartyName, &o.CommittedQty,
			&o.UnitPrice, &o.TotalAmount, &status, &o.Approved, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sales order: %w", err)
		}
		o.Status = entity.OrderStatus(status)
		list = append(list, &o)
	}
	return list, total, rows.Err()
}

func (r *SalesOrderRepo) scanOne(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	var status string
	err := row.Scan(
		&o.ID, &o.AdminID, &o.ProductID, &o.PartyName, &o.CommittedQty,
		&o.UnitPrice, &o.TotalAmount, &status, &o.Approved, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sales order: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
