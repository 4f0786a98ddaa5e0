package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/despacho-pro/internal/domain"
	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
	"github.com/tu-usuario/despacho-pro/internal/domain/tenant"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, admin_id, sku, name, unit_price, current_stock, change_type, quantity_changed, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.AdminID, product.SKU, product.Name, product.UnitPrice,
		product.CurrentStock, nullable(product.ChangeType), product.QuantityChanged,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. El cast a text hace que un id malformado
// no encuentre fila en vez de fallar el encode del parámetro uuid.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ApplyStockChange aplica delta a current_stock en una sola sentencia condicional:
// solo muta si el resultado no queda negativo (el CHECK de la tabla es la segunda
// barrera). Registra change_type y quantity_changed del cambio.
func (r *ProductRepo) ApplyStockChange(scope tenant.Scope, id string, delta int64) (*entity.Product, error) {
	query := `
		UPDATE products
		SET current_stock = current_stock + $3,
		    change_type = CASE WHEN $3 >= 0 THEN 'increase' ELSE 'decrease' END,
		    quantity_changed = abs($3),
		    updated_at = now()
		WHERE id = $1 AND admin_id = $2 AND current_stock + $3 >= 0
		RETURNING ` + productColumns
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id, scope.AdminID, delta))
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}
	if p == nil {
		// Sin fila afectada: o el producto no es del tenant, o el stock no alcanza.
		current, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if current == nil || current.AdminID != scope.AdminID {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.InsufficientStockError{Available: current.CurrentStock}
	}
	return p, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var changeType *string
	err := row.Scan(
		&p.ID, &p.AdminID, &p.SKU, &p.Name, &p.UnitPrice,
		&p.CurrentStock, &changeType, &p.QuantityChanged, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if changeType != nil {
		p.ChangeType = *changeType
	}
	return &p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
