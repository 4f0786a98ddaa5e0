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

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

const dispatchColumns = "id, admin_id, sales_order_id, product_id, dispatch_qty, status, merchant_name, item_name, created_by, dispatch_date, created_at, updated_at"

// DispatchRepo implementación del libro de despachos sobre PostgreSQL (usable con pool o tx).
type DispatchRepo struct {
	q Querier
}

// NewDispatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDispatchRepository(q Querier) *DispatchRepo {
	return &DispatchRepo{q: q}
}

// Create persiste un evento de despacho.
func (r *DispatchRepo) Create(event *entity.DispatchEvent) error {
	query := `
		INSERT INTO dispatch_events (` + dispatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.AdminID, event.SalesOrderID, event.ProductID, event.DispatchQty,
		event.Status, nullable(event.MerchantName), nullable(event.ItemName),
		nullable(event.CreatedBy), event.DispatchDate, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dispatch event: %w", err)
	}
	return nil
}

// GetByID obtiene un despacho por ID. El id llega de la URL: el cast a text
// hace que un id malformado simplemente no encuentre fila en vez de fallar.
func (r *DispatchRepo) GetByID(id string) (*entity.DispatchEvent, error) {
	query := `SELECT ` + dispatchColumns + ` FROM dispatch_events WHERE id::text = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// TotalDispatched suma dispatch_qty de los despachos de una orden dentro del scope.
// Dentro de una transacción refleja los eventos confirmados antes de la lectura.
func (r *DispatchRepo) TotalDispatched(scope tenant.Scope, salesOrderID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(dispatch_qty), 0)
		FROM dispatch_events
		WHERE admin_id = $1 AND sales_order_id::text = $2`, scope.AdminID, salesOrderID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total dispatched: %w", err)
	}
	return total, nil
}

// ListByOrder lista los despachos de una orden dentro del scope.
func (r *DispatchRepo) ListByOrder(scope tenant.Scope, salesOrderID string) ([]*entity.DispatchEvent, error) {
	query := `
		SELECT ` + dispatchColumns + `
		FROM dispatch_events
		WHERE admin_id = $1 AND sales_order_id::text = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, scope.AdminID, salesOrderID)
	if err != nil {
		return nil, fmt.Errorf("list dispatches by order: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// listDispatchFilter arma el WHERE del listado: scope + estado + búsqueda.
// La búsqueda es texto libre: toda comparación contra columnas uuid va
// casteada a text para que el parámetro no se infiera como uuid (un término
// como "tornillo" no es encodeable como uuid y rompería la query completa).
func listDispatchFilter(scope tenant.Scope, filter repository.DispatchListFilter) (string, []any) {
	where := ` WHERE admin_id = $1`
	args := []any{scope.AdminID}
	if filter.Status != "" && filter.Status != "All" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%", filter.Search)
		where += fmt.Sprintf(" AND (merchant_name ILIKE $%d OR item_name ILIKE $%d OR sales_order_id::text = $%d)",
			len(args)-1, len(args)-1, len(args))
	}
	return where, args
}

// List listado paginado del tenant con filtro por estado y búsqueda en
// merchant_name, item_name y sales_order_id.
func (r *DispatchRepo) List(scope tenant.Scope, filter repository.DispatchListFilter) ([]*entity.DispatchEvent, int, error) {
	where, args := listDispatchFilter(scope, filter)

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM dispatch_events`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count dispatches: %w", err)
	}

	query := `SELECT ` + dispatchColumns + ` FROM dispatch_events` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list dispatches: %w", err)
	}
	defer rows.Close()
	list, err := r.scanAll(rows)
	return list, total, err
}

// Update actualiza cantidad, estado y campos descriptivos de un despacho.
func (r *DispatchRepo) Update(event *entity.DispatchEvent) error {
	query := `
		UPDATE dispatch_events
		SET dispatch_qty = $2, status = $3, merchant_name = $4, item_name = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		event.ID, event.DispatchQty, event.Status,
		nullable(event.MerchantName), nullable(event.ItemName), event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dispatch event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update dispatch event: despacho %s no existe", event.ID)
	}
	return nil
}

// Delete elimina un despacho del scope.
func (r *DispatchRepo) Delete(scope tenant.Scope, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM dispatch_events WHERE id = $1 AND admin_id = $2`, id, scope.AdminID)
	if err != nil {
		return fmt.Errorf("delete dispatch event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete dispatch event: despacho %s fuera de scope", id)
	}
	return nil
}

// CountByStatus conteos por estado para el tablero.
func (r *DispatchRepo) CountByStatus(scope tenant.Scope) (*repository.DispatchStats, error) {
	var stats repository.DispatchStats
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*),
		       count(*) FILTER (WHERE status = $2),
		       count(*) FILTER (WHERE status = $3),
		       count(*) FILTER (WHERE status = $4)
		FROM dispatch_events WHERE admin_id = $1`,
		scope.AdminID,
		entity.DispatchStatusDispatch,
		entity.DispatchStatusDelivered,
		entity.DispatchStatusPending,
	).Scan(&stats.Total, &stats.Dispatched, &stats.Delivered, &stats.Pending)
	if err != nil {
		return nil, fmt.Errorf("count dispatches by status: %w", err)
	}
	return &stats, nil
}

func (r *DispatchRepo) scanOne(row pgx.Row) (*entity.DispatchEvent, error) {
	var e entity.DispatchEvent
	var merchant, item, createdBy *string
	err := row.Scan(
		&e.ID, &e.AdminID, &e.SalesOrderID, &e.ProductID, &e.DispatchQty, &e.Status,
		&merchant, &item, &createdBy, &e.DispatchDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan dispatch event: %w", err)
	}
	if merchant != nil {
		e.MerchantName = *merchant
	}
	if item != nil {
		e.ItemName = *item
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}
	return &e, nil
}

func (r *DispatchRepo) scanAll(rows pgx.Rows) ([]*entity.DispatchEvent, error) {
	var list []*entity.DispatchEvent
	for rows.Next() {
		var e entity.DispatchEvent
		var merchant, item, createdBy *string
		if err := rows.Scan(&e.ID, &e.AdminID, &e.SalesOrderID, &e.ProductID, &e.DispatchQty,
			&e.Status, &merchant, &item, &createdBy, &e.DispatchDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dispatch event: %w", err)
		}
		if merchant != nil {
			e.MerchantName = *merchant
		}
		if item != nil {
			e.ItemName = *item
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
