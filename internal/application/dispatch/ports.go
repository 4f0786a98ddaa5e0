package dispatch

import (
	"context"
	"time"

	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la reserva de stock y el registro
// del despacho se apliquen completos o no se apliquen (sin aplicación parcial).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		orders repository.SalesOrderRepository,
		dispatches repository.DispatchRepository,
	) error) error
}

// StatsCache cache para los conteos del tablero de despachos. Las lecturas de
// tablero no requieren consistencia transaccional con las escrituras.
type StatsCache interface {
	// Get devuelve el valor y ok == false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
