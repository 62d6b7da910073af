package repository

import (
	"time"

	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Create persiste la venta con sus renglones y asignaciones de lote en
// la misma transacción del consumo de stock.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// SummarizeByDate suma las ventas completadas con fecha en [from, to)
	// agrupadas por método de pago.
	SummarizeByDate(from, to time.Time) (*entity.SalesSummary, error)
}
