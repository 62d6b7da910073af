package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras a proveedor.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// SumCashByDate suma los totales de compras pagadas en efectivo con fecha en [from, to).
	SumCashByDate(from, to time.Time) (decimal.Decimal, error)
}
