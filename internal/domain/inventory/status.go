package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// Estados de alerta de un lote. Precedencia estricta (primera que aplica gana):
// depleted > expired > near_expiry > low_stock > normal.
const (
	StatusNormal     = "normal"
	StatusLowStock   = "low_stock"
	StatusNearExpiry = "near_expiry"
	StatusExpired    = "expired"
	StatusDepleted   = "depleted"
)

// ClassifyLot deriva el estado de alerta de un lote (función pura, servicio de dominio).
// today se compara a nivel de día calendario; los umbrales llegan por parámetro
// para que el llamador decida entre el global de configuración y el del producto.
func ClassifyLot(lot *entity.InventoryLot, today time.Time, lowStockThreshold decimal.Decimal, nearExpiryDays int) string {
	if lot.StockQuantity.IsZero() {
		return StatusDepleted
	}
	if lot.ExpirationDate != nil {
		days := daysBetween(today, *lot.ExpirationDate)
		if days < 0 {
			return StatusExpired
		}
		if days <= nearExpiryDays {
			return StatusNearExpiry
		}
	}
	if lot.StockQuantity.LessThanOrEqual(lowStockThreshold) {
		return StatusLowStock
	}
	return StatusNormal
}

// PercentageRemaining devuelve el porcentaje restante del lote como float,
// acotado a [0, 100]. Se redondea solo para mostrar, nunca para comparar.
func PercentageRemaining(lot *entity.InventoryLot) float64 {
	if lot.InitialQuantity.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct, _ := lot.StockQuantity.Div(lot.InitialQuantity).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DaysUntilExpiry devuelve los días calendario hasta el vencimiento
// (negativo si ya venció) o nil si el lote no tiene fecha.
func DaysUntilExpiry(lot *entity.InventoryLot, today time.Time) *int {
	if lot.ExpirationDate == nil {
		return nil
	}
	d := daysBetween(today, *lot.ExpirationDate)
	return &d
}

// daysBetween cuenta días calendario entre dos fechas, ignorando la hora.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
