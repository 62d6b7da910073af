package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones de ajuste manual de stock. Las tres primeras solo disminuyen;
// ajuste_manual solo aumenta (corrección de conteo).
const (
	ReasonMerma        = "merma"
	ReasonCaducado     = "caducado"
	ReasonDanio        = "daño"
	ReasonAjusteManual = "ajuste_manual"
)

// IsDecreaseReason indica si la razón corresponde a una disminución de stock.
func IsDecreaseReason(reason string) bool {
	switch reason {
	case ReasonMerma, ReasonCaducado, ReasonDanio:
		return true
	}
	return false
}

// IsValidAdjustmentReason valida la razón contra el conjunto cerrado.
func IsValidAdjustmentReason(reason string) bool {
	return IsDecreaseReason(reason) || reason == ReasonAjusteManual
}

// Adjustment registra una corrección manual sobre un único lote.
// Es un registro de auditoría append-only: nunca se modifica después de creado.
// StockBefore/StockAfter se capturan al aplicar, para replay de auditoría.
type Adjustment struct {
	ID            string
	LotID         string
	QuantityDelta decimal.Decimal // con signo: negativo disminuye, positivo aumenta
	Reason        string          // merma, caducado, daño, ajuste_manual
	UserID        string
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	CreatedAt     time.Time
}
