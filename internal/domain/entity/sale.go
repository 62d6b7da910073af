package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos. Solo efectivo participa en la conciliación de caja.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// IsValidPaymentMethod valida el método contra el conjunto cerrado.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Estados de una venta.
const (
	SaleCompleted = "completada"
	SaleVoided    = "anulada"
)

// Sale representa una venta completada con sus renglones y asignaciones de lote.
type Sale struct {
	ID            string
	Total         decimal.Decimal // suma de renglones, redondeada a 2 decimales
	PaymentMethod string          // efectivo, tarjeta, transferencia
	Status        string
	UserID        string
	Date          time.Time
	CreatedAt     time.Time

	Items       []SaleItem
	Allocations []SaleAllocation
}

// SaleItem es un renglón de venta para un producto.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice redondeado a 2 decimales
}

// SaleAllocation vincula una venta con el lote específico del que se tomó
// cada cantidad (consumo FIFO). Inmutable: se crea atómicamente con la venta
// y establece la procedencia para análisis de costo/margen.
type SaleAllocation struct {
	ID        string
	SaleID    string
	LotID     string
	ProductID string
	Quantity  decimal.Decimal // cantidad tomada de este lote
	UnitCost  decimal.Decimal // PurchasePrice del lote al momento de la venta
	CreatedAt time.Time
}

// SalesSummary agrupa los totales de ventas completadas de un día por método de pago.
type SalesSummary struct {
	Total    decimal.Decimal
	Count    int64
	Cash     decimal.Decimal
	Card     decimal.Decimal
	Transfer decimal.Decimal
}
