package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLot representa un lote de inventario: una partida discreta de stock
// de un producto, ligada a una compra, con su propia cantidad restante y
// vencimiento opcional. Los lotes nunca se borran: se agotan hasta cero.
//
// Invariante: 0 <= StockQuantity <= InitialQuantity.
type InventoryLot struct {
	ID              string
	ProductID       string
	PurchaseID      string          // procedencia: compra que originó el lote
	InitialQuantity decimal.Decimal // inmutable después de la creación
	StockQuantity   decimal.Decimal // mutada por ventas y ajustes
	PurchasePrice   decimal.Decimal // costo unitario de compra
	ExpirationDate  *time.Time      // nil = no perecedero / sin fecha
	CreatedAt       time.Time
}

// IsDepleted indica si el lote está agotado.
func (l *InventoryLot) IsDepleted() bool {
	return l.StockQuantity.IsZero()
}
