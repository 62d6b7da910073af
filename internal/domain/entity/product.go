package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para Product.
const (
	UnitKilogram = "kg"      // venta por peso, cantidades fraccionarias
	UnitPiece    = "unidad"  // venta por pieza, cantidades enteras (validado en el cliente)
)

// Product representa un producto perecedero del catálogo.
// El stock NO vive aquí: se deriva siempre sumando sus lotes no agotados.
type Product struct {
	ID          string
	Name        string
	UnitMeasure string // kg, unidad
	// LowStockThreshold opcional por producto; si es nil se usa el umbral global de configuración.
	LowStockThreshold *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
