package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor. Cada compra origina uno o más
// lotes de inventario; las compras pagadas en efectivo salen de la caja del día.
type Purchase struct {
	ID            string
	Supplier      string
	Total         decimal.Decimal // suma de renglones, redondeada a 2 decimales
	PaymentMethod string          // efectivo, tarjeta, transferencia
	UserID        string
	Date          time.Time
	CreatedAt     time.Time
}
