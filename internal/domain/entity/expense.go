package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto operativo.
const (
	ExpenseOperativo = "operativo"
	ExpenseServicios = "servicios"
	ExpenseOtros     = "otros"
)

// Expense representa un gasto operativo del negocio. Solo los gastos con
// PaymentMethod = efectivo afectan la conciliación de caja; el resto se
// reporta por visibilidad pero queda fuera de la aritmética.
type Expense struct {
	ID            string
	Amount        decimal.Decimal // redondeado a 2 decimales
	Category      string          // operativo, servicios, otros
	PaymentMethod string          // efectivo, tarjeta, transferencia
	UserID        string
	Date          time.Time
	CreatedAt     time.Time
}
