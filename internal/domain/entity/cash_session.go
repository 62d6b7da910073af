package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación de la diferencia de caja al cierre.
const (
	DifferenceExact   = "exact"
	DifferenceSurplus = "surplus"
	DifferenceDeficit = "deficit"
)

// CashDrawerSession es el registro de cierre de caja de un día calendario.
// Existe a lo más una por SessionDate (constraint único); se crea ya cerrada
// por el coordinador de cierre y nunca se reabre ni se modifica.
type CashDrawerSession struct {
	ID           string
	UserID       string // usuario que inició el cierre
	AuthorizedBy string // segundo usuario (rol elevado) que autorizó el cierre
	SessionDate  time.Time

	StartingCash decimal.Decimal
	EndingCash   decimal.Decimal

	// Desglose persistido al momento del cierre (ver CashFlowAggregator).
	TotalSales     decimal.Decimal
	CashSales      decimal.Decimal
	CardSales      decimal.Decimal
	TransferSales  decimal.Decimal
	CashPurchases  decimal.Decimal
	CashExpenses   decimal.Decimal

	ExpectedEnding decimal.Decimal // StartingCash + (CashSales - CashPurchases - CashExpenses)
	Difference     decimal.Decimal // EndingCash - ExpectedEnding
	DifferenceType string          // exact, surplus, deficit

	Notes     string
	Closed    bool
	ClosedAt  *time.Time
	CreatedAt time.Time
}
