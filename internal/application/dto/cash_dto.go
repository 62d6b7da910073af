package dto

import "github.com/shopspring/decimal"

// SalesBreakdown totales de ventas del día por método de pago.
type SalesBreakdown struct {
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
	Cash     decimal.Decimal `json:"cash"`
	Card     decimal.Decimal `json:"card"`
	Transfer decimal.Decimal `json:"transfer"`
}

// ExpensesBreakdown egresos del día. Purchases y Operations son solo el
// subconjunto pagado en efectivo (lo único que sale de la caja física);
// Total incluye todos los gastos para visibilidad.
type ExpensesBreakdown struct {
	Purchases  decimal.Decimal `json:"purchases"`
	Operations decimal.Decimal `json:"operations"`
	Total      decimal.Decimal `json:"total"`
}

// CashFlowTotals aritmética de caja: In = ventas en efectivo,
// Out = compras en efectivo + gastos en efectivo, Net = In - Out.
type CashFlowTotals struct {
	In  decimal.Decimal `json:"in"`
	Out decimal.Decimal `json:"out"`
	Net decimal.Decimal `json:"net"`
}

// DailyCashFlow desglose de flujo de caja de un día calendario.
type DailyCashFlow struct {
	Date     string            `json:"date"` // YYYY-MM-DD en la zona horaria configurada
	Sales    SalesBreakdown    `json:"sales"`
	Expenses ExpensesBreakdown `json:"expenses"`
	CashFlow CashFlowTotals    `json:"cash_flow"`
}

// CloseCashRequest body para POST /api/cash/close. ManagerEmail/ManagerPassword
// son las credenciales del segundo usuario (control a cuatro ojos).
type CloseCashRequest struct {
	StartingCash    decimal.Decimal `json:"starting_cash"`
	EndingCash      decimal.Decimal `json:"ending_cash"`
	Notes           string          `json:"notes,omitempty"`
	ManagerEmail    string          `json:"manager_email"`
	ManagerPassword string          `json:"manager_password"`
}

// CloseCashResponse resultado del cierre de caja.
type CloseCashResponse struct {
	Success          bool            `json:"success"`
	SessionID        string          `json:"session_id"`
	ExpectedEnding   decimal.Decimal `json:"expected_ending"`
	DifferenceAmount decimal.Decimal `json:"difference_amount"`
	DifferenceType   string          `json:"difference_type"` // exact, surplus, deficit
	Breakdown        DailyCashFlow   `json:"breakdown"`
}

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`       // operativo, servicios, otros
	PaymentMethod string          `json:"payment_method"` // efectivo, tarjeta, transferencia
}
