package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos operativos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	ListByDate(from, to time.Time) ([]*entity.Expense, error)
	// SumCashByDate suma los gastos pagados en efectivo con fecha en [from, to).
	SumCashByDate(from, to time.Time) (decimal.Decimal, error)
	// SumByDate suma todos los gastos del rango sin filtrar por método de pago.
	SumByDate(from, to time.Time) (decimal.Decimal, error)
}
