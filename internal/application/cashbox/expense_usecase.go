package cashbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// ExpenseUseCase registra gastos operativos. Los pagados en efectivo entran
// en la salida de caja del día; los demás solo se reportan.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
	loc         *time.Location
	now         func() time.Time
}

// NewExpenseUseCase construye el caso de uso de gastos.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository, loc *time.Location) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo, loc: loc, now: time.Now}
}

// RegisterExpense valida y persiste un gasto con fecha de hoy.
func (uc *ExpenseUseCase) RegisterExpense(userID string, amount decimal.Decimal, category, paymentMethod string) (*entity.Expense, error) {
	if userID == "" || !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch category {
	case entity.ExpenseOperativo, entity.ExpenseServicios, entity.ExpenseOtros:
	default:
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now().In(uc.loc)
	expense := &entity.Expense{
		ID:            uuid.New().String(),
		Amount:        amount.Round(2),
		Category:      category,
		PaymentMethod: paymentMethod,
		UserID:        userID,
		Date:          now,
		CreatedAt:     now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}
