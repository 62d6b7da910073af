package cashbox

import (
	"context"

	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// CashTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de caja atados a esa tx. El cierre de caja es un commit
// todo-o-nada: conciliación y bandera de cerrado se persisten juntos.
type CashTxRunner interface {
	RunCash(ctx context.Context, fn func(
		sessionRepo repository.CashSessionRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		expenseRepo repository.ExpenseRepository,
	) error) error
}

// Authorizer valida las credenciales del segundo usuario que aprueba el
// cierre (control a cuatro ojos). Debe ser un usuario distinto al iniciador y
// con rol elevado. Devuelve el ID del autorizador o domain.ErrUnauthorized /
// domain.ErrForbidden según el caso.
type Authorizer interface {
	AuthorizeClosure(ctx context.Context, email, password, initiatorID string) (string, error)
}
