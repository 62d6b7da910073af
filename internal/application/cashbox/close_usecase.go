package cashbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/application/dto"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// CloseCashUseCase orquesta el cierre de caja una vez por día:
// Abierta -> Autorizando -> Cerrada (terminal).
//
// El paso a Autorizando exige las credenciales de un segundo usuario con rol
// elevado (control a cuatro ojos); un fallo deja el estado en Abierta y se
// reporta, nunca se reintenta solo. El paso a Cerrada corre en una transacción
// que recalcula el flujo del día, concilia contra el efectivo declarado y
// persiste todo junto con la bandera de cerrado. El constraint único sobre
// session_date es la última defensa contra dos cierres concurrentes.
type CloseCashUseCase struct {
	txRunner    CashTxRunner
	sessionRepo repository.CashSessionRepository // lectura fuera de tx (guard de idempotencia)
	authorizer  Authorizer
	loc         *time.Location
	// epsilon por debajo del cual |diferencia| se clasifica como exact.
	epsilon decimal.Decimal
	now     func() time.Time
}

// NewCloseCashUseCase construye el coordinador de cierre.
func NewCloseCashUseCase(
	txRunner CashTxRunner,
	sessionRepo repository.CashSessionRepository,
	authorizer Authorizer,
	loc *time.Location,
	epsilon decimal.Decimal,
) *CloseCashUseCase {
	return &CloseCashUseCase{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		authorizer:  authorizer,
		loc:         loc,
		epsilon:     epsilon,
		now:         time.Now,
	}
}

// CloseInput entrada para Close.
type CloseInput struct {
	UserID          string
	StartingCash    decimal.Decimal
	EndingCash      decimal.Decimal
	Notes           string
	ManagerEmail    string
	ManagerPassword string
}

// Close ejecuta el protocolo de cierre para el día de hoy en la zona horaria
// configurada. Si ya existe un cierre para la fecha devuelve
// domain.ErrAlreadyClosed junto con la sesión existente sin tocarla.
func (uc *CloseCashUseCase) Close(ctx context.Context, input CloseInput) (*dto.CloseCashResponse, *entity.CashDrawerSession, error) {
	if input.UserID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.StartingCash.LessThan(decimal.Zero) || input.EndingCash.LessThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	today := uc.now().In(uc.loc)
	from, to := DayBounds(today, uc.loc)

	// Guard de idempotencia ANTES de autorizar: si el día ya cerró no tiene
	// sentido pedir credenciales al gerente.
	existing, err := uc.sessionRepo.GetByDate(from)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, existing, domain.ErrAlreadyClosed
	}

	// Abierta -> Autorizando: segundo usuario, distinto, con rol elevado.
	authorizedBy, err := uc.authorizer.AuthorizeClosure(ctx, input.ManagerEmail, input.ManagerPassword, input.UserID)
	if err != nil {
		return nil, nil, err
	}

	var (
		session  *entity.CashDrawerSession
		flow     *dto.DailyCashFlow
		conflict *entity.CashDrawerSession
	)
	err = uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		expenseRepo repository.ExpenseRepository,
	) error {
		// Re-chequear dentro de la transacción: otro cierre pudo colarse entre
		// el guard y este punto.
		if prev, err := sessionRepo.GetByDate(from); err != nil {
			return err
		} else if prev != nil {
			conflict = prev
			return domain.ErrAlreadyClosed
		}

		flow, err = computeFlow(from, to, saleRepo, purchaseRepo, expenseRepo)
		if err != nil {
			return err
		}

		starting := input.StartingCash.Round(2)
		ending := input.EndingCash.Round(2)
		expected := starting.Add(flow.CashFlow.Net).Round(2)
		difference := ending.Sub(expected).Round(2)

		closedAt := uc.now()
		session = &entity.CashDrawerSession{
			ID:             uuid.New().String(),
			UserID:         input.UserID,
			AuthorizedBy:   authorizedBy,
			SessionDate:    from,
			StartingCash:   starting,
			EndingCash:     ending,
			TotalSales:     flow.Sales.Total,
			CashSales:      flow.Sales.Cash,
			CardSales:      flow.Sales.Card,
			TransferSales:  flow.Sales.Transfer,
			CashPurchases:  flow.Expenses.Purchases,
			CashExpenses:   flow.Expenses.Operations,
			ExpectedEnding: expected,
			Difference:     difference,
			DifferenceType: uc.classify(difference),
			Notes:          input.Notes,
			Closed:         true,
			ClosedAt:       &closedAt,
			CreatedAt:      closedAt,
		}
		return sessionRepo.Create(session)
	})
	if err != nil {
		if err == domain.ErrAlreadyClosed && conflict == nil {
			// El constraint único disparó en el insert: otro cierre se comprometió
			// después del re-chequeo. Se recupera esa sesión para que la respuesta
			// de conflicto sea la misma que en el camino secuencial.
			if prev, ferr := uc.sessionRepo.GetByDate(from); ferr == nil {
				conflict = prev
			}
		}
		if conflict != nil {
			return nil, conflict, domain.ErrAlreadyClosed
		}
		return nil, nil, err
	}

	return &dto.CloseCashResponse{
		Success:          true,
		SessionID:        session.ID,
		ExpectedEnding:   session.ExpectedEnding,
		DifferenceAmount: session.Difference,
		DifferenceType:   session.DifferenceType,
		Breakdown:        *flow,
	}, session, nil
}

// classify clasifica la diferencia: exact si |d| < epsilon, surplus si d > 0,
// deficit si d < 0.
func (uc *CloseCashUseCase) classify(difference decimal.Decimal) string {
	if difference.Abs().LessThan(uc.epsilon) {
		return entity.DifferenceExact
	}
	if difference.GreaterThan(decimal.Zero) {
		return entity.DifferenceSurplus
	}
	return entity.DifferenceDeficit
}
