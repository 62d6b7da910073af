package cashbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
	"github.com/tu-usuario/fruver-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCashierID = "00000000-0000-0000-0000-000000000001"
	testManagerID = "00000000-0000-0000-0000-000000000002"
)

var testEpsilon = decimal.RequireFromString("0.01")

// stubAuthorizer aprueba siempre con el ID del gerente de prueba, o devuelve
// el error configurado. Registra cuántas veces se invocó.
type stubAuthorizer struct {
	err   error
	calls int
}

func (a *stubAuthorizer) AuthorizeClosure(_ context.Context, _, _, _ string) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return testManagerID, nil
}

func seedSale(t *testing.T, store *memory.Store, total string, method string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.SaleRepo().Create(&entity.Sale{
		ID:            uuid.New().String(),
		Total:         decimal.RequireFromString(total),
		PaymentMethod: method,
		Status:        entity.SaleCompleted,
		UserID:        testCashierID,
		Date:          now,
		CreatedAt:     now,
	}))
}

func seedPurchase(t *testing.T, store *memory.Store, total string, method string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.PurchaseRepo().Create(&entity.Purchase{
		ID:            uuid.New().String(),
		Supplier:      "Proveedor de prueba",
		Total:         decimal.RequireFromString(total),
		PaymentMethod: method,
		UserID:        testCashierID,
		Date:          now,
		CreatedAt:     now,
	}))
}

func seedExpense(t *testing.T, store *memory.Store, amount string, method string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.ExpenseRepo().Create(&entity.Expense{
		ID:            uuid.New().String(),
		Amount:        decimal.RequireFromString(amount),
		Category:      entity.ExpenseOperativo,
		PaymentMethod: method,
		UserID:        testCashierID,
		Date:          now,
		CreatedAt:     now,
	}))
}

// racedSessionRepo simula un cierre concurrente que se compromete entre el
// re-chequeo dentro de la tx y el insert: GetByDate no ve nada hasta que
// Create choca con el constraint único de session_date.
type racedSessionRepo struct {
	winner *entity.CashDrawerSession
	raced  bool
}

func (r *racedSessionRepo) Create(*entity.CashDrawerSession) error {
	r.raced = true
	return domain.ErrAlreadyClosed
}

func (r *racedSessionRepo) GetByID(string) (*entity.CashDrawerSession, error) {
	return nil, nil
}

func (r *racedSessionRepo) GetByDate(time.Time) (*entity.CashDrawerSession, error) {
	if r.raced {
		return r.winner, nil
	}
	return nil, nil
}

// passthroughCashTxRunner ejecuta el callback con los repositorios recibidos,
// sin transacción real.
type passthroughCashTxRunner struct {
	sessions repository.CashSessionRepository
	store    *memory.Store
}

func (r *passthroughCashTxRunner) RunCash(_ context.Context, fn func(
	sessionRepo repository.CashSessionRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	return fn(r.sessions, r.store.SaleRepo(), r.store.PurchaseRepo(), r.store.ExpenseRepo())
}

func newCloseFixture(store *memory.Store, authorizer cashbox.Authorizer) *cashbox.CloseCashUseCase {
	return cashbox.NewCloseCashUseCase(store, store.CashSessionRepo(), authorizer, time.UTC, testEpsilon)
}

func closeInput(starting, ending string) cashbox.CloseInput {
	return cashbox.CloseInput{
		UserID:          testCashierID,
		StartingCash:    decimal.RequireFromString(starting),
		EndingCash:      decimal.RequireFromString(ending),
		ManagerEmail:    "gerente@fruver.co",
		ManagerPassword: "secreto-gerente",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación: expected = starting + (ventas efectivo - compras efectivo -
// gastos efectivo). Tarjeta y transferencia no tocan la caja física.
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_ConciliacionExacta(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, "250.00", entity.PaymentCash)
	seedSale(t, store, "300.00", entity.PaymentCard) // no cuenta en caja
	seedPurchase(t, store, "80.00", entity.PaymentCash)
	seedExpense(t, store, "20.00", entity.PaymentCash)
	seedExpense(t, store, "50.00", entity.PaymentTransfer) // no cuenta en caja

	auth := &stubAuthorizer{}
	uc := newCloseFixture(store, auth)

	// expected = 100 + (250 - 80 - 20) = 250
	resp, session, err := uc.Close(context.Background(), closeInput("100.00", "250.00"))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.ExpectedEnding.Equal(decimal.RequireFromString("250.00")), "expected incorrecto: %s", resp.ExpectedEnding)
	assert.True(t, resp.DifferenceAmount.IsZero())
	assert.Equal(t, entity.DifferenceExact, resp.DifferenceType)
	assert.True(t, resp.Success)

	require.NotNil(t, session)
	assert.Equal(t, testManagerID, session.AuthorizedBy, "queda registrado quién autorizó")
	assert.Equal(t, testCashierID, session.UserID)
	assert.True(t, session.Closed)
	assert.True(t, session.CashSales.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, session.CardSales.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, session.TotalSales.Equal(decimal.RequireFromString("550.00")))
}

func TestClose_Sobrante(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, "250.00", entity.PaymentCash)
	seedPurchase(t, store, "80.00", entity.PaymentCash)
	seedExpense(t, store, "20.00", entity.PaymentCash)

	uc := newCloseFixture(store, &stubAuthorizer{})
	resp, _, err := uc.Close(context.Background(), closeInput("100.00", "255.00"))
	require.NoError(t, err)

	assert.True(t, resp.DifferenceAmount.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, entity.DifferenceSurplus, resp.DifferenceType)
}

func TestClose_Faltante(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, "250.00", entity.PaymentCash)

	uc := newCloseFixture(store, &stubAuthorizer{})
	// expected = 100 + 250 = 350, contado 340: faltan 10.
	resp, _, err := uc.Close(context.Background(), closeInput("100.00", "340.00"))
	require.NoError(t, err)

	assert.True(t, resp.DifferenceAmount.Equal(decimal.RequireFromString("-10.00")))
	assert.Equal(t, entity.DifferenceDeficit, resp.DifferenceType)
}

func TestClose_FronteraDelEpsilon(t *testing.T) {
	store := memory.NewStore()
	// 100.004 se redondea a 100.00 al agregar el flujo del día.
	seedSale(t, store, "100.004", entity.PaymentCash)

	uc := newCloseFixture(store, &stubAuthorizer{})
	resp, _, err := uc.Close(context.Background(), closeInput("0.00", "100.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.DifferenceExact, resp.DifferenceType, "|diferencia| < 0.01 es exact")
}

func TestClose_UnCentavoYaEsSobrante(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, "100.00", entity.PaymentCash)

	uc := newCloseFixture(store, &stubAuthorizer{})
	// diferencia = 0.01 exacto: no es menor que el epsilon, clasifica surplus.
	resp, _, err := uc.Close(context.Background(), closeInput("0.00", "100.01"))
	require.NoError(t, err)
	assert.Equal(t, entity.DifferenceSurplus, resp.DifferenceType)
	assert.True(t, resp.DifferenceAmount.Equal(decimal.RequireFromString("0.01")))
}

func TestClose_DiaSinMovimientos(t *testing.T) {
	store := memory.NewStore()
	uc := newCloseFixture(store, &stubAuthorizer{})

	resp, _, err := uc.Close(context.Background(), closeInput("100.00", "100.00"))
	require.NoError(t, err)
	assert.True(t, resp.ExpectedEnding.Equal(decimal.RequireFromString("100.00")), "sin movimientos expected = starting")
	assert.Equal(t, entity.DifferenceExact, resp.DifferenceType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia: un segundo cierre del mismo día devuelve la sesión original
// intacta con ErrAlreadyClosed y no invoca al autorizador.
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_SegundoCierreDevuelveSesionOriginal(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, "250.00", entity.PaymentCash)

	auth := &stubAuthorizer{}
	uc := newCloseFixture(store, auth)

	_, first, err := uc.Close(context.Background(), closeInput("100.00", "350.00"))
	require.NoError(t, err)
	require.Equal(t, 1, auth.calls)

	// Segundo intento con montos distintos: no modifica nada.
	resp, existing, err := uc.Close(context.Background(), closeInput("999.00", "1.00"))
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
	assert.Nil(t, resp)
	require.NotNil(t, existing)
	assert.Equal(t, first.ID, existing.ID, "se devuelve la sesión original")
	assert.True(t, existing.StartingCash.Equal(first.StartingCash), "la sesión original queda intacta")
	assert.Equal(t, 1, auth.calls, "el guard de idempotencia corta antes de pedir credenciales")
}

func TestClose_CarreraEnElInsertDevuelveLaSesionGanadora(t *testing.T) {
	store := memory.NewStore()
	winner := &entity.CashDrawerSession{
		ID:          uuid.New().String(),
		UserID:      testManagerID,
		SessionDate: time.Now().UTC(),
		Closed:      true,
	}
	sessions := &racedSessionRepo{winner: winner}
	runner := &passthroughCashTxRunner{sessions: sessions, store: store}
	uc := cashbox.NewCloseCashUseCase(runner, sessions, &stubAuthorizer{}, time.UTC, testEpsilon)

	resp, existing, err := uc.Close(context.Background(), closeInput("100.00", "100.00"))
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
	assert.Nil(t, resp)
	require.NotNil(t, existing, "el conflicto por carrera también devuelve la sesión existente")
	assert.Equal(t, winner.ID, existing.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización a cuatro ojos: sin aprobación del segundo usuario no hay cierre.
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_AutorizacionRechazadaNoCierra(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, "250.00", entity.PaymentCash)

	uc := newCloseFixture(store, &stubAuthorizer{err: domain.ErrUnauthorized})
	_, _, err := uc.Close(context.Background(), closeInput("100.00", "350.00"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// No quedó sesión persistida: se puede cerrar después con credenciales válidas.
	session, err := store.CashSessionRepo().GetByDate(time.Now())
	require.NoError(t, err)
	assert.Nil(t, session, "un cierre rechazado no persiste nada")
}

func TestClose_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := newCloseFixture(store, &stubAuthorizer{})

	in := closeInput("100.00", "100.00")
	in.UserID = ""
	_, _, err := uc.Close(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Close(context.Background(), closeInput("-1.00", "100.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "starting_cash negativo")

	_, _, err = uc.Close(context.Background(), closeInput("100.00", "-1.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ending_cash negativo")
}
