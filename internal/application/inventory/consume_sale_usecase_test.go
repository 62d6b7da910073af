package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

func seedProduct(t *testing.T, store *memory.Store, name string) string {
	t.Helper()
	id := uuid.New().String()
	err := store.ProductRepo().Create(&entity.Product{
		ID:          id,
		Name:        name,
		UnitMeasure: entity.UnitKilogram,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	return id
}

func seedLot(t *testing.T, store *memory.Store, productID string, stock int64, expiration *time.Time, createdAt time.Time) string {
	t.Helper()
	id := uuid.New().String()
	err := store.LotRepo().Create(&entity.InventoryLot{
		ID:              id,
		ProductID:       productID,
		InitialQuantity: decimal.NewFromInt(stock),
		StockQuantity:   decimal.NewFromInt(stock),
		PurchasePrice:   decimal.NewFromInt(2),
		ExpirationDate:  expiration,
		CreatedAt:       createdAt,
	})
	require.NoError(t, err)
	return id
}

func expiresIn(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}

func stockOf(t *testing.T, store *memory.Store, lotID string) decimal.Decimal {
	t.Helper()
	lot, err := store.LotRepo().GetByID(lotID)
	require.NoError(t, err)
	require.NotNil(t, lot)
	return lot.StockQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo FIFO: el lote que vence primero se agota por completo antes de
// tocar el siguiente; los empates se resuelven por fecha de creación.
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumeForSale_FIFOVencePrimeroSalePrimero(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Tomate chonto")

	base := time.Now().Add(-48 * time.Hour)
	// Lote B se creó antes pero vence después: el orden lo manda el vencimiento.
	lotB := seedLot(t, store, productID, 5, expiresIn(5), base)
	lotA := seedLot(t, store, productID, 5, expiresIn(3), base.Add(time.Hour))

	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())
	resp, err := uc.ConsumeForSale(context.Background(), inventory.SaleInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
		Items: []inventory.SaleItemInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(7), UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, resp.Allocations, 2, "7 unidades deben salir de dos lotes")
	assert.Equal(t, lotA, resp.Allocations[0].LotID, "el lote que vence primero sale primero")
	assert.True(t, resp.Allocations[0].Quantity.Equal(decimal.NewFromInt(5)), "el primer lote se agota por completo")
	assert.Equal(t, lotB, resp.Allocations[1].LotID)
	assert.True(t, resp.Allocations[1].Quantity.Equal(decimal.NewFromInt(2)))

	assert.True(t, stockOf(t, store, lotA).IsZero(), "lote A agotado")
	assert.True(t, stockOf(t, store, lotB).Equal(decimal.NewFromInt(3)), "lote B con el remanente")

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(21)), "total = 7 * 3")
}

func TestConsumeForSale_SinVencimientoVaAlFinal(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Papa pastusa")

	base := time.Now().Add(-48 * time.Hour)
	lotNoExpiry := seedLot(t, store, productID, 10, nil, base)
	lotExpiring := seedLot(t, store, productID, 4, expiresIn(2), base.Add(time.Hour))

	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())
	resp, err := uc.ConsumeForSale(context.Background(), inventory.SaleInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
		Items: []inventory.SaleItemInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Allocations, 2)
	assert.Equal(t, lotExpiring, resp.Allocations[0].LotID, "el lote con fecha sale antes que el que no vence")
	assert.Equal(t, lotNoExpiry, resp.Allocations[1].LotID)
	assert.True(t, stockOf(t, store, lotExpiring).IsZero())
	assert.True(t, stockOf(t, store, lotNoExpiry).Equal(decimal.NewFromInt(8)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Todo-o-nada: si un renglón no alcanza el stock, no se modifica ningún lote
// de ningún producto y se reportan todos los faltantes juntos.
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumeForSale_TodoONada(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Aguacate hass")

	base := time.Now().Add(-48 * time.Hour)
	lot1 := seedLot(t, store, productID, 50, expiresIn(3), base)
	lot2 := seedLot(t, store, productID, 30, expiresIn(5), base.Add(time.Hour))

	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())
	resp, err := uc.ConsumeForSale(context.Background(), inventory.SaleInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
		Items: []inventory.SaleItemInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(2)},
		},
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortages domain.InsufficientStockErrors
	require.ErrorAs(t, err, &shortages)
	require.Len(t, shortages, 1)
	assert.Equal(t, productID, shortages[0].ProductID)
	assert.True(t, shortages[0].Requested.Equal(decimal.NewFromInt(100)))
	assert.True(t, shortages[0].Available.Equal(decimal.NewFromInt(80)), "el faltante reporta lo disponible sumando todos los lotes")

	// Ningún lote fue tocado.
	assert.True(t, stockOf(t, store, lot1).Equal(decimal.NewFromInt(50)))
	assert.True(t, stockOf(t, store, lot2).Equal(decimal.NewFromInt(30)))
}

func TestConsumeForSale_MultiProductoReportaTodosLosFaltantes(t *testing.T) {
	store := memory.NewStore()
	tomate := seedProduct(t, store, "Tomate")
	cebolla := seedProduct(t, store, "Cebolla")
	papa := seedProduct(t, store, "Papa")

	base := time.Now().Add(-48 * time.Hour)
	tomateLot := seedLot(t, store, tomate, 10, expiresIn(3), base)
	seedLot(t, store, cebolla, 2, expiresIn(4), base)
	seedLot(t, store, papa, 1, nil, base)

	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())
	_, err := uc.ConsumeForSale(context.Background(), inventory.SaleInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCard,
		Items: []inventory.SaleItemInput{
			{ProductID: tomate, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1)},
			{ProductID: cebolla, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1)},
			{ProductID: papa, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	var shortages domain.InsufficientStockErrors
	require.ErrorAs(t, err, &shortages)
	assert.Len(t, shortages, 2, "se reportan los faltantes de TODOS los productos, no solo el primero")

	// El producto que sí alcanzaba tampoco se consumió.
	assert.True(t, stockOf(t, store, tomateLot).Equal(decimal.NewFromInt(10)), "venta fallida no consume nada")
}

func TestConsumeForSale_RenglonesRepetidosSeAcumulan(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Mango")
	seedLot(t, store, productID, 5, expiresIn(3), time.Now().Add(-time.Hour))

	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())
	_, err := uc.ConsumeForSale(context.Background(), inventory.SaleInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
		Items: []inventory.SaleItemInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(1)},
			{ProductID: productID, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	// 3 + 3 = 6 contra 5 disponibles: la verificación es sobre el acumulado.
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestConsumeForSale_Validaciones(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Limón")
	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())

	cases := []struct {
		name  string
		input inventory.SaleInput
		want  error
	}{
		{"sin renglones", inventory.SaleInput{UserID: testUserID, PaymentMethod: entity.PaymentCash}, domain.ErrInvalidInput},
		{"sin usuario", inventory.SaleInput{PaymentMethod: entity.PaymentCash, Items: []inventory.SaleItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"método de pago inválido", inventory.SaleInput{UserID: testUserID, PaymentMethod: "cheque", Items: []inventory.SaleItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.SaleInput{UserID: testUserID, PaymentMethod: entity.PaymentCash, Items: []inventory.SaleItemInput{{ProductID: productID, Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.SaleInput{UserID: testUserID, PaymentMethod: entity.PaymentCash, Items: []inventory.SaleItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.SaleInput{UserID: testUserID, PaymentMethod: entity.PaymentCash, Items: []inventory.SaleItemInput{{ProductID: uuid.New().String(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ConsumeForSale(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConsumeForSale_CantidadesFraccionarias(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Uchuva")

	lotID := uuid.New().String()
	require.NoError(t, store.LotRepo().Create(&entity.InventoryLot{
		ID:              lotID,
		ProductID:       productID,
		InitialQuantity: decimal.RequireFromString("2.50"),
		StockQuantity:   decimal.RequireFromString("2.50"),
		PurchasePrice:   decimal.RequireFromString("4.00"),
		ExpirationDate:  expiresIn(3),
		CreatedAt:       time.Now().Add(-time.Hour),
	}))

	uc := inventory.NewConsumeSaleUseCase(store, store.ProductRepo())
	resp, err := uc.ConsumeForSale(context.Background(), inventory.SaleInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
		Items: []inventory.SaleItemInput{
			{ProductID: productID, Quantity: decimal.RequireFromString("1.25"), UnitPrice: decimal.RequireFromString("7.90")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("9.88")), "el total se redondea a 2 decimales, got %s", resp.Total)
	assert.True(t, stockOf(t, store, lotID).Equal(decimal.RequireFromString("1.25")))
}
