package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/infrastructure/memory"
)

func TestRegisterPurchase_UnLotePorRenglon(t *testing.T) {
	store := memory.NewStore()
	tomate := seedProduct(t, store, "Tomate")
	cebolla := seedProduct(t, store, "Cebolla")

	uc := inventory.NewPurchaseUseCase(store, store.ProductRepo())
	resp, err := uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{
		UserID:        testUserID,
		Supplier:      "Central de Abastos",
		PaymentMethod: entity.PaymentCash,
		Lines: []inventory.PurchaseLineInput{
			{ProductID: tomate, Quantity: decimal.NewFromInt(30), UnitCost: decimal.RequireFromString("1.50"), ExpirationDate: expiresIn(5)},
			{ProductID: cebolla, Quantity: decimal.NewFromInt(20), UnitCost: decimal.RequireFromString("0.80")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.LotIDs, 2, "cada renglón origina un lote")

	// total = 30*1.50 + 20*0.80 = 45 + 16 = 61
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("61.00")), "total incorrecto: %s", resp.Total)

	purchase, err := store.PurchaseRepo().GetByID(resp.PurchaseID)
	require.NoError(t, err)
	require.NotNil(t, purchase)
	assert.Equal(t, "Central de Abastos", purchase.Supplier)

	// Los lotes quedaron ligados a la compra con el stock completo.
	for _, lotID := range resp.LotIDs {
		lot, err := store.LotRepo().GetByID(lotID)
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.Equal(t, resp.PurchaseID, lot.PurchaseID)
		assert.True(t, lot.StockQuantity.Equal(lot.InitialQuantity))
	}
}

func TestRegisterPurchase_ProductoInexistenteNoDejaNada(t *testing.T) {
	store := memory.NewStore()
	tomate := seedProduct(t, store, "Tomate")

	uc := inventory.NewPurchaseUseCase(store, store.ProductRepo())
	_, err := uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{
		UserID:        testUserID,
		Supplier:      "Proveedor",
		PaymentMethod: entity.PaymentCash,
		Lines: []inventory.PurchaseLineInput{
			{ProductID: tomate, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(1)},
			{ProductID: uuid.New().String(), Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ni la compra ni el lote del renglón válido se persistieron.
	lots, err := store.LotRepo().ListByProduct(tomate)
	require.NoError(t, err)
	assert.Empty(t, lots, "la compra es todo-o-nada")
}

func TestRegisterPurchase_Validaciones(t *testing.T) {
	store := memory.NewStore()
	productID := seedProduct(t, store, "Tomate")
	uc := inventory.NewPurchaseUseCase(store, store.ProductRepo())

	_, err := uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin renglones")

	_, err = uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{
		UserID:        testUserID,
		PaymentMethod: "trueque",
		Lines:         []inventory.PurchaseLineInput{{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago inválido")

	_, err = uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{
		UserID:        testUserID,
		PaymentMethod: entity.PaymentCash,
		Lines:         []inventory.PurchaseLineInput{{ProductID: productID, Quantity: decimal.Zero, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}
