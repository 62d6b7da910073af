package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ClassifyLot: la precedencia es estricta y la primera condición que aplica
// gana: depleted > expired > near_expiry > low_stock > normal. Un lote agotado
// es depleted aunque además esté vencido; uno vencido es expired aunque además
// tenga stock bajo.
// ──────────────────────────────────────────────────────────────────────────────

var (
	testToday     = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	testThreshold = decimal.NewFromInt(5)
	testNearDays  = 3
)

func datePtr(t time.Time) *time.Time { return &t }

func buildLot(stock, initial int64, expiration *time.Time) *entity.InventoryLot {
	return &entity.InventoryLot{
		ID:              "lot-1",
		ProductID:       "prod-1",
		InitialQuantity: decimal.NewFromInt(initial),
		StockQuantity:   decimal.NewFromInt(stock),
		ExpirationDate:  expiration,
		CreatedAt:       testToday.AddDate(0, 0, -10),
	}
}

func TestClassifyLot_Precedencia(t *testing.T) {
	expired := datePtr(testToday.AddDate(0, 0, -1))
	nearExpiry := datePtr(testToday.AddDate(0, 0, 2))
	farExpiry := datePtr(testToday.AddDate(0, 0, 30))

	cases := []struct {
		name string
		lot  *entity.InventoryLot
		want string
	}{
		{"stock cero sin vencimiento", buildLot(0, 10, nil), inventory.StatusDepleted},
		{"stock cero y vencido: depleted gana a expired", buildLot(0, 10, expired), inventory.StatusDepleted},
		{"vencido con stock", buildLot(8, 10, expired), inventory.StatusExpired},
		{"vencido con stock bajo: expired gana a low_stock", buildLot(2, 10, expired), inventory.StatusExpired},
		{"vence hoy", buildLot(8, 10, datePtr(testToday)), inventory.StatusNearExpiry},
		{"vence en 2 días", buildLot(8, 10, nearExpiry), inventory.StatusNearExpiry},
		{"vence justo en el umbral de días", buildLot(8, 10, datePtr(testToday.AddDate(0, 0, 3))), inventory.StatusNearExpiry},
		{"por vencer con stock bajo: near_expiry gana a low_stock", buildLot(2, 10, nearExpiry), inventory.StatusNearExpiry},
		{"stock igual al umbral", buildLot(5, 10, farExpiry), inventory.StatusLowStock},
		{"stock bajo sin vencimiento", buildLot(3, 10, nil), inventory.StatusLowStock},
		{"stock sano con vencimiento lejano", buildLot(8, 10, farExpiry), inventory.StatusNormal},
		{"stock sano sin vencimiento", buildLot(8, 10, nil), inventory.StatusNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ClassifyLot(tc.lot, testToday, testThreshold, testNearDays)
			assert.Equal(t, tc.want, got, "clasificación incorrecta para %s", tc.name)
		})
	}
}

func TestClassifyLot_UmbralPorProducto(t *testing.T) {
	// Con umbral 2, un stock de 3 ya no es low_stock.
	lot := buildLot(3, 10, nil)
	got := inventory.ClassifyLot(lot, testToday, decimal.NewFromInt(2), testNearDays)
	assert.Equal(t, inventory.StatusNormal, got, "el umbral bajo por producto debe relajar la alerta")
}

func TestClassifyLot_DiaCalendarioNoHora(t *testing.T) {
	// Vence hoy a las 00:00 pero "ahora" son las 23:59: sigue sin estar vencido
	// porque la comparación es por día calendario.
	lateToday := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	lot := buildLot(8, 10, datePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	got := inventory.ClassifyLot(lot, lateToday, testThreshold, testNearDays)
	assert.Equal(t, inventory.StatusNearExpiry, got, "vencer hoy es near_expiry, no expired")
}

func TestPercentageRemaining(t *testing.T) {
	assert.InDelta(t, 50.0, inventory.PercentageRemaining(buildLot(5, 10, nil)), 0.001)
	assert.InDelta(t, 0.0, inventory.PercentageRemaining(buildLot(0, 10, nil)), 0.001)
	assert.InDelta(t, 100.0, inventory.PercentageRemaining(buildLot(10, 10, nil)), 0.001)

	// InitialQuantity cero o negativa no divide: devuelve 0.
	zeroInitial := buildLot(5, 0, nil)
	assert.Equal(t, 0.0, inventory.PercentageRemaining(zeroInitial), "inicial cero no debe dividir")

	// Stock por encima del inicial (ajuste manual) se acota a 100.
	over := buildLot(15, 10, nil)
	assert.Equal(t, 100.0, inventory.PercentageRemaining(over), "el porcentaje se acota a 100")
}

func TestDaysUntilExpiry(t *testing.T) {
	assert.Nil(t, inventory.DaysUntilExpiry(buildLot(5, 10, nil), testToday), "sin fecha no hay días")

	d := inventory.DaysUntilExpiry(buildLot(5, 10, datePtr(testToday.AddDate(0, 0, 4))), testToday)
	assert.Equal(t, 4, *d)

	past := inventory.DaysUntilExpiry(buildLot(5, 10, datePtr(testToday.AddDate(0, 0, -2))), testToday)
	assert.Equal(t, -2, *past, "días negativos cuando ya venció")
}
