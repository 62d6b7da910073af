package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// AdjustmentUseCase aplica correcciones manuales de stock sobre un lote y las
// registra en el libro de ajustes (append-only) con snapshots antes/después.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	// maxManual techo para aumentos por ajuste_manual; el origen observado no
	// acota el aumento contra la cantidad inicial, solo contra esta magnitud.
	maxManual decimal.Decimal
	now       func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso. maxManual viene de configuración.
func NewAdjustmentUseCase(txRunner TxRunner, adjustmentRepo repository.AdjustmentRepository, maxManual decimal.Decimal) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, adjustmentRepo: adjustmentRepo, maxManual: maxManual, now: time.Now}
}

// ListByLot devuelve el historial de ajustes de un lote en orden de inserción.
func (uc *AdjustmentUseCase) ListByLot(lotID string) ([]*entity.Adjustment, error) {
	if lotID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.adjustmentRepo.ListByLot(lotID)
}

// Adjust aplica un ajuste con signo sobre un lote:
//   - merma, caducado, daño: delta negativo; |delta| no puede exceder el stock
//     actual (el stock resultante nunca baja de cero).
//   - ajuste_manual: delta positivo, acotado por el techo configurado.
//
// El lote se bloquea (FOR UPDATE) para que los snapshots StockBefore/StockAfter
// sean exactos incluso con ventas concurrentes.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, lotID string, delta decimal.Decimal, reason, userID string) (*entity.Adjustment, error) {
	if lotID == "" || userID == "" || delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidAdjustmentReason(reason) {
		return nil, domain.ErrInvalidInput
	}
	if entity.IsDecreaseReason(reason) && delta.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if reason == entity.ReasonAjusteManual {
		if delta.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if delta.GreaterThan(uc.maxManual) {
			return nil, domain.ErrInvalidInput
		}
	}

	var adjustment *entity.Adjustment
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		adjustmentRepo repository.AdjustmentRepository,
		_ repository.SaleRepository,
		_ repository.PurchaseRepository,
	) error {
		lot, err := lotRepo.GetByIDForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		newStock := lot.StockQuantity.Add(delta)
		if newStock.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if err := lotRepo.UpdateStock(lot.ID, newStock); err != nil {
			return err
		}
		adjustment = &entity.Adjustment{
			ID:            uuid.New().String(),
			LotID:         lot.ID,
			QuantityDelta: delta,
			Reason:        reason,
			UserID:        userID,
			StockBefore:   lot.StockQuantity,
			StockAfter:    newStock,
			CreatedAt:     uc.now(),
		}
		return adjustmentRepo.Create(adjustment)
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}
