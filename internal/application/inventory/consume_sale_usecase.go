package inventory

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

// ConsumeSaleUseCase registra una venta consumiendo stock de lotes en orden
// FIFO (vence primero, sale primero) dentro de una transacción serializable
// por producto. Si el stock disponible no alcanza para cualquier renglón, la
// venta completa falla y ningún lote se modifica.
type ConsumeSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewConsumeSaleUseCase construye el caso de uso.
func NewConsumeSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *ConsumeSaleUseCase {
	return &ConsumeSaleUseCase{txRunner: txRunner, productRepo: productRepo, now: time.Now}
}

// SaleItemInput renglón de venta a consumir.
type SaleItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SaleInput entrada para ConsumeForSale.
type SaleInput struct {
	UserID        string
	PaymentMethod string
	Items         []SaleItemInput
}

// ConsumeForSale valida la entrada, bloquea los lotes de cada producto
// (SELECT FOR UPDATE), verifica disponibilidad total ANTES de mutar nada y
// recién entonces asigna FIFO y persiste venta, renglones y asignaciones.
// Devuelve domain.InsufficientStockErrors con todos los faltantes si no alcanza.
func (uc *ConsumeSaleUseCase) ConsumeForSale(ctx context.Context, input SaleInput) (*dto.SaleResponse, error) {
	if len(input.Items) == 0 || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Cantidad total solicitada por producto, preservando orden de aparición.
	requested := make(map[string]decimal.Decimal)
	productOrder := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if _, seen := requested[item.ProductID]; !seen {
			productOrder = append(productOrder, item.ProductID)
		}
		requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
	}

	// Validar existencia de productos antes de abrir la transacción.
	for _, productID := range productOrder {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	saleID := uuid.New().String()
	var resp *dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.AdjustmentRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
	) error {
		// Fase 1: bloquear los lotes de cada producto y verificar que el total
		// disponible cubre lo solicitado. Se recogen TODOS los faltantes antes
		// de fallar para que el cliente pueda reportarlos juntos.
		lotsByProduct := make(map[string][]*entity.InventoryLot, len(productOrder))
		var shortages domain.InsufficientStockErrors
		for _, productID := range productOrder {
			lots, err := lotRepo.ListByProductForUpdate(productID)
			if err != nil {
				return err
			}
			available := decimal.Zero
			for _, lot := range lots {
				available = available.Add(lot.StockQuantity)
			}
			if available.LessThan(requested[productID]) {
				shortages = append(shortages, &domain.InsufficientStockError{
					ProductID: productID,
					Requested: requested[productID],
					Available: available,
				})
				continue
			}
			lotsByProduct[productID] = lots
		}
		if len(shortages) > 0 {
			return shortages
		}

		// Fase 2: asignación FIFO. El lote que vence primero se agota por
		// completo antes de tocar el siguiente.
		var allocations []entity.SaleAllocation
		for _, productID := range productOrder {
			needed := requested[productID]
			for _, lot := range lotsByProduct[productID] {
				if !needed.GreaterThan(decimal.Zero) {
					break
				}
				if lot.IsDepleted() {
					continue
				}
				take := decimal.Min(needed, lot.StockQuantity)
				newStock := lot.StockQuantity.Sub(take)
				if err := lotRepo.UpdateStock(lot.ID, newStock); err != nil {
					return err
				}
				lot.StockQuantity = newStock
				allocations = append(allocations, entity.SaleAllocation{
					ID:        uuid.New().String(),
					SaleID:    saleID,
					LotID:     lot.ID,
					ProductID: productID,
					Quantity:  take,
					UnitCost:  lot.PurchasePrice,
					CreatedAt: now,
				})
				needed = needed.Sub(take)
			}
		}

		// Fase 3: persistir la venta con renglones y asignaciones.
		total := decimal.Zero
		items := make([]entity.SaleItem, 0, len(input.Items))
		for _, in := range input.Items {
			subtotal := in.Quantity.Mul(in.UnitPrice).Round(2)
			total = total.Add(subtotal)
			items = append(items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				UnitPrice: in.UnitPrice,
				Subtotal:  subtotal,
			})
		}
		sale := &entity.Sale{
			ID:            saleID,
			Total:         total.Round(2),
			PaymentMethod: input.PaymentMethod,
			Status:        entity.SaleCompleted,
			UserID:        input.UserID,
			Date:          now,
			CreatedAt:     now,
			Items:         items,
			Allocations:   allocations,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		allocDTOs := make([]dto.SaleAllocationDTO, 0, len(allocations))
		for _, a := range allocations {
			allocDTOs = append(allocDTOs, dto.SaleAllocationDTO{
				LotID:     a.LotID,
				ProductID: a.ProductID,
				Quantity:  a.Quantity,
			})
		}
		resp = &dto.SaleResponse{SaleID: saleID, Total: sale.Total, Allocations: allocDTOs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
