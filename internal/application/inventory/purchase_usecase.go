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

// PurchaseUseCase registra una compra a proveedor y crea sus lotes en la misma
// transacción: es el productor del ciclo de vida de los lotes. Las compras en
// efectivo alimentan el flujo de caja del día.
type PurchaseUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, productRepo: productRepo, now: time.Now}
}

// PurchaseLineInput renglón de compra; origina un lote propio.
type PurchaseLineInput struct {
	ProductID      string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	ExpirationDate *time.Time
}

// PurchaseInput entrada para RegisterPurchase.
type PurchaseInput struct {
	UserID        string
	Supplier      string
	PaymentMethod string
	Lines         []PurchaseLineInput
}

// RegisterPurchase valida renglones, persiste la compra y crea un lote por
// renglón con StockQuantity = InitialQuantity, todo en una transacción.
func (uc *PurchaseUseCase) RegisterPurchase(ctx context.Context, input PurchaseInput) (*dto.CreatePurchaseResponse, error) {
	if len(input.Lines) == 0 || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, line := range input.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		total = total.Add(line.Quantity.Mul(line.UnitCost).Round(2))
	}

	now := uc.now()
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		Supplier:      input.Supplier,
		Total:         total.Round(2),
		PaymentMethod: input.PaymentMethod,
		UserID:        input.UserID,
		Date:          now,
		CreatedAt:     now,
	}

	lotIDs := make([]string, 0, len(input.Lines))
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, line := range input.Lines {
			lot := &entity.InventoryLot{
				ID:              uuid.New().String(),
				ProductID:       line.ProductID,
				PurchaseID:      purchase.ID,
				InitialQuantity: line.Quantity,
				StockQuantity:   line.Quantity,
				PurchasePrice:   line.UnitCost.Round(2),
				ExpirationDate:  line.ExpirationDate,
				CreatedAt:       now,
			}
			if err := lotRepo.Create(lot); err != nil {
				return err
			}
			lotIDs = append(lotIDs, lot.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreatePurchaseResponse{PurchaseID: purchase.ID, Total: purchase.Total, LotIDs: lotIDs}, nil
}
