package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/application/dto"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	dominventory "github.com/tu-usuario/fruver-pos/internal/domain/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// Thresholds umbrales de clasificación de lotes. Vienen de configuración;
// el umbral de stock bajo puede sobreescribirse por producto.
type Thresholds struct {
	LowStock       decimal.Decimal
	NearExpiryDays int
}

// LotUseCase alta y consulta de lotes de inventario.
type LotUseCase struct {
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
	thresholds  Thresholds
	now         func() time.Time
}

// NewLotUseCase construye el caso de uso de lotes.
func NewLotUseCase(lotRepo repository.LotRepository, productRepo repository.ProductRepository, thresholds Thresholds) *LotUseCase {
	return &LotUseCase{
		lotRepo:     lotRepo,
		productRepo: productRepo,
		thresholds:  thresholds,
		now:         time.Now,
	}
}

// CreateLot crea un lote nuevo para un producto. La cantidad inicial debe ser
// positiva y el precio de compra no negativo; StockQuantity arranca igual a
// InitialQuantity y solo baja por ventas o ajustes.
func (uc *LotUseCase) CreateLot(productID string, quantity, purchasePrice decimal.Decimal, purchaseID string, expiration *time.Time) (string, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	if purchasePrice.LessThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}
	lot := &entity.InventoryLot{
		ID:              uuid.New().String(),
		ProductID:       productID,
		PurchaseID:      purchaseID,
		InitialQuantity: quantity,
		StockQuantity:   quantity,
		PurchasePrice:   purchasePrice.Round(2),
		ExpirationDate:  expiration,
		CreatedAt:       uc.now(),
	}
	if err := uc.lotRepo.Create(lot); err != nil {
		return "", err
	}
	return lot.ID, nil
}

// ListLots devuelve los lotes de un producto en orden FIFO, decorados con
// estado derivado, porcentaje restante y días hasta vencimiento.
func (uc *LotUseCase) ListLots(productID string) ([]dto.LotResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	today := uc.now()
	threshold := uc.lowStockThresholdFor(product)
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, uc.toLotResponse(lot, today, threshold))
	}
	return out, nil
}

// InventoryOverview agrega los lotes por producto: stock total, lotes activos
// y banderas de alerta (OR lógico sobre los lotes activos). El total se suma
// siempre desde los lotes: no hay contador cacheado autoritativo.
func (uc *LotUseCase) InventoryOverview() ([]dto.ProductOverviewDTO, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.ListAll()
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]*entity.InventoryLot, len(products))
	for _, lot := range lots {
		byProduct[lot.ProductID] = append(byProduct[lot.ProductID], lot)
	}

	today := uc.now()
	out := make([]dto.ProductOverviewDTO, 0, len(products))
	for _, product := range products {
		threshold := uc.lowStockThresholdFor(product)
		item := dto.ProductOverviewDTO{
			ProductID:   product.ID,
			ProductName: product.Name,
			TotalStock:  decimal.Zero,
		}
		var pctSum float64
		for _, lot := range byProduct[product.ID] {
			if lot.IsDepleted() {
				continue
			}
			item.TotalStock = item.TotalStock.Add(lot.StockQuantity)
			item.ActiveLots++
			pctSum += dominventory.PercentageRemaining(lot)
			switch dominventory.ClassifyLot(lot, today, threshold, uc.thresholds.NearExpiryDays) {
			case dominventory.StatusLowStock:
				item.HasLowStock = true
			case dominventory.StatusNearExpiry:
				item.HasNearExpiry = true
			}
		}
		if item.ActiveLots > 0 {
			item.AvgPercentageRemaining = pctSum / float64(item.ActiveLots)
		}
		out = append(out, item)
	}
	return out, nil
}

// lowStockThresholdFor resuelve el umbral de stock bajo: el del producto si
// está configurado, si no el global.
func (uc *LotUseCase) lowStockThresholdFor(product *entity.Product) decimal.Decimal {
	if product.LowStockThreshold != nil {
		return *product.LowStockThreshold
	}
	return uc.thresholds.LowStock
}

func (uc *LotUseCase) toLotResponse(lot *entity.InventoryLot, today time.Time, threshold decimal.Decimal) dto.LotResponse {
	resp := dto.LotResponse{
		ID:                  lot.ID,
		ProductID:           lot.ProductID,
		PurchaseID:          lot.PurchaseID,
		InitialQuantity:     lot.InitialQuantity,
		StockQuantity:       lot.StockQuantity,
		PurchasePrice:       lot.PurchasePrice,
		CreatedAt:           lot.CreatedAt.Format(time.RFC3339),
		Status:              dominventory.ClassifyLot(lot, today, threshold, uc.thresholds.NearExpiryDays),
		PercentageRemaining: dominventory.PercentageRemaining(lot),
		DaysUntilExpiry:     dominventory.DaysUntilExpiry(lot, today),
	}
	if lot.ExpirationDate != nil {
		resp.ExpirationDate = lot.ExpirationDate.Format("2006-01-02")
	}
	return resp
}
