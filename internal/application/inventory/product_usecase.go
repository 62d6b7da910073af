package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// ProductUseCase administra el catálogo de productos perecederos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso de catálogo.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, now: time.Now}
}

// CreateProduct valida nombre y unidad y persiste el producto. lowStockThreshold
// nil significa usar el umbral global de configuración.
func (uc *ProductUseCase) CreateProduct(name, unitMeasure string, lowStockThreshold *decimal.Decimal) (*entity.Product, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch unitMeasure {
	case entity.UnitKilogram, entity.UnitPiece:
	default:
		return nil, domain.ErrInvalidInput
	}
	if lowStockThreshold != nil && lowStockThreshold.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              name,
		UnitMeasure:       unitMeasure,
		LowStockThreshold: lowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct devuelve el producto o domain.ErrNotFound.
func (uc *ProductUseCase) GetProduct(id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts devuelve el catálogo completo.
func (uc *ProductUseCase) ListProducts() ([]*entity.Product, error) {
	return uc.productRepo.List()
}
