package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	UnitMeasure string `json:"unit_measure"` // kg, unidad
	// LowStockThreshold opcional; nil = umbral global de configuración.
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	UnitMeasure       string           `json:"unit_measure"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	CreatedAt         string           `json:"created_at"`
}

// CreateLotRequest body para POST /api/lots.
type CreateLotRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	PurchaseID     string          `json:"purchase_id"`
	ExpirationDate string          `json:"expiration_date,omitempty"` // YYYY-MM-DD, vacío = sin vencimiento
}

// AdjustLotRequest body para POST /api/lots/:id/adjustments.
type AdjustLotRequest struct {
	QuantityDelta decimal.Decimal `json:"quantity_delta"` // con signo
	Reason        string          `json:"reason"`         // merma, caducado, daño, ajuste_manual
}

// AdjustmentResponse ajuste aplicado, con snapshots de auditoría.
type AdjustmentResponse struct {
	ID            string          `json:"id"`
	LotID         string          `json:"lot_id"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Reason        string          `json:"reason"`
	StockBefore   decimal.Decimal `json:"stock_before"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	CreatedAt     string          `json:"created_at"`
}

// LotResponse lote con campos derivados para listados.
type LotResponse struct {
	ID                  string          `json:"id"`
	ProductID           string          `json:"product_id"`
	PurchaseID          string          `json:"purchase_id"`
	InitialQuantity     decimal.Decimal `json:"initial_quantity"`
	StockQuantity       decimal.Decimal `json:"stock_quantity"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	ExpirationDate      string          `json:"expiration_date,omitempty"`
	CreatedAt           string          `json:"created_at"`
	Status              string          `json:"status"` // normal, low_stock, near_expiry, expired, depleted
	PercentageRemaining float64         `json:"percentage_remaining"`
	DaysUntilExpiry     *int            `json:"days_until_expiry,omitempty"`
}

// ProductOverviewDTO resumen de inventario por producto. Los totales se
// recalculan siempre desde los lotes persistidos, nunca desde un contador.
type ProductOverviewDTO struct {
	ProductID              string          `json:"product_id"`
	ProductName            string          `json:"product_name"`
	TotalStock             decimal.Decimal `json:"total_stock"`
	ActiveLots             int             `json:"active_lots"`
	HasLowStock            bool            `json:"has_low_stock"`
	HasNearExpiry          bool            `json:"has_near_expiry"`
	AvgPercentageRemaining float64         `json:"avg_percentage_remaining"`
}

// SaleItemRequest renglón para POST /api/sales.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales. El consumo de lotes es FIFO
// y todo-o-nada: si falta stock para cualquier renglón no se registra nada.
type CreateSaleRequest struct {
	PaymentMethod string            `json:"payment_method"` // efectivo, tarjeta, transferencia
	Items         []SaleItemRequest `json:"items"`
}

// SaleAllocationDTO qué lote cubrió qué cantidad de la venta.
type SaleAllocationDTO struct {
	LotID     string          `json:"lot_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SaleResponse respuesta de POST /api/sales.
type SaleResponse struct {
	SaleID      string              `json:"sale_id"`
	Total       decimal.Decimal     `json:"total"`
	Allocations []SaleAllocationDTO `json:"allocations"`
}

// StockShortageDTO faltante reportado cuando una venta no alcanza el stock.
type StockShortageDTO struct {
	ProductID string          `json:"product_id"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

// PurchaseLineRequest renglón de compra; cada renglón origina un lote.
type PurchaseLineRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ExpirationDate string          `json:"expiration_date,omitempty"` // YYYY-MM-DD
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier      string                `json:"supplier"`
	PaymentMethod string                `json:"payment_method"`
	Lines         []PurchaseLineRequest `json:"lines"`
}

// CreatePurchaseResponse compra registrada con los lotes creados.
type CreatePurchaseResponse struct {
	PurchaseID string          `json:"purchase_id"`
	Total      decimal.Decimal `json:"total"`
	LotIDs     []string        `json:"lot_ids"`
}
