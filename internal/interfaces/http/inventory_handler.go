package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fruver-pos/internal/application/dto"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// InventoryHandler maneja lotes, ajustes, compras y el overview de inventario.
type InventoryHandler struct {
	lots        *inventory.LotUseCase
	adjustments *inventory.AdjustmentUseCase
	purchases   *inventory.PurchaseUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(lots *inventory.LotUseCase, adjustments *inventory.AdjustmentUseCase, purchases *inventory.PurchaseUseCase) *InventoryHandler {
	return &InventoryHandler{lots: lots, adjustments: adjustments, purchases: purchases}
}

// parseExpirationDate acepta YYYY-MM-DD o vacío (sin vencimiento).
func parseExpirationDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateLot godoc
// @Summary      Crear lote de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "product_id, quantity, purchase_price, expiration_date (YYYY-MM-DD, opcional)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *InventoryHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expiration, err := parseExpirationDate(in.ExpirationDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiration_date debe ser YYYY-MM-DD"})
	}
	id, err := h.lots.CreateLot(in.ProductID, in.Quantity, in.PurchasePrice, in.PurchaseID, expiration)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListLots godoc
// @Summary      Listar lotes de un producto en orden FIFO
// @Description  Devuelve los lotes con status, porcentaje restante y días
//
//	hasta el vencimiento, ordenados como serán consumidos.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	productID := c.Params("id")
	lots, err := h.lots.ListLots(productID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de producto requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(lots), "lots": lots})
}

// Overview godoc
// @Summary      Resumen de inventario por producto
// @Description  Totales por producto recalculados desde los lotes, con banderas
//
//	de bajo stock y próximos a vencer.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductOverviewDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/overview [get]
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.lots.InventoryOverview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(overview), "products": overview})
}

// AdjustLot godoc
// @Summary      Ajustar stock de un lote
// @Description  merma, caducado y daño disminuyen (delta negativo, acotado por
//
//	el stock actual); ajuste_manual aumenta (delta positivo, acotado
//	por el techo configurado). Queda registrado en el libro de ajustes.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del lote"
// @Param        body  body  dto.AdjustLotRequest  true  "quantity_delta (con signo), reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/adjustments [post]
func (h *InventoryHandler) AdjustLot(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	lotID := c.Params("id")
	var in dto.AdjustLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adjustment, err := h.adjustments.Adjust(c.Context(), lotID, in.QuantityDelta, in.Reason, userID)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ajuste inválido: revise signo, razón y magnitud"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adjustment))
}

// ListAdjustments godoc
// @Summary      Historial de ajustes de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {array}   dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *fiber.Ctx) error {
	lotID := c.Params("id")
	adjustments, err := h.adjustments.ListByLot(lotID)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de lote requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toAdjustmentResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}

// CreatePurchase godoc
// @Summary      Registrar compra a proveedor
// @Description  Crea la compra y un lote por renglón en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier, payment_method, lines"
// @Success      201   {object}  dto.CreatePurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *InventoryHandler) CreatePurchase(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.PurchaseLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		expiration, err := parseExpirationDate(line.ExpirationDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiration_date debe ser YYYY-MM-DD"})
		}
		lines = append(lines, inventory.PurchaseLineInput{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitCost:       line.UnitCost,
			ExpirationDate: expiration,
		})
	}
	out, err := h.purchases.RegisterPurchase(c.Context(), inventory.PurchaseInput{
		UserID:        userID,
		Supplier:      in.Supplier,
		PaymentMethod: in.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func toAdjustmentResponse(a *entity.Adjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:            a.ID,
		LotID:         a.LotID,
		QuantityDelta: a.QuantityDelta,
		Reason:        a.Reason,
		StockBefore:   a.StockBefore,
		StockAfter:    a.StockAfter,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
