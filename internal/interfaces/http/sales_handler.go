package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fruver-pos/internal/application/dto"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain"
)

// SalesHandler maneja el registro de ventas con consumo FIFO de lotes.
type SalesHandler struct {
	consume *inventory.ConsumeSaleUseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(consume *inventory.ConsumeSaleUseCase) *SalesHandler {
	return &SalesHandler{consume: consume}
}

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Consume stock de los lotes en orden FIFO (vence primero, sale
//
//	primero). Todo-o-nada: si algún renglón no alcanza el stock,
//	no se registra nada y se devuelven todos los faltantes.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "payment_method, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  map[string]interface{}
// @Router       /api/sales [post]
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.SaleItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, inventory.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	out, err := h.consume.ConsumeForSale(c.Context(), inventory.SaleInput{
		UserID:        userID,
		PaymentMethod: in.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		var shortages domain.InsufficientStockErrors
		if errors.As(err, &shortages) {
			list := make([]dto.StockShortageDTO, 0, len(shortages))
			for _, s := range shortages {
				list = append(list, dto.StockShortageDTO{
					ProductID: s.ProductID,
					Requested: s.Requested,
					Available: s.Available,
				})
			}
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":      "INSUFFICIENT_STOCK",
				"message":   "stock insuficiente para completar la venta",
				"shortages": list,
			})
		}
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
