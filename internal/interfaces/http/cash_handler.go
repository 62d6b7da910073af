package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/application/dto"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// CashHandler maneja flujo diario, gastos y cierre de caja.
type CashHandler struct {
	dailyFlow *cashbox.DailyFlowUseCase
	closeCash *cashbox.CloseCashUseCase
	expenses  *cashbox.ExpenseUseCase
}

// NewCashHandler construye el handler de caja.
func NewCashHandler(dailyFlow *cashbox.DailyFlowUseCase, closeCash *cashbox.CloseCashUseCase, expenses *cashbox.ExpenseUseCase) *CashHandler {
	return &CashHandler{dailyFlow: dailyFlow, closeCash: closeCash, expenses: expenses}
}

// DailyFlow godoc
// @Summary      Flujo de caja de un día
// @Description  Entradas (ventas en efectivo), salidas (compras y gastos en
//
//	efectivo) y neto del día. Sin fecha devuelve el día de hoy.
//
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Fecha YYYY-MM-DD (vacío = hoy)"
// @Success      200   {object}  dto.DailyCashFlow
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash/daily-flow [get]
func (h *CashHandler) DailyFlow(c *fiber.Ctx) error {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
		}
		date = &t
	}
	flow, err := h.dailyFlow.DailyFlow(date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(flow)
}

// CloseCash godoc
// @Summary      Cerrar caja del día
// @Description  Requiere credenciales de un segundo usuario con rol admin
//
//	distinto del que inicia. Calcula el efectivo esperado, clasifica
//	la diferencia y persiste el cierre. Un segundo intento para la
//	misma fecha devuelve 409 con la sesión original intacta.
//
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseCashRequest  true  "starting_cash, ending_cash, notes, manager_email, manager_password"
// @Success      201   {object}  dto.CloseCashResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  map[string]interface{}
// @Router       /api/cash/close [post]
func (h *CashHandler) CloseCash(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseCashRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, session, err := h.closeCash.Close(c.Context(), cashbox.CloseInput{
		UserID:          userID,
		StartingCash:    in.StartingCash,
		EndingCash:      in.EndingCash,
		Notes:           in.Notes,
		ManagerEmail:    in.ManagerEmail,
		ManagerPassword: in.ManagerPassword,
	})
	if err != nil {
		if err == domain.ErrAlreadyClosed {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":    "ALREADY_CLOSED",
				"message": "la caja ya fue cerrada para esta fecha",
				"session": toSessionDTO(session),
			})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrUnauthorized || err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales del autorizador inválidas"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el autorizador debe ser un admin distinto de quien cierra"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateExpense godoc
// @Summary      Registrar gasto operativo
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "amount, category (operativo|servicios|otros), payment_method"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *CashHandler) CreateExpense(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.expenses.RegisterExpense(userID, in.Amount, in.Category, in.PaymentMethod)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": expense.ID})
}

// toSessionDTO aplana la sesión existente para la respuesta de conflicto.
func toSessionDTO(s *entity.CashDrawerSession) fiber.Map {
	if s == nil {
		return nil
	}
	return fiber.Map{
		"id":              s.ID,
		"session_date":    s.SessionDate.Format("2006-01-02"),
		"starting_cash":   s.StartingCash,
		"ending_cash":     s.EndingCash,
		"expected_ending": s.ExpectedEnding,
		"difference":      s.Difference,
		"difference_type": s.DifferenceType,
		"closed":          s.Closed,
	}
}
