package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyClosed     = errors.New("la caja ya fue cerrada para esta fecha")
)

// InsufficientStockError detalla un faltante de stock para un producto:
// cuánto se pidió y cuánto había disponible sumando todos sus lotes.
type InsufficientStockError struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %s, disponible %s",
		e.ProductID, e.Requested.String(), e.Available.String())
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InsufficientStockErrors agrupa los faltantes de una venta multi-producto.
// La venta falla completa: ningún lote se modifica si hay al menos un faltante.
type InsufficientStockErrors []*InsufficientStockError

func (e InsufficientStockErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, f := range e {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e InsufficientStockErrors) Is(target error) bool {
	return target == ErrInsufficientStock
}
