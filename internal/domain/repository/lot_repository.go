package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes de inventario.
//
// ListByProduct y ListByProductForUpdate devuelven los lotes en orden FIFO:
// expiration_date ascendente con nulos al final, luego created_at ascendente.
// Ese orden es el contrato del que dependen todos los consumidores (venta,
// clasificación, overview); ningún llamador debe reordenar.
type LotRepository interface {
	Create(lot *entity.InventoryLot) error
	GetByID(id string) (*entity.InventoryLot, error)
	// GetByIDForUpdate bloquea la fila del lote (SELECT FOR UPDATE) dentro de una tx.
	GetByIDForUpdate(id string) (*entity.InventoryLot, error)
	ListByProduct(productID string) ([]*entity.InventoryLot, error)
	// ListByProductForUpdate bloquea el conjunto de lotes del producto para
	// consumo FIFO; evita que dos ventas concurrentes sobre-asignen un lote.
	ListByProductForUpdate(productID string) ([]*entity.InventoryLot, error)
	ListAll() ([]*entity.InventoryLot, error)
	// UpdateStock reemplaza la cantidad restante del lote. Solo debe llamarse
	// dentro de una transacción que ya bloqueó la fila.
	UpdateStock(lotID string, stock decimal.Decimal) error
}
