package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// Orden FIFO: vence primero sale primero; los lotes sin vencimiento van al
// final y entre iguales decide la fecha de creación.
const lotFIFOOrder = "ORDER BY expiration_date ASC NULLS LAST, created_at ASC"

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = "id, product_id, purchase_id, initial_quantity, stock_quantity, purchase_price, expiration_date, created_at"

// Create persiste un lote nuevo.
func (r *LotRepo) Create(lot *entity.InventoryLot) error {
	query := `
		INSERT INTO inventory_lots (id, product_id, purchase_id, initial_quantity, stock_quantity, purchase_price, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.PurchaseID, lot.InitialQuantity, lot.StockQuantity,
		lot.PurchasePrice, lot.ExpirationDate, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene un lote bloqueando la fila (SELECT FOR UPDATE).
func (r *LotRepo) GetByIDForUpdate(id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// ListByProduct lista los lotes de un producto en orden FIFO.
func (r *LotRepo) ListByProduct(productID string) ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE product_id = $1 ` + lotFIFOOrder
	return r.scanMany(query, productID)
}

// ListByProductForUpdate lista los lotes de un producto en orden FIFO
// bloqueando las filas: dos ventas concurrentes del mismo producto se
// serializan aquí y no pueden sobre-asignar un lote.
func (r *LotRepo) ListByProductForUpdate(productID string) ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE product_id = $1 ` + lotFIFOOrder + ` FOR UPDATE`
	return r.scanMany(query, productID)
}

// ListAll lista todos los lotes en orden FIFO (para el overview de inventario).
func (r *LotRepo) ListAll() ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots ` + lotFIFOOrder
	return r.scanMany(query)
}

// UpdateStock reemplaza la cantidad restante. El CHECK de la tabla garantiza
// 0 <= stock_quantity <= initial_quantity aunque el llamador se equivoque.
func (r *LotRepo) UpdateStock(lotID string, stock decimal.Decimal) error {
	query := `UPDATE inventory_lots SET stock_quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, lotID, stock)
	if err != nil {
		return fmt.Errorf("update lot stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lot stock: lote %s no existe", lotID)
	}
	return nil
}

func (r *LotRepo) scanOne(query string, args ...any) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.ProductID, &l.PurchaseID, &l.InitialQuantity, &l.StockQuantity,
		&l.PurchasePrice, &l.ExpirationDate, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) scanMany(query string, args ...any) ([]*entity.InventoryLot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.InventoryLot
	for rows.Next() {
		var l entity.InventoryLot
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.PurchaseID, &l.InitialQuantity, &l.StockQuantity,
			&l.PurchasePrice, &l.ExpirationDate, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lots: %w", err)
	}
	return lots, nil
}
