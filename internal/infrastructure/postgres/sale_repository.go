package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con sus renglones y asignaciones de lote.
// Debe llamarse dentro de la misma tx que decrementó los lotes.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, total, payment_method, status, user_id, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sale.ID, sale.Total, sale.PaymentMethod, sale.Status, sale.UserID, sale.Date, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	for _, alloc := range sale.Allocations {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_allocations (id, sale_id, lot_id, product_id, quantity, unit_cost, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			alloc.ID, alloc.SaleID, alloc.LotID, alloc.ProductID, alloc.Quantity, alloc.UnitCost, alloc.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert sale allocation: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus renglones y asignaciones. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, total, payment_method, status, user_id, date, created_at
		FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.Total, &s.PaymentMethod, &s.Status, &s.UserID, &s.Date, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}

	allocRows, err := r.q.Query(ctx, `
		SELECT id, sale_id, lot_id, product_id, quantity, unit_cost, created_at
		FROM sale_allocations WHERE sale_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale allocations: %w", err)
	}
	defer allocRows.Close()
	for allocRows.Next() {
		var a entity.SaleAllocation
		if err := allocRows.Scan(&a.ID, &a.SaleID, &a.LotID, &a.ProductID, &a.Quantity, &a.UnitCost, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale allocation: %w", err)
		}
		s.Allocations = append(s.Allocations, a)
	}
	if err := allocRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale allocations: %w", err)
	}
	return &s, nil
}

// SummarizeByDate suma ventas completadas con fecha en [from, to) por método de pago.
func (r *SaleRepo) SummarizeByDate(from, to time.Time) (*entity.SalesSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(total), 0),
			COUNT(*),
			COALESCE(SUM(total) FILTER (WHERE payment_method = 'efectivo'), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_method = 'tarjeta'), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_method = 'transferencia'), 0)
		FROM sales
		WHERE status = 'completada' AND date >= $1 AND date < $2`
	var s entity.SalesSummary
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(
		&s.Total, &s.Count, &s.Cash, &s.Card, &s.Transfer,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize sales: %w", err)
	}
	return &s, nil
}
