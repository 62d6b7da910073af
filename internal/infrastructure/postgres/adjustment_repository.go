package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL.
// El libro es append-only: no hay UPDATE ni DELETE sobre stock_adjustments.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un ajuste con sus snapshots de auditoría.
func (r *AdjustmentRepo) Create(a *entity.Adjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, lot_id, quantity_delta, reason, user_id, stock_before, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.LotID, a.QuantityDelta, a.Reason, a.UserID, a.StockBefore, a.StockAfter, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// ListByLot lista los ajustes de un lote en orden de aplicación.
func (r *AdjustmentRepo) ListByLot(lotID string) ([]*entity.Adjustment, error) {
	query := `
		SELECT id, lot_id, quantity_delta, reason, user_id, stock_before, stock_after, created_at
		FROM stock_adjustments WHERE lot_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Adjustment
	for rows.Next() {
		var a entity.Adjustment
		if err := rows.Scan(&a.ID, &a.LotID, &a.QuantityDelta, &a.Reason, &a.UserID, &a.StockBefore, &a.StockAfter, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adjustments: %w", err)
	}
	return out, nil
}
