package repository

import "github.com/tu-usuario/fruver-pos/internal/domain/entity"

// AdjustmentRepository define el puerto del libro de ajustes (append-only).
// No hay Update ni Delete: los ajustes son inmutables después de creados.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	ListByLot(lotID string) ([]*entity.Adjustment, error)
}
