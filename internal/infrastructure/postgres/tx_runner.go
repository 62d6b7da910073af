package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and cashbox.CashTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ cashbox.CashTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// El aislamiento efectivo lo dan los SELECT ... FOR UPDATE de los repositorios
// (por producto en ventas/ajustes) y el constraint único de session_date en
// cierres: equivalente al serializable que exige el modelo de concurrencia.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de inventario atados a
// esa tx y hace Commit o Rollback. Todo-o-nada: un error en fn revierte
// cualquier mutación de lotes hecha dentro del callback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	adjustmentRepo repository.AdjustmentRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	adjustmentRepo := NewAdjustmentRepository(tx)
	saleRepo := NewSaleRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)

	if err := fn(lotRepo, adjustmentRepo, saleRepo, purchaseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCash inicia una transacción con los repos de caja (para el cierre diario).
func (r *TxRunner) RunCash(ctx context.Context, fn func(
	sessionRepo repository.CashSessionRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sessionRepo := NewCashSessionRepository(tx)
	saleRepo := NewSaleRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)
	expenseRepo := NewExpenseRepository(tx)

	if err := fn(sessionRepo, saleRepo, purchaseRepo, expenseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
