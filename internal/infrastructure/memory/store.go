// Package memory implementa los puertos de repositorio sobre mapas en memoria,
// con semántica de transacción todo-o-nada (snapshot y restauración). Es el
// doble de pruebas de los casos de uso: mismo contrato que PostgreSQL, sin
// base de datos viva.
package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/application/inventory"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

var (
	_ inventory.TxRunner   = (*Store)(nil)
	_ cashbox.CashTxRunner = (*Store)(nil)
)

// Store almacén en memoria. Un único Store guarda todas las "tablas"; los
// repositorios son vistas tipadas sobre él (ver repos.go).
type Store struct {
	mu sync.Mutex
	// txMu serializa las transacciones: el equivalente en memoria del
	// aislamiento serializable que piden consumo de venta y cierre de caja.
	txMu sync.Mutex

	products    map[string]*entity.Product
	lots        map[string]*entity.InventoryLot
	adjustments []*entity.Adjustment
	sales       map[string]*entity.Sale
	purchases   map[string]*entity.Purchase
	expenses    []*entity.Expense
	sessions    map[string]*entity.CashDrawerSession
	users       map[string]*entity.User
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		lots:      make(map[string]*entity.InventoryLot),
		sales:     make(map[string]*entity.Sale),
		purchases: make(map[string]*entity.Purchase),
		sessions:  make(map[string]*entity.CashDrawerSession),
		users:     make(map[string]*entity.User),
	}
}

// Vistas tipadas (equivalentes a los adaptadores postgres.New*Repository).

func (s *Store) ProductRepo() repository.ProductRepository         { return productRepo{s} }
func (s *Store) LotRepo() repository.LotRepository                 { return lotRepo{s} }
func (s *Store) AdjustmentRepo() repository.AdjustmentRepository   { return adjustmentRepo{s} }
func (s *Store) SaleRepo() repository.SaleRepository               { return saleRepo{s} }
func (s *Store) PurchaseRepo() repository.PurchaseRepository       { return purchaseRepo{s} }
func (s *Store) ExpenseRepo() repository.ExpenseRepository         { return expenseRepo{s} }
func (s *Store) CashSessionRepo() repository.CashSessionRepository { return cashSessionRepo{s} }
func (s *Store) UserRepo() repository.UserRepository               { return userRepo{s} }

// Run implementa inventory.TxRunner: toma un snapshot, ejecuta fn con las
// vistas del propio store y restaura el snapshot si fn falla. Nada queda a
// medio aplicar.
func (s *Store) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	adjustmentRepo repository.AdjustmentRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.LotRepo(), s.AdjustmentRepo(), s.SaleRepo(), s.PurchaseRepo()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunCash implementa cashbox.CashTxRunner con la misma semántica que Run.
func (s *Store) RunCash(_ context.Context, fn func(
	sessionRepo repository.CashSessionRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.CashSessionRepo(), s.SaleRepo(), s.PurchaseRepo(), s.ExpenseRepo()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	lots        map[string]*entity.InventoryLot
	adjustments []*entity.Adjustment
	sales       map[string]*entity.Sale
	purchases   map[string]*entity.Purchase
	expenses    []*entity.Expense
	sessions    map[string]*entity.CashDrawerSession
}

// snapshot copia el estado mutable por transacciones. Productos y usuarios no
// se tocan dentro de una tx, así que no hace falta copiarlos.
func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := storeSnapshot{
		lots:        make(map[string]*entity.InventoryLot, len(s.lots)),
		adjustments: append([]*entity.Adjustment(nil), s.adjustments...),
		sales:       make(map[string]*entity.Sale, len(s.sales)),
		purchases:   make(map[string]*entity.Purchase, len(s.purchases)),
		expenses:    append([]*entity.Expense(nil), s.expenses...),
		sessions:    make(map[string]*entity.CashDrawerSession, len(s.sessions)),
	}
	for id, lot := range s.lots {
		cp := *lot
		snap.lots[id] = &cp
	}
	for id, sale := range s.sales {
		cp := *sale
		snap.sales[id] = &cp
	}
	for id, p := range s.purchases {
		cp := *p
		snap.purchases[id] = &cp
	}
	for id, ses := range s.sessions {
		cp := *ses
		snap.sessions[id] = &cp
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots = snap.lots
	s.adjustments = snap.adjustments
	s.sales = snap.sales
	s.purchases = snap.purchases
	s.expenses = snap.expenses
	s.sessions = snap.sessions
}
