package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// ── productRepo ───────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r productRepo) List() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── lotRepo ───────────────────────────────────────────────────────────────────

type lotRepo struct{ s *Store }

func (r lotRepo) Create(lot *entity.InventoryLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *lot
	r.s.lots[lot.ID] = &cp
	return nil
}

func (r lotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

// GetByIDForUpdate en memoria no bloquea filas: la exclusión la da el txMu
// del Store, que serializa las transacciones completas.
func (r lotRepo) GetByIDForUpdate(id string) (*entity.InventoryLot, error) {
	return r.GetByID(id)
}

func (r lotRepo) ListByProduct(productID string) ([]*entity.InventoryLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryLot
	for _, lot := range r.s.lots {
		if lot.ProductID == productID {
			cp := *lot
			out = append(out, &cp)
		}
	}
	sortFIFO(out)
	return out, nil
}

func (r lotRepo) ListByProductForUpdate(productID string) ([]*entity.InventoryLot, error) {
	return r.ListByProduct(productID)
}

func (r lotRepo) ListAll() ([]*entity.InventoryLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventoryLot, 0, len(r.s.lots))
	for _, lot := range r.s.lots {
		cp := *lot
		out = append(out, &cp)
	}
	sortFIFO(out)
	return out, nil
}

func (r lotRepo) UpdateStock(lotID string, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	lot.StockQuantity = stock
	return nil
}

// sortFIFO ordena: vence primero va primero, sin vencimiento al final,
// empates por fecha de creación. Mismo contrato que el ORDER BY de postgres.
func sortFIFO(lots []*entity.InventoryLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		switch {
		case a.ExpirationDate == nil && b.ExpirationDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.ExpirationDate == nil:
			return false
		case b.ExpirationDate == nil:
			return true
		case !a.ExpirationDate.Equal(*b.ExpirationDate):
			return a.ExpirationDate.Before(*b.ExpirationDate)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

// ── adjustmentRepo ────────────────────────────────────────────────────────────

type adjustmentRepo struct{ s *Store }

func (r adjustmentRepo) Create(a *entity.Adjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.adjustments = append(r.s.adjustments, &cp)
	return nil
}

func (r adjustmentRepo) ListByLot(lotID string) ([]*entity.Adjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Adjustment
	for _, a := range r.s.adjustments {
		if a.LotID == lotID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── saleRepo ──────────────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

func (r saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	cp.Allocations = append([]entity.SaleAllocation(nil), sale.Allocations...)
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	cp.Allocations = append([]entity.SaleAllocation(nil), sale.Allocations...)
	return &cp, nil
}

func (r saleRepo) SummarizeByDate(from, to time.Time) (*entity.SalesSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := &entity.SalesSummary{}
	for _, sale := range r.s.sales {
		if sale.Status != entity.SaleCompleted || !inRange(sale.Date, from, to) {
			continue
		}
		sum.Total = sum.Total.Add(sale.Total)
		sum.Count++
		switch sale.PaymentMethod {
		case entity.PaymentCash:
			sum.Cash = sum.Cash.Add(sale.Total)
		case entity.PaymentCard:
			sum.Card = sum.Card.Add(sale.Total)
		case entity.PaymentTransfer:
			sum.Transfer = sum.Transfer.Add(sale.Total)
		}
	}
	return sum, nil
}

// ── purchaseRepo ──────────────────────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r purchaseRepo) Create(p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.purchases[p.ID] = &cp
	return nil
}

func (r purchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r purchaseRepo) SumCashByDate(from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.s.purchases {
		if p.PaymentMethod == entity.PaymentCash && inRange(p.Date, from, to) {
			sum = sum.Add(p.Total)
		}
	}
	return sum, nil
}

// ── expenseRepo ───────────────────────────────────────────────────────────────

type expenseRepo struct{ s *Store }

func (r expenseRepo) Create(e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.expenses = append(r.s.expenses, &cp)
	return nil
}

func (r expenseRepo) ListByDate(from, to time.Time) ([]*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Expense
	for _, e := range r.s.expenses {
		if inRange(e.Date, from, to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r expenseRepo) SumCashByDate(from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range r.s.expenses {
		if e.PaymentMethod == entity.PaymentCash && inRange(e.Date, from, to) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r expenseRepo) SumByDate(from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range r.s.expenses {
		if inRange(e.Date, from, to) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// ── cashSessionRepo ───────────────────────────────────────────────────────────

type cashSessionRepo struct{ s *Store }

// Create replica el constraint único de session_date de postgres.
func (r cashSessionRepo) Create(session *entity.CashDrawerSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.sessions {
		if sameDay(existing.SessionDate, session.SessionDate) {
			return domain.ErrAlreadyClosed
		}
	}
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r cashSessionRepo) GetByID(id string) (*entity.CashDrawerSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r cashSessionRepo) GetByDate(date time.Time) (*entity.CashDrawerSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, session := range r.s.sessions {
		if sameDay(session.SessionDate, date) {
			cp := *session
			return &cp, nil
		}
	}
	return nil, nil
}

// ── userRepo ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
