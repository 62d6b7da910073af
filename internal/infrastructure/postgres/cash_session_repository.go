package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación de CashSessionRepository sobre PostgreSQL.
// La tabla tiene un constraint único sobre session_date: si dos cierres del
// mismo día corren a la vez, uno de los dos INSERT falla con 23505 y se
// traduce a domain.ErrAlreadyClosed.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const cashSessionColumns = `id, user_id, authorized_by, session_date, starting_cash, ending_cash,
	total_sales, cash_sales, card_sales, transfer_sales, cash_purchases, cash_expenses,
	expected_ending, difference, difference_type, notes, closed, closed_at, created_at`

// Create persiste el cierre completo en un solo INSERT: conciliación y
// bandera de cerrado son atómicos.
func (r *CashSessionRepo) Create(s *entity.CashDrawerSession) error {
	query := `
		INSERT INTO cash_drawer_sessions (` + cashSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.UserID, s.AuthorizedBy, s.SessionDate, s.StartingCash, s.EndingCash,
		s.TotalSales, s.CashSales, s.CardSales, s.TransferSales, s.CashPurchases, s.CashExpenses,
		s.ExpectedEnding, s.Difference, s.DifferenceType, s.Notes, s.Closed, s.ClosedAt, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClosed
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID. Devuelve nil si no existe.
func (r *CashSessionRepo) GetByID(id string) (*entity.CashDrawerSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_drawer_sessions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByDate obtiene la sesión del día calendario. Devuelve nil si no existe.
func (r *CashSessionRepo) GetByDate(date time.Time) (*entity.CashDrawerSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_drawer_sessions WHERE session_date = $1`
	return r.scanOne(query, date)
}

func (r *CashSessionRepo) scanOne(query string, args ...any) (*entity.CashDrawerSession, error) {
	var s entity.CashDrawerSession
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.UserID, &s.AuthorizedBy, &s.SessionDate, &s.StartingCash, &s.EndingCash,
		&s.TotalSales, &s.CashSales, &s.CardSales, &s.TransferSales, &s.CashPurchases, &s.CashExpenses,
		&s.ExpectedEnding, &s.Difference, &s.DifferenceType, &s.Notes, &s.Closed, &s.ClosedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return &s, nil
}
