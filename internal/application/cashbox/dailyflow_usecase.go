package cashbox

import (
	"time"

	"github.com/tu-usuario/fruver-pos/internal/application/dto"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
)

// DailyFlowUseCase resume ventas, compras y gastos de un día calendario en
// cifras de entrada/salida/neto de caja. Solo el subconjunto en efectivo
// participa de la aritmética de conciliación; el resto se reporta aparte.
type DailyFlowUseCase struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	expenseRepo  repository.ExpenseRepository
	// loc fija la zona horaria del día contable. Productor y consumidor deben
	// usar la misma o los cierres quedan corridos un día.
	loc *time.Location
	now func() time.Time
}

// NewDailyFlowUseCase construye el agregador de flujo diario.
func NewDailyFlowUseCase(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
	loc *time.Location,
) *DailyFlowUseCase {
	return &DailyFlowUseCase{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		expenseRepo:  expenseRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// DailyFlow calcula el desglose del día indicado; date nil = hoy en la zona
// horaria configurada. De una fecha explícita se toma su fecha calendario y se
// ancla en la zona configurada; convertir el instante correría el día en zonas
// con offset negativo.
func (uc *DailyFlowUseCase) DailyFlow(date *time.Time) (*dto.DailyCashFlow, error) {
	day := uc.now().In(uc.loc)
	if date != nil {
		y, m, d := date.Date()
		day = time.Date(y, m, d, 0, 0, 0, 0, uc.loc)
	}
	from, to := DayBounds(day, uc.loc)
	return computeFlow(from, to, uc.saleRepo, uc.purchaseRepo, uc.expenseRepo)
}

// DayBounds devuelve [inicio, fin) del día calendario de t en la zona loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return from, from.Add(24 * time.Hour)
}

// computeFlow arma el desglose consultando los repositorios recibidos. Lo usan
// tanto la vista previa (repos sobre el pool) como el cierre (repos atados a
// la tx del cierre, para que la conciliación y el commit vean los mismos datos).
func computeFlow(
	from, to time.Time,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
) (*dto.DailyCashFlow, error) {
	sales, err := saleRepo.SummarizeByDate(from, to)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = &entity.SalesSummary{}
	}
	cashPurchases, err := purchaseRepo.SumCashByDate(from, to)
	if err != nil {
		return nil, err
	}
	cashExpenses, err := expenseRepo.SumCashByDate(from, to)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := expenseRepo.SumByDate(from, to)
	if err != nil {
		return nil, err
	}

	in := sales.Cash.Round(2)
	out := cashPurchases.Round(2).Add(cashExpenses.Round(2))
	return &dto.DailyCashFlow{
		Date: from.Format("2006-01-02"),
		Sales: dto.SalesBreakdown{
			Total:    sales.Total.Round(2),
			Count:    sales.Count,
			Cash:     sales.Cash.Round(2),
			Card:     sales.Card.Round(2),
			Transfer: sales.Transfer.Round(2),
		},
		Expenses: dto.ExpensesBreakdown{
			Purchases:  cashPurchases.Round(2),
			Operations: cashExpenses.Round(2),
			Total:      totalExpenses.Round(2),
		},
		CashFlow: dto.CashFlowTotals{
			In:  in,
			Out: out,
			Net: in.Sub(out),
		},
	}, nil
}
