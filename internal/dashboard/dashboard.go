// Package dashboard computes the per-user financial summary.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	DefaultRecentLimit = 10
)

type Transaction struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon,omitempty"`
	Source    string    `json:"source,omitempty"`
	Category  string    `json:"category,omitempty"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type Window struct {
	Total        float64       `json:"total"`
	Transactions []Transaction `json:"transactions"`
}

type Summary struct {
	TotalBalance       float64       `json:"totalBalance"`
	TotalIncome        float64       `json:"totalIncome"`
	TotalExpense       float64       `json:"totalExpense"`
	Last30DaysExpenses Window        `json:"last30DaysExpenses"`
	Last60DaysIncome   Window        `json:"last60DaysIncome"`
	Last60DaysExpenses Window        `json:"last60DaysExpenses"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}

// Reader lists a user's records ordered by date descending.
type Reader interface {
	ListIncome(ctx context.Context, userID string) ([]models.Income, error)
	ListExpense(ctx context.Context, userID string) ([]models.Expense, error)
}

type Aggregator struct {
	reader      Reader
	recentLimit int
	now         func() time.Time
}

func NewAggregator(reader Reader, recentLimit int) *Aggregator {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &Aggregator{reader: reader, recentLimit: recentLimit, now: time.Now}
}

// Summary reads both collections concurrently and reduces them.
func (a *Aggregator) Summary(ctx context.Context, userID string) (Summary, error) {
	var (
		incomes  []models.Income
		expenses []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = a.reader.ListIncome(gctx, userID)
		if err != nil {
			return fmt.Errorf("list income: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = a.reader.ListExpense(gctx, userID)
		if err != nil {
			return fmt.Errorf("list expense: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Build(incomes, expenses, a.now(), a.recentLimit), nil
}

// Build is a pure reduction over the given records.
func Build(incomes []models.Income, expenses []models.Expense, now time.Time, recentLimit int) Summary {
	incomeTx := make([]Transaction, 0, len(incomes))
	for _, i := range incomes {
		incomeTx = append(incomeTx, Transaction{
			ID:        i.ID,
			Type:      TypeIncome,
			Icon:      i.Icon,
			Source:    i.Source,
			Amount:    i.Amount,
			Date:      i.Date,
			CreatedAt: i.CreatedAt,
		})
	}
	expenseTx := make([]Transaction, 0, len(expenses))
	for _, e := range expenses {
		expenseTx = append(expenseTx, Transaction{
			ID:        e.ID,
			Type:      TypeExpense,
			Icon:      e.Icon,
			Category:  e.Category,
			Amount:    e.Amount,
			Date:      e.Date,
			CreatedAt: e.CreatedAt,
		})
	}
	sortByDateDesc(incomeTx)
	sortByDateDesc(expenseTx)

	totalIncome := sum(incomeTx)
	totalExpense := sum(expenseTx)

	all := make([]Transaction, 0, len(incomeTx)+len(expenseTx))
	all = append(all, incomeTx...)
	all = append(all, expenseTx...)
	sortByDateDesc(all)
	if len(all) > recentLimit {
		all = all[:recentLimit]
	}

	return Summary{
		TotalBalance:       totalIncome - totalExpense,
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		Last30DaysExpenses: since(expenseTx, now.AddDate(0, 0, -30)),
		Last60DaysIncome:   since(incomeTx, now.AddDate(0, 0, -60)),
		Last60DaysExpenses: since(expenseTx, now.AddDate(0, 0, -60)),
		RecentTransactions: all,
	}
}

func since(txs []Transaction, from time.Time) Window {
	w := Window{Transactions: make([]Transaction, 0)}
	for _, t := range txs {
		if t.Date.Before(from) {
			continue
		}
		w.Transactions = append(w.Transactions, t)
		w.Total += t.Amount
	}
	return w
}

func sum(txs []Transaction) float64 {
	var total float64
	for _, t := range txs {
		total += t.Amount
	}
	return total
}

func sortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
