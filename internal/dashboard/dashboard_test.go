package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubReader struct {
	incomes   []models.Income
	expenses  []models.Expense
	incomeErr error
}

func (s *stubReader) ListIncome(context.Context, string) ([]models.Income, error) {
	return s.incomes, s.incomeErr
}

func (s *stubReader) ListExpense(context.Context, string) ([]models.Expense, error) {
	return s.expenses, nil
}

func TestBuildBalanceScenario(t *testing.T) {
	incomes := []models.Income{{ID: "i1", Source: "Salary", Amount: 5000, Date: day(2024, 1, 1)}}
	expenses := []models.Expense{{ID: "e1", Category: "Rent", Amount: 1200, Date: day(2024, 1, 2)}}

	s := Build(incomes, expenses, now, 10)

	assert.Equal(t, 5000.0, s.TotalIncome)
	assert.Equal(t, 1200.0, s.TotalExpense)
	assert.Equal(t, 3800.0, s.TotalBalance)
	require.Len(t, s.RecentTransactions, 2)
	assert.Equal(t, TypeExpense, s.RecentTransactions[0].Type)
	assert.Equal(t, TypeIncome, s.RecentTransactions[1].Type)
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, nil, now, 10)

	assert.Zero(t, s.TotalBalance)
	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpense)
	assert.NotNil(t, s.RecentTransactions)
	assert.Empty(t, s.RecentTransactions)
	assert.NotNil(t, s.Last60DaysIncome.Transactions)
}

func TestBuildRecentCapAndOrder(t *testing.T) {
	var incomes []models.Income
	var expenses []models.Expense
	for i := 1; i <= 8; i++ {
		incomes = append(incomes, models.Income{ID: "i", Amount: 1, Date: day(2024, 1, i*2)})
		expenses = append(expenses, models.Expense{ID: "e", Amount: 1, Date: day(2024, 1, i*2+1)})
	}

	s := Build(incomes, expenses, now, 5)

	require.Len(t, s.RecentTransactions, 5)
	for i := 1; i < len(s.RecentTransactions); i++ {
		assert.False(t, s.RecentTransactions[i].Date.After(s.RecentTransactions[i-1].Date),
			"recent transactions must be date-descending")
	}
	assert.Equal(t, day(2024, 1, 17), s.RecentTransactions[0].Date)
	assert.Equal(t, 8.0, s.TotalIncome)
	assert.Equal(t, 8.0, s.TotalExpense)
	assert.Zero(t, s.TotalBalance)
}

func TestBuildTrailingWindows(t *testing.T) {
	incomes := []models.Income{
		{Amount: 100, Date: now.AddDate(0, 0, -10)},
		{Amount: 200, Date: now.AddDate(0, 0, -59)},
		{Amount: 400, Date: now.AddDate(0, 0, -61)},
	}
	expenses := []models.Expense{
		{Amount: 10, Date: now.AddDate(0, 0, -5)},
		{Amount: 20, Date: now.AddDate(0, 0, -45)},
		{Amount: 40, Date: now.AddDate(0, 0, -90)},
	}

	s := Build(incomes, expenses, now, 10)

	assert.Equal(t, 300.0, s.Last60DaysIncome.Total)
	assert.Len(t, s.Last60DaysIncome.Transactions, 2)
	assert.Equal(t, 30.0, s.Last60DaysExpenses.Total)
	assert.Len(t, s.Last60DaysExpenses.Transactions, 2)
	assert.Equal(t, 10.0, s.Last30DaysExpenses.Total)
	assert.Len(t, s.Last30DaysExpenses.Transactions, 1)
	assert.Equal(t, 700.0-70.0, s.TotalBalance)
}

func TestAggregatorSummary(t *testing.T) {
	reader := &stubReader{
		incomes:  []models.Income{{Amount: 50, Date: now}},
		expenses: []models.Expense{{Amount: 20, Date: now}},
	}
	a := NewAggregator(reader, 0)
	a.now = func() time.Time { return now }

	s, err := a.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.TotalBalance)
	assert.Equal(t, DefaultRecentLimit, a.recentLimit)
}

func TestAggregatorSummaryError(t *testing.T) {
	reader := &stubReader{incomeErr: errors.New("boom")}

	_, err := NewAggregator(reader, 5).Summary(context.Background(), "u1")
	assert.ErrorContains(t, err, "boom")
}
