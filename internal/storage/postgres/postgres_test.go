package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/expense-tracker/internal/storage"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := src.ReadUp(first)
	require.NoError(t, err)
	require.NoError(t, up.Close())

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	require.NoError(t, down.Close())
}

func TestWithQueryParam(t *testing.T) {
	got := withQueryParam("postgres://u:p@localhost:5432/db?sslmode=disable", "x-migrations-table", "migrations")
	assert.Equal(t, "postgres://u:p@localhost:5432/db?sslmode=disable&x-migrations-table=migrations", got)
}

// newTestStorage connects to DATABASE_URL and migrates it; tests are skipped without one.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		t.Skip("DATABASE_URL is not set")
	}

	if err := Migrate(dbUrl, ""); err != nil && !errors.Is(err, ErrNoChange) {
		require.NoError(t, err)
	}

	s, err := New(dbUrl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func newTestUser(t *testing.T, s *Storage) *models.User {
	t.Helper()
	user := &models.User{
		FullName:     "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.SaveUser(context.Background(), user))
	return user
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveUserDuplicateEmail(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	user := newTestUser(t, s)

	dup := &models.User{FullName: "Other", Email: user.Email, PasswordHash: "x", CreatedAt: time.Now().UTC()}
	err := s.SaveUser(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrUserExists)

	got, err := s.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetUserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListIncomeOrderedByDateDesc(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	user := newTestUser(t, s)
	other := newTestUser(t, s)

	now := time.Now().UTC()
	for i, d := range []int{3, 1, 5, 3} {
		income := &models.Income{
			UserID:    user.ID,
			Source:    "job",
			Amount:    float64(i + 1),
			Date:      day(d),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.SaveIncome(ctx, income))
	}
	require.NoError(t, s.SaveIncome(ctx, &models.Income{UserID: other.ID, Source: "x", Amount: 9, Date: day(9), CreatedAt: now}))

	incomes, err := s.ListIncome(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, incomes, 4)

	assert.Equal(t, day(5), incomes[0].Date)
	assert.Equal(t, day(3), incomes[1].Date)
	assert.Equal(t, 4.0, incomes[1].Amount, "ties broken by createdAt desc")
	assert.Equal(t, 1.0, incomes[2].Amount)
	assert.Equal(t, day(1), incomes[3].Date)
	for _, i := range incomes {
		assert.Equal(t, user.ID, i.UserID)
	}
}

func TestDeleteExpenseScopedToOwner(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := newTestUser(t, s)
	intruder := newTestUser(t, s)

	expense := &models.Expense{UserID: owner.ID, Category: "Rent", Amount: 1200, Date: day(2), CreatedAt: time.Now().UTC()}
	require.NoError(t, s.SaveExpense(ctx, expense))

	err := s.DeleteExpense(ctx, intruder.ID, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	expenses, err := s.ListExpense(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	require.NoError(t, s.DeleteExpense(ctx, owner.ID, expense.ID))
	assert.ErrorIs(t, s.DeleteExpense(ctx, owner.ID, expense.ID), storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteExpense(ctx, owner.ID, "not-a-uuid"), storage.ErrNotFound)

	expenses, err = s.ListExpense(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestDeleteIncomeScopedToOwner(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := newTestUser(t, s)
	intruder := newTestUser(t, s)

	income := &models.Income{UserID: owner.ID, Source: "Salary", Amount: 5000, Date: day(1), CreatedAt: time.Now().UTC()}
	require.NoError(t, s.SaveIncome(ctx, income))

	assert.ErrorIs(t, s.DeleteIncome(ctx, intruder.ID, income.ID), storage.ErrNotFound)
	require.NoError(t, s.DeleteIncome(ctx, owner.ID, income.ID))
}
