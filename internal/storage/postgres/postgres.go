package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/expense-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Storage struct {
	db *sql.DB
}

func New(dbUrl string) (*Storage, error) {
	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, full_name, email, password_hash, profile_image_url, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		id, user.FullName, user.Email, user.PasswordHash, user.ProfileImageURL, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	user.ID = id.String()
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	row := s.db.QueryRowContext(ctx,
		"SELECT id, full_name, email, password_hash, profile_image_url, created_at FROM users WHERE email = $1",
		email,
	)

	return scanUser(op, row)
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgres.GetUserByID"

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, full_name, email, password_hash, profile_image_url, created_at FROM users WHERE id = $1",
		uid,
	)

	return scanUser(op, row)
}

func scanUser(op string, row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.ProfileImageURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) SaveIncome(ctx context.Context, income *models.Income) error {
	const op = "storage.postgres.SaveIncome"

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO incomes (id, user_id, icon, source, amount, date, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		id, income.UserID, income.Icon, income.Source, income.Amount, income.Date, income.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	income.ID = id.String()
	return nil
}

func (s *Storage) ListIncome(ctx context.Context, userID string) ([]models.Income, error) {
	const op = "storage.postgres.ListIncome"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, icon, source, amount, date, created_at FROM incomes WHERE user_id = $1 ORDER BY date DESC, created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	incomes := make([]models.Income, 0)
	for rows.Next() {
		var i models.Income
		if err := rows.Scan(&i.ID, &i.UserID, &i.Icon, &i.Source, &i.Amount, &i.Date, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		i.Date = i.Date.UTC()
		incomes = append(incomes, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return incomes, nil
}

func (s *Storage) DeleteIncome(ctx context.Context, userID, id string) error {
	const op = "storage.postgres.DeleteIncome"

	if err := s.deleteOwned(ctx, "DELETE FROM incomes WHERE id = $1 AND user_id = $2", userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveExpense(ctx context.Context, expense *models.Expense) error {
	const op = "storage.postgres.SaveExpense"

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (id, user_id, icon, category, amount, date, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		id, expense.UserID, expense.Icon, expense.Category, expense.Amount, expense.Date, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	expense.ID = id.String()
	return nil
}

func (s *Storage) ListExpense(ctx context.Context, userID string) ([]models.Expense, error) {
	const op = "storage.postgres.ListExpense"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, icon, category, amount, date, created_at FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Icon, &e.Category, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.Date = e.Date.UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return expenses, nil
}

func (s *Storage) DeleteExpense(ctx context.Context, userID, id string) error {
	const op = "storage.postgres.DeleteExpense"

	if err := s.deleteOwned(ctx, "DELETE FROM expenses WHERE id = $1 AND user_id = $2", userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) deleteOwned(ctx context.Context, query, userID, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return storage.ErrNotFound
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, query, rid, uid)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func withQueryParam(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
