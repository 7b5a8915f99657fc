package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/expense-tracker/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage keeps users, incomes and expenses in three MongoDB collections.
type Storage struct {
	users    Collection
	incomes  Collection
	expenses Collection
}

func New(provider CollectionProvider) *Storage {
	return &Storage{
		users:    provider.Collection(UsersCollection),
		incomes:  provider.Collection(IncomesCollection),
		expenses: provider.Collection(ExpensesCollection),
	}
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.mongo.SaveUser"

	doc := userDocument{
		ID:              primitive.NewObjectID(),
		FullName:        user.FullName,
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.mongo.GetUserByEmail"

	return s.findUser(ctx, op, bson.M{"email": email})
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.mongo.GetUserByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return s.findUser(ctx, op, bson.M{"_id": oid})
}

func (s *Storage) findUser(ctx context.Context, op string, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := doc.model()
	return &user, nil
}

func (s *Storage) SaveIncome(ctx context.Context, income *models.Income) error {
	const op = "storage.mongo.SaveIncome"

	userID, err := primitive.ObjectIDFromHex(income.UserID)
	if err != nil {
		return fmt.Errorf("%s: invalid user id: %w", op, err)
	}

	doc := incomeDocument{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Icon:      income.Icon,
		Source:    income.Source,
		Amount:    income.Amount,
		Date:      income.Date,
		CreatedAt: income.CreatedAt,
	}

	if _, err := s.incomes.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	income.ID = doc.ID.Hex()
	return nil
}

func (s *Storage) ListIncome(ctx context.Context, userID string) ([]models.Income, error) {
	const op = "storage.mongo.ListIncome"

	docs, err := findByUser[incomeDocument](ctx, s.incomes, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	incomes := make([]models.Income, 0, len(docs))
	for _, d := range docs {
		incomes = append(incomes, d.model())
	}

	return incomes, nil
}

func (s *Storage) DeleteIncome(ctx context.Context, userID, id string) error {
	const op = "storage.mongo.DeleteIncome"

	if err := deleteOwned(ctx, s.incomes, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveExpense(ctx context.Context, expense *models.Expense) error {
	const op = "storage.mongo.SaveExpense"

	userID, err := primitive.ObjectIDFromHex(expense.UserID)
	if err != nil {
		return fmt.Errorf("%s: invalid user id: %w", op, err)
	}

	doc := expenseDocument{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Icon:      expense.Icon,
		Category:  expense.Category,
		Amount:    expense.Amount,
		Date:      expense.Date,
		CreatedAt: expense.CreatedAt,
	}

	if _, err := s.expenses.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	expense.ID = doc.ID.Hex()
	return nil
}

func (s *Storage) ListExpense(ctx context.Context, userID string) ([]models.Expense, error) {
	const op = "storage.mongo.ListExpense"

	docs, err := findByUser[expenseDocument](ctx, s.expenses, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	expenses := make([]models.Expense, 0, len(docs))
	for _, d := range docs {
		expenses = append(expenses, d.model())
	}

	return expenses, nil
}

func (s *Storage) DeleteExpense(ctx context.Context, userID, id string) error {
	const op = "storage.mongo.DeleteExpense"

	if err := deleteOwned(ctx, s.expenses, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// findByUser returns every document owned by userID, newest date first.
func findByUser[T any](ctx context.Context, coll Collection, userID string) ([]T, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := coll.Find(ctx, bson.M{"userId": uid}, opts)
	if err != nil {
		return nil, err
	}

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func deleteOwned(ctx context.Context, coll Collection, userID, id string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return storage.ErrNotFound
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}
