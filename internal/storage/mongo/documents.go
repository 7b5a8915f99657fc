package mongo

import (
	"time"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	FullName        string             `bson:"fullName"`
	Email           string             `bson:"email"`
	PasswordHash    string             `bson:"password"`
	ProfileImageURL string             `bson:"profileImageUrl,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d userDocument) model() models.User {
	return models.User{
		ID:              d.ID.Hex(),
		FullName:        d.FullName,
		Email:           d.Email,
		PasswordHash:    d.PasswordHash,
		ProfileImageURL: d.ProfileImageURL,
		CreatedAt:       d.CreatedAt,
	}
}

type incomeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Icon      string             `bson:"icon,omitempty"`
	Source    string             `bson:"source"`
	Amount    float64            `bson:"amount"`
	Date      time.Time          `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d incomeDocument) model() models.Income {
	return models.Income{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Icon:      d.Icon,
		Source:    d.Source,
		Amount:    d.Amount,
		Date:      d.Date.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type expenseDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Icon      string             `bson:"icon,omitempty"`
	Category  string             `bson:"category"`
	Amount    float64            `bson:"amount"`
	Date      time.Time          `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d expenseDocument) model() models.Expense {
	return models.Expense{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Icon:      d.Icon,
		Category:  d.Category,
		Amount:    d.Amount,
		Date:      d.Date.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}
