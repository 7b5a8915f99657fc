package models

import "time"

type Expense struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Icon      string    `json:"icon,omitempty"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
