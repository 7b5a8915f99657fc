package models

import "time"

type Income struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Icon      string    `json:"icon,omitempty"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
