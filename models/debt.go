package models

import "time"

type Debt struct {
	ID          string     `json:"id"`
	PersonName  string     `json:"personName"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`   // owed_to_me or i_owe
	Status      string     `json:"status"` // active or settled
	Date        time.Time  `json:"date"`
	SettledDate *time.Time `json:"settledDate,omitempty"`
	UserID      string     `json:"userId"`
}
