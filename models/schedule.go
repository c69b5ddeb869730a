package models

import "time"

type Schedule struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}
