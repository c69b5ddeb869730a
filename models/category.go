package models

type Category struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Icon   string  `json:"icon,omitempty"`
	Budget float64 `json:"budget"`
	UserID string  `json:"userId"`
}
