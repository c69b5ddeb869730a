package models

type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
	Rating      int    `json:"rating"`
	Favorite    bool   `json:"favorite"`
	UserID      string `json:"userId"`
}
