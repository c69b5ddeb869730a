package models

import "time"

type Folder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
	Notes       []Note    `json:"notes,omitempty"`
}

// Note is stored in its own table keyed by folder; the client still sees it
// embedded in the folder payload.
type Note struct {
	ID          string `json:"id"`
	FolderID    string `json:"folderId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD as entered by the client
}
