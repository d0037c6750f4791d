package domain

// Repository is a named grouping of notes owned by a user.
type Repository struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"user_id"`
}
