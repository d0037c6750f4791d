package domain

import "time"

// Note is a user-owned note. TargetDate is a date-only string in
// "2006-01-02" form; tags are free-form labels.
type Note struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	UserID     int64     `json:"user_id"`
	TargetDate string    `json:"target_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NoteSearch holds the optional filters for a note search. Zero-valued
// fields are not applied.
type NoteSearch struct {
	Content    string   `json:"content,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	TargetDate string   `json:"target_date,omitempty"`
}
