package domain

import "time"

// StatusActive is the default state of a fresh todo; status is otherwise
// free text chosen by the client.
const StatusActive = "ACTIVE"

// Todo is a personal task owned by a single user.
type Todo struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user" gorm:"index;not null"`
	Text      string     `json:"text" gorm:"not null"`
	Status    string     `json:"status"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
