package domain

import (
	projectdomain "taskforge-backend/internal/project/domain"
)

// PersonalDiscussion is a message thread between exactly two users. At
// most one discussion document exists per unordered pair.
type PersonalDiscussion struct {
	ID       string                  `json:"id" gorm:"primaryKey"`
	Member1  string                  `json:"member1" gorm:"index;not null"`
	Member2  string                  `json:"member2" gorm:"index;not null"`
	Messages []projectdomain.Message `json:"messages" gorm:"type:jsonb;serializer:json"`
	Version  int64                   `json:"-"`
}

// HasParticipant reports whether userID is one of the two members.
func (d *PersonalDiscussion) HasParticipant(userID string) bool {
	return d.Member1 == userID || d.Member2 == userID
}

// Counterpart returns the other member of the pair.
func (d *PersonalDiscussion) Counterpart(userID string) string {
	if d.Member1 == userID {
		return d.Member2
	}
	return d.Member1
}
