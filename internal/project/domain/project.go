package domain

import "time"

// Issue status values. PATCH on the project issue family toggles between
// exactly these two; the standalone issue family accepts free text.
const (
	StatusOnProgress = "ON_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Project is a document: the member list and the issue list, with their
// nested messages, are stored inside the project row and mutated with a
// read-modify-save of the whole row. Version guards those saves.
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CreatorID   string    `json:"creatorId" gorm:"index;not null"`
	CreatorName string    `json:"creatorName" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Members     []Member  `json:"members" gorm:"type:jsonb;serializer:json"`
	Issues      []Issue   `json:"issues" gorm:"type:jsonb;serializer:json"`
	Version     int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Member is a user reference attached to a project. Membership is unique
// by UserID.
type Member struct {
	UserID string `json:"user"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Issue is embedded in its project; the project document is the single
// source of truth for issues.
type Issue struct {
	ID           string    `json:"id"`
	Author       string    `json:"autor"`
	Type         string    `json:"type"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreationDate time.Time `json:"creationDate"`
	Deadline     time.Time `json:"deadline"`
	Messages     []Message `json:"messages"`
}

// Message is a discussion entry on an issue.
type Message struct {
	Text   string    `json:"text"`
	Author string    `json:"autor"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
	Date   time.Time `json:"date"`
}

// HasMember reports whether userID is a current member.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// FindIssue returns the embedded issue with the given id, or nil.
func (p *Project) FindIssue(issueID string) *Issue {
	for i := range p.Issues {
		if p.Issues[i].ID == issueID {
			return &p.Issues[i]
		}
	}
	return nil
}

// MemberIDs returns the member references in list order.
func (p *Project) MemberIDs() []string {
	ids := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}
