package dto

import "time"

type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	End         time.Time  `json:"end" binding:"required"`
	Start       *time.Time `json:"start"`
	// Member emails to invite at creation. Unknown addresses are skipped.
	Members []string `json:"members"`
}

type CreateIssueRequest struct {
	Type        string    `json:"type" binding:"required"`
	Summary     string    `json:"summary" binding:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// StandaloneIssueRequest is the variant of issue creation without a
// deadline, used by the /api/issues route family.
type StandaloneIssueRequest struct {
	Type        string `json:"type" binding:"required"`
	Summary     string `json:"summary" binding:"required"`
	Description string `json:"description"`
}

type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
