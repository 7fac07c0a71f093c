package domain

import "time"

// DefaultAvatar is assigned to every freshly registered account.
const DefaultAvatar = "/static/media/question.3fad7249.svg"

// User is the account document. Notifications live inside the user row as
// an ordered list, most recent first. Version guards concurrent updates of
// the whole document.
type User struct {
	ID                   string         `json:"id" gorm:"primaryKey"`
	Name                 string         `json:"name" gorm:"not null"`
	Email                string         `json:"email" gorm:"uniqueIndex;not null"`
	Password             string         `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Avatar               string         `json:"avatar"`
	IsAdmin              bool           `json:"isAdmin"`
	ResetPasswordToken   string         `json:"-" gorm:"index"`
	ResetPasswordExpires *time.Time     `json:"-"`
	Notifications        []Notification `json:"notifications" gorm:"type:jsonb;serializer:json"`
	Version              int64          `json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Notification is an inbox entry embedded in the user document. The
// Project, Issue and DiscussionWith references are informational strings;
// readers tolerate references to resources that no longer exist.
type Notification struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Type           string    `json:"type"`
	Read           bool      `json:"readed"`
	Date           time.Time `json:"date"`
	Project        string    `json:"project,omitempty"`
	Issue          string    `json:"issue,omitempty"`
	DiscussionWith string    `json:"discussionWith,omitempty"`
}

// PublicUser is the caller-facing shape of another account: no password
// hash, no admin flag.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}
