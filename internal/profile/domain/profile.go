package domain

import authdomain "taskforge-backend/internal/auth/domain"

// DefaultField is the placeholder for profile fields the user has not
// filled in yet.
const DefaultField = "Not defined yet"

// Profile is the one-to-one companion of a user account.
type Profile struct {
	ID       string `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user" gorm:"uniqueIndex;not null"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

// Populated is a profile joined with the public fields of its user.
type Populated struct {
	Profile
	User *authdomain.PublicUser `json:"userInfo,omitempty"`
}

// New returns a profile with all fields defaulted.
func New(userID string) *Profile {
	return &Profile{
		UserID:   userID,
		Role:     DefaultField,
		Location: DefaultField,
		Bio:      DefaultField,
	}
}
