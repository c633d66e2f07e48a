package models

import "time"

// Role identifies what kind of account a user record represents.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleChef    Role = "chef"
	RoleAdmin   Role = "admin"
)

// ChefStatus is the moderation state of a chef (or chef applicant) account.
type ChefStatus string

const (
	StatusPending  ChefStatus = "pending"
	StatusApproved ChefStatus = "approved"
	StatusRejected ChefStatus = "rejected"
)

// User represents a registered account in the directory.
// The whole collection is persisted as one JSON array under the
// "registeredUsers" key of the key-value store.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	FullName     string `json:"fullName,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         Role   `json:"role"`
	Nationality  string `json:"nationality,omitempty"`
	Bio          string `json:"bio,omitempty"`
	// ProfilePhoto is a data URI, empty when the user has no photo.
	ProfilePhoto string `json:"profilePhoto,omitempty"`

	// Recipes are owned by chef accounts.
	Recipes []Recipe `json:"recipes"`
	// SavedRecipes are bookmarks owned by visitor accounts.
	SavedRecipes []SavedRecipe `json:"savedRecipes"`
	// Conversations is this user's copy of every thread they take part in,
	// most recent first. Each thread also exists as the other participant's
	// copy; both copies carry the same message list.
	Conversations []Conversation `json:"conversations"`

	Status           ChefStatus `json:"status,omitempty"`
	IsChefRegistered bool       `json:"isChefRegistered"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// DisplayName prefers the full name and falls back to the short name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Name
}

// Session is the denormalized projection of the currently authenticated
// user, stored under the "currentUser" key. At most one session exists.
type Session struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          Role           `json:"role"`
	ProfilePhoto  string         `json:"profilePhoto,omitempty"`
	Nationality   string         `json:"nationality,omitempty"`
	Recipes       []Recipe       `json:"recipes"`
	SavedRecipes  []SavedRecipe  `json:"savedRecipes"`
	Conversations []Conversation `json:"conversations"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// NewSession builds the session projection for an authenticated user.
func NewSession(u *User) *Session {
	return &Session{
		ID:            u.ID,
		Name:          u.DisplayName(),
		Email:         u.Email,
		Role:          u.Role,
		ProfilePhoto:  u.ProfilePhoto,
		Nationality:   u.Nationality,
		Recipes:       u.Recipes,
		SavedRecipes:  u.SavedRecipes,
		Conversations: u.Conversations,
		CreatedAt:     u.CreatedAt,
	}
}
