package account

import (
	"time"

	"github.com/google/uuid"
)

// Role is the platform role attached to a user account. Permissions are
// derived from it and from nothing else.
type Role string

const (
	// RoleStudent is the default role for new accounts.
	RoleStudent Role = "student"
	// RoleCreator marks accounts that publish course content.
	RoleCreator Role = "creator"
	// RoleInstitution marks organisational accounts.
	RoleInstitution Role = "institution"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCreator, RoleInstitution:
		return true
	}
	return false
}

// Provider identifies where an account originated.
type Provider string

const (
	// ProviderEmail is an account created through Register.
	ProviderEmail Provider = "email"
	// ProviderGoogle is an account created through the Google chooser.
	ProviderGoogle Provider = "google"
	// ProviderGitHub is an account created through the GitHub chooser.
	ProviderGitHub Provider = "github"
)

// Profile carries the presentational sub-record of a user.
type Profile struct {
	Bio              string   `json:"bio"`
	Location         string   `json:"location"`
	Skills           []string `json:"skills"`
	CoursesCompleted int      `json:"coursesCompleted"`
	CoursesCreated   int      `json:"coursesCreated"`
}

// Subscription carries the plan sub-record of a user.
type Subscription struct {
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Permissions is the role-derived capability set. It is always computed by
// [PermissionsForRole]; callers must never assemble one by hand.
type Permissions struct {
	CanCreateCourses     bool `json:"canCreateCourses"`
	CanManageInstitution bool `json:"canManageInstitution"`
	CanAccessAITutor     bool `json:"canAccessAITutor"`
	HasPremiumAI         bool `json:"hasPremiumAI"`
	HasUnlimitedCourses  bool `json:"hasUnlimitedCourses"`
}

// User is the identity record for one account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	AvatarURL    string       `json:"avatarUrl,omitempty"`
	Role         Role         `json:"role"`
	Provider     Provider     `json:"provider"`
	Verified     bool         `json:"verified"`
	CreatedAt    time.Time    `json:"createdAt"`
	Profile      Profile      `json:"profile"`
	Subscription Subscription `json:"subscription"`
	Permissions  Permissions  `json:"permissions"`
}

// NewUser builds a fully populated account record with a fresh ID, free
// subscription, empty profile, and permissions derived from role.
func NewUser(name, email string, role Role, provider Provider) *User {
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      role,
		Provider:  provider,
		Verified:  provider != ProviderEmail,
		CreatedAt: time.Now().UTC(),
		Profile: Profile{
			Skills: []string{},
		},
		Subscription: Subscription{
			Plan:   "free",
			Status: "active",
		},
		Permissions: PermissionsForRole(role),
	}
}
