package authkit

import (
	"github.com/coursia/authkit/account"
)

// User is the identity record for one account.
type User = account.User

// Role is the platform role attached to a user account.
type Role = account.Role

// Roles accepted by Register and derived into permissions.
const (
	// RoleStudent is the default role for new accounts.
	RoleStudent = account.RoleStudent
	// RoleCreator marks accounts that publish course content.
	RoleCreator = account.RoleCreator
	// RoleInstitution marks organisational accounts.
	RoleInstitution = account.RoleInstitution
)

// Permissions is the role-derived capability set.
type Permissions = account.Permissions

// Profile carries the presentational sub-record of a user.
type Profile = account.Profile

// Subscription carries the plan sub-record of a user.
type Subscription = account.Subscription

// Provider names accepted by [Service.SignInWithProvider].
const (
	// ProviderGoogle selects the Google chooser.
	ProviderGoogle = "google"
	// ProviderGitHub selects the GitHub chooser.
	ProviderGitHub = "github"
)

// RegisterInput is the input for [Service.Register].
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Session is the in-memory pair representing who is currently signed in.
type Session struct {
	Token string
	User  *User
}
