package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known principal roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Address is the postal address attached to a principal's profile.
type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
}

// Principal models an authenticated actor: a regular member or an admin.
// Both classes share one schema; the role field is the only discriminator.
type Principal struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Department   string    `json:"department,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Address      Address   `json:"address,omitempty"`
	ChurchBranch string    `json:"church_branch,omitempty"`
	Country      string    `json:"country,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfilePatch carries the self-update fields a principal may change.
// Role is accepted on the wire but only honoured for admin callers; see
// CanSetRole.
type ProfilePatch struct {
	Username     string
	Department   string
	PhoneNumber  string
	Address      *Address
	ChurchBranch string
	Country      string
	Role         string
}
