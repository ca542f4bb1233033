package domain

// Caller is the identity resolved from a verified token, attached to every
// authenticated request. ID is opaque: equality is the only operation the
// authorization gate performs on it.
type Caller struct {
	ID   string
	Role string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// RequireRole denies unless the caller holds exactly the given role.
// Deny-by-default: any mismatch, including an empty caller role, is ErrForbidden.
func RequireRole(caller Caller, role string) error {
	if caller.Role != role {
		return ErrForbidden
	}
	return nil
}

// RequireOwner denies unless the caller owns the target record. The role check
// runs first: an admin may act regardless of ownership.
func RequireOwner(caller Caller, ownerID string) error {
	if caller.IsAdmin() {
		return nil
	}
	if caller.ID == "" || caller.ID != ownerID {
		return ErrForbidden
	}
	return nil
}

// CanSetRole reports whether the caller may set a principal's role to
// requested on a self-update. Non-admin callers may only restate their current
// role; anything else is a privilege escalation attempt.
func CanSetRole(caller Caller, requested string) bool {
	if requested == "" || caller.IsAdmin() {
		return true
	}
	return requested == caller.Role
}
