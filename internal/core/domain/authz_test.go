package domain

import "testing"

func TestRequireRole(t *testing.T) {
	admin := Caller{ID: "a1", Role: RoleAdmin}
	user := Caller{ID: "u1", Role: RoleUser}
	anon := Caller{}

	if err := RequireRole(admin, RoleAdmin); err != nil {
		t.Fatalf("admin denied: %v", err)
	}
	if err := RequireRole(user, RoleAdmin); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireRole(anon, RoleAdmin); err != ErrForbidden {
		t.Fatalf("empty role must deny, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	owner := Caller{ID: "u1", Role: RoleUser}
	stranger := Caller{ID: "u2", Role: RoleUser}
	admin := Caller{ID: "a1", Role: RoleAdmin}

	if err := RequireOwner(owner, "u1"); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if err := RequireOwner(stranger, "u1"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// Role check precedes ownership: an admin acts regardless of ownership.
	if err := RequireOwner(admin, "u1"); err != nil {
		t.Fatalf("admin denied: %v", err)
	}
	// Empty caller id never matches, even against an empty owner field.
	if err := RequireOwner(Caller{Role: RoleUser}, ""); err != ErrForbidden {
		t.Fatalf("empty ids must deny, got %v", err)
	}
}

func TestRequireOwner_Idempotent(t *testing.T) {
	caller := Caller{ID: "u1", Role: RoleUser}
	for i := 0; i < 3; i++ {
		if err := RequireOwner(caller, "u2"); err != ErrForbidden {
			t.Fatalf("iteration %d: expected ErrForbidden, got %v", i, err)
		}
	}
}

func TestCanSetRole(t *testing.T) {
	user := Caller{ID: "u1", Role: RoleUser}
	admin := Caller{ID: "a1", Role: RoleAdmin}

	if !CanSetRole(user, RoleUser) {
		t.Fatalf("restating the current role must be allowed")
	}
	if CanSetRole(user, RoleAdmin) {
		t.Fatalf("non-admin escalation must be denied")
	}
	if !CanSetRole(admin, RoleUser) {
		t.Fatalf("admin may set any role")
	}
	if !CanSetRole(user, "") {
		t.Fatalf("absent role field is a no-op, not a denial")
	}
}
