package domain

import "testing"

func TestAuthorize_AdminRequired(t *testing.T) {
	if err := Authorize(RoleAdmin, RoleAdmin); err != nil {
		t.Fatalf("admin should be allowed: %v", err)
	}
	if err := Authorize(RoleGuest, RoleAdmin); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for guest, got %v", err)
	}
}

func TestAuthorize_MissingRole(t *testing.T) {
	if err := Authorize("", RoleAdmin); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleAdmin) || !ValidRole(RoleGuest) {
		t.Fatalf("enumerated roles must be valid")
	}
	if ValidRole("superuser") {
		t.Fatalf("unknown role must be invalid")
	}
}
