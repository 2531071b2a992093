package auth

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := IssueToken(userID, "admin@example.com", true, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID.Hex(), claims.UserID.Hex())
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("expected email to round-trip, got %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Fatal("expected isAdmin to round-trip")
	}
	if !claims.HasRole(RoleAdmin) {
		t.Fatal("expected admin claims to carry the admin role")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(primitive.NewObjectID(), "user@example.com", false, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	if _, err := VerifyToken(token, "other-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken(primitive.NewObjectID(), "user@example.com", false, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	if _, err := VerifyToken(token, testSecret); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTokenRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := VerifyToken(raw, testSecret); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestRolesFor(t *testing.T) {
	admin := RolesFor(true)
	if len(admin) != 1 || admin[0] != RoleAdmin {
		t.Fatalf("expected [admin], got %v", admin)
	}

	user := RolesFor(false)
	if len(user) != 1 || user[0] != RoleUser {
		t.Fatalf("expected [user], got %v", user)
	}
}

func TestHasAnyRole(t *testing.T) {
	user := RolesFor(false)

	if HasAnyRole(user, RoleAdmin) {
		t.Fatal("user role set must not satisfy an admin requirement")
	}
	if !HasAnyRole(user, RoleUser, RoleAdmin) {
		t.Fatal("user role set should satisfy a user-or-admin requirement")
	}
	if !HasAnyRole(user) {
		t.Fatal("empty requirement means no restriction")
	}
	if HasAnyRole(nil, RoleUser) {
		t.Fatal("empty role set must not satisfy any requirement")
	}
}
