package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuth_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	// Register starts a new household when no group is given
	token, userID, groupID := app.registerUser(t, "ana@test.com", "password123", "")
	if token == "" {
		t.Fatal("expected a token from registration")
	}
	if groupID == "" {
		t.Fatal("expected a generated household group")
	}

	// A second member joins the same household
	_, _, otherGroup := app.registerUser(t, "luis@test.com", "password123", groupID)
	if otherGroup != groupID {
		t.Errorf("expected member to join group %s, got %s", groupID, otherGroup)
	}

	// Login returns a fresh token
	loginToken := app.loginUser(t, "ana@test.com", "password123")

	// Profile reflects the registered user
	rec := app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "ana@test.com" {
		t.Errorf("expected ana@test.com, got %v", user["email"])
	}
	if user["id"].(float64) != userID {
		t.Errorf("expected user id %.0f, got %v", userID, user["id"])
	}
}

func TestAuth_RejectsBadCredentials(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "ana@test.com", "password123", "")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"ana@test.com","password":"wrongpassword"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"nobody@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_RejectsDuplicateEmail(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "ana@test.com", "password123", "")

	body := fmt.Sprintf(`{"email":%q,"password":"password123","display_name":"Dup"}`, "ana@test.com")
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/budgets", "", "not-a-real-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}
