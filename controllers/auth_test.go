package controllers_test

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"email":    "[email protected]",
		"password": "pw",
		"role":     "provider",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	decodeBody(t, resp, &created)
	if created.Token == "" {
		t.Fatal("expected a token on register")
	}
	if created.Role != "provider" {
		t.Fatalf("expected role provider, got %q", created.Role)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "[email protected]",
		"password": "pw",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var logged struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	decodeBody(t, resp, &logged)
	if logged.Token == "" {
		t.Fatal("expected a token on login")
	}
	if logged.Role != "provider" {
		t.Fatalf("expected role provider, got %q", logged.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := setupApp(t)

	register(t, app, "[email protected]", "customer")

	resp := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"email":    "[email protected]",
		"password": "other",
		"role":     "provider",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupApp(t)

	cases := []map[string]string{
		{"password": "pw", "role": "customer"},
		{"email": "[email protected]", "role": "customer"},
		{"email": "[email protected]", "password": "pw"},
		{"email": "[email protected]", "password": "pw", "role": "admin"},
	}
	for _, body := range cases {
		resp := doJSON(t, app, http.MethodPost, "/api/register", "", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, resp.StatusCode)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := setupApp(t)

	register(t, app, "[email protected]", "customer")

	resp := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "[email protected]",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "[email protected]",
		"password": "pw",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", resp.StatusCode)
	}
}

func TestPasswordNotStoredInPlaintext(t *testing.T) {
	app, database := setupApp(t)

	register(t, app, "[email protected]", "customer")

	var stored struct {
		Password string
	}
	if err := database.Table("users").Where("email = ?", "[email protected]").Scan(&stored).Error; err != nil {
		t.Fatalf("failed to read user: %v", err)
	}
	if stored.Password == "pw" {
		t.Fatal("password stored in plaintext")
	}
	if stored.Password == "" {
		t.Fatal("expected a stored hash")
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/services", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/appointments", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", resp.StatusCode)
	}
}
