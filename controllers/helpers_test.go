package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookwise/bookwise/config"
	"github.com/bookwise/bookwise/db"
	"github.com/bookwise/bookwise/routes"
)

const testSecret = "test-secret"

// setupApp wires the full route tree against a fresh in-memory database,
// with cache and mail disabled.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := config.Config{JWTSecret: testSecret}

	app := fiber.New()
	api := app.Group("/api")
	routes.SetupAuthRoutes(api, database, cfg)
	routes.SetupServiceRoutes(api, database, cfg)
	routes.SetupWorkingHourRoutes(api, database, nil, cfg)
	routes.SetupAppointmentRoutes(api, database, nil, cfg)

	return app, database
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// register creates an account through the API and returns its token.
func register(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"email":    email,
		"password": "pw",
		"role":     role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", email, resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatalf("register %s: expected a token", email)
	}
	return body.Token
}

// createService posts a service as the given provider and returns its id.
func createService(t *testing.T, app *fiber.App, token, title string, price float64) uint {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/services", token, map[string]interface{}{
		"title":       title,
		"description": "test service",
		"price":       price,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create service: expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		ID uint `json:"ID"`
	}
	decodeBody(t, resp, &body)
	if body.ID == 0 {
		t.Fatal("create service: expected a generated id")
	}
	return body.ID
}
