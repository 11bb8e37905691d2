package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"culvana/internal/handlers"
	"culvana/internal/models"
	"culvana/internal/repositories"
	"culvana/internal/services"
)

// captureNotifier stands in for the mail queue and records every code it
// is asked to dispatch.
type captureNotifier struct {
	codes map[string]string
}

func (n *captureNotifier) SendOTPEmail(email, code string) error {
	n.codes[email] = code
	return nil
}

// setupApp builds a Fiber app over an in-memory SQLite database with the
// full handler stack wired in.
func setupApp() (*fiber.App, *captureNotifier, *services.TokenService, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.PendingRegistration{}, &repositories.AggregateRecord{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	registrationRepo := repositories.NewGORMRegistrationRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)
	menuRepo := repositories.NewGORMMenuRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	invoiceRepo := repositories.NewGORMInvoiceRepository(db)

	notifier := &captureNotifier{codes: map[string]string{}}
	tokenService := services.NewTokenService(jwtSecret)
	registrationService := services.NewRegistrationService(userRepo, registrationRepo, notifier, tokenService)
	authService := services.NewAuthService(userRepo, tokenService)
	inventoryService := services.NewInventoryService(inventoryRepo)
	menuService := services.NewMenuService(menuRepo, recipeRepo, inventoryRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(registrationService, authService, tokenService).RegisterRoutes(apiV1)
	handlers.NewInventoryHandler(inventoryService).RegisterRoutes(apiV1)
	handlers.NewMenuHandler(menuService).RegisterRoutes(apiV1)
	handlers.NewInvoiceHandler(invoiceService).RegisterRoutes(apiV1)

	return app, notifier, tokenService, nil
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&decoded)
	assert.NoError(t, err)
	resp.Body.Close()
	return resp, decoded
}

func errorMessage(body map[string]interface{}) string {
	errObj, _ := body["error"].(map[string]interface{})
	msg, _ := errObj["message"].(string)
	return msg
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	app, notifier, tokens, err := setupApp()
	assert.NoError(t, err)

	// Signup dispatches a verification code.
	resp, body := postJSON(t, app, "/api/v1/auth/signup", map[string]string{
		"email":    "chef@example.com",
		"password": "longpw123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, notifier.codes["chef@example.com"])

	// Duplicate signup before verification is fine (upsert); after
	// verification it conflicts. First, verify.
	resp, body = postJSON(t, app, "/api/v1/auth/verify-signup", map[string]string{
		"email": "chef@example.com",
		"otp":   notifier.codes["chef@example.com"],
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, true, user["verified"])

	// Verifying again finds no pending registration.
	resp, _ = postJSON(t, app, "/api/v1/auth/verify-signup", map[string]string{
		"email": "chef@example.com",
		"otp":   notifier.codes["chef@example.com"],
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Signing up the verified email again conflicts.
	resp, _ = postJSON(t, app, "/api/v1/auth/signup", map[string]string{
		"email":    "chef@example.com",
		"password": "longpw123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login returns a valid session token.
	resp, body = postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email":    "chef@example.com",
		"password": "longpw123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	claims, err := tokens.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "chef@example.com", claims["user_id"])

	// The token opens the protected identity endpoint.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
	meResp.Body.Close()

	// Without a token the endpoint is closed.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	meResp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
	meResp.Body.Close()
}

func TestSignupValidation(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	// Missing password
	resp, body := postJSON(t, app, "/api/v1/auth/signup", map[string]string{
		"email": "chef@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", errorMessage(body))

	// Weak password
	resp, body = postJSON(t, app, "/api/v1/auth/signup", map[string]string{
		"email":    "chef@example.com",
		"password": "short1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(body), "at least 8 characters")
}

func TestVerifyExhaustionScenario(t *testing.T) {
	app, notifier, _, err := setupApp()
	assert.NoError(t, err)

	resp, _ := postJSON(t, app, "/api/v1/auth/signup", map[string]string{
		"email":    "a@x.com",
		"password": "longpw123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	wrong := "000000"
	if notifier.codes["a@x.com"] == wrong {
		wrong = "000001"
	}

	// Two invalid-code failures, then exhaustion on the third.
	for i := 0; i < 2; i++ {
		resp, body := postJSON(t, app, "/api/v1/auth/verify-signup", map[string]string{
			"email": "a@x.com", "otp": wrong,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, errorMessage(body), "invalid verification code")
	}
	resp, body := postJSON(t, app, "/api/v1/auth/verify-signup", map[string]string{
		"email": "a@x.com", "otp": wrong,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(body), "too many failed attempts")

	// Even the correct code is refused now.
	resp, _ = postJSON(t, app, "/api/v1/auth/verify-signup", map[string]string{
		"email": "a@x.com", "otp": notifier.codes["a@x.com"],
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A resend resets the counter and rotates the code; the fresh code
	// verifies.
	resp, _ = postJSON(t, app, "/api/v1/auth/resend-otp", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = postJSON(t, app, "/api/v1/auth/verify-signup", map[string]string{
		"email": "a@x.com", "otp": notifier.codes["a@x.com"],
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResendWithoutPendingRegistration(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	resp, _ := postJSON(t, app, "/api/v1/auth/resend-otp", map[string]string{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryEndpoints(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	// Add with required fields only.
	resp, body := postJSON(t, app, "/api/v1/inventory/add", map[string]interface{}{
		"email":             "chef@example.com",
		"inventoryItem":     "Flour",
		"itemType":          "Goods",
		"inventoryCategory": "Dry Goods",
		"inventoryCountBy":  "Bag",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["batchNumber"])
	// Omitted optional fields come back as explicit empty defaults.
	assert.Equal(t, "", data["Nutritional Label"])
	assert.Equal(t, "", data["UPC"])
	assert.Equal(t, "Yes", data["Active"])

	// Missing required field fails validation.
	resp, _ = postJSON(t, app, "/api/v1/inventory/add", map[string]interface{}{
		"email":         "chef@example.com",
		"inventoryItem": "Sugar",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Listing returns the item with the full projected shape.
	resp, body = postJSON(t, app, "/api/v1/inventory/list", map[string]string{"email": "chef@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	inventory := body["inventory"].([]interface{})
	assert.Len(t, inventory, 1)
	first := inventory[0].(map[string]interface{})
	assert.Equal(t, "Flour", first["Inventory Item Name"])
	for _, key := range []string{"Supplier Name", "Brand", "Item Number", "Case Price", "timestamp", "batchNumber"} {
		assert.Contains(t, first, key)
	}
	assert.Equal(t, float64(1), body["itemCount"])

	// Listing an unknown user succeeds with an empty collection.
	resp, body = postJSON(t, app, "/api/v1/inventory/list", map[string]string{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["inventory"])
	assert.Equal(t, float64(0), body["itemCount"])

	// Update and delete key on the importer-assigned item number, which
	// added items do not have.
	resp, _ = postJSON(t, app, "/api/v1/inventory/delete", map[string]string{
		"email":       "chef@example.com",
		"item_number": "9999",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Deleting for a user with no document is a document-level not-found.
	resp, _ = postJSON(t, app, "/api/v1/inventory/delete", map[string]string{
		"email":       "nobody@x.com",
		"item_number": "1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMenuEndpoints(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	resp, body := postJSON(t, app, "/api/v1/menu/add", map[string]interface{}{
		"email":     "chef@example.com",
		"itemName":  "Margherita",
		"category":  "Pizza",
		"size":      "Large",
		"menuPrice": 14.5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["sequence_number"])
	assert.Equal(t, "chef@example.com_inventory-items-chef@example.com_1", data["id"])

	resp, body = postJSON(t, app, "/api/v1/menu/list", map[string]string{"email": "chef@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	menus := body["menus"].([]interface{})
	assert.Len(t, menus, 1)
	entry := menus[0].(map[string]interface{})
	assert.Equal(t, "Margherita", entry["Recipe Name"])
	assert.Contains(t, entry, "total_cost")

	// Recipes live in their own document; this user has none.
	resp, body = postJSON(t, app, "/api/v1/recipes/list", map[string]string{"email": "chef@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["recipes"])
}

func TestInvoiceEndpoint(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	resp, body := postJSON(t, app, "/api/v1/invoices/list", map[string]string{"email": "chef@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "chef@example.com", data["id"])
	assert.Empty(t, data["invoices"])

	// Missing email fails validation.
	resp, _ = postJSON(t, app, "/api/v1/invoices/list", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
