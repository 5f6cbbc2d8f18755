package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/auth"
	"github.com/splitkaro/backend/internal/notify"
	"github.com/splitkaro/backend/internal/storage"
	"github.com/splitkaro/backend/internal/storage/sqlite"
)

type testEnv struct {
	app   *fiber.App
	store storage.Store
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitkaro-handlers-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := NewApp(AppConfig{
		Store:      store,
		Notifier:   notify.NewLogNotifier(logger),
		JWTManager: auth.NewJWTManager("test-secret-key-for-tests-only", time.Hour),
		Logger:     logger,
		InviteLink: "https://splitkaro.app/join",
	})

	return &testEnv{app: app, store: store}
}

// registerUser creates an account through the API and returns its token and
// user ID.
func registerUser(t *testing.T, env *testEnv, email, name, phone string) (token, userID string) {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/register", map[string]any{
		"email":       email,
		"displayName": name,
		"phoneNumber": phone,
		"password":    "password123",
	}, nil)
	assertStatus(t, resp, http.StatusCreated)

	body := decodeJSONMap(t, resp)
	data, _ := body["data"].(map[string]any)
	token, _ = data["token"].(string)
	user, _ := data["user"].(map[string]any)
	userID, _ = user["id"].(string)
	if token == "" || userID == "" {
		t.Fatalf("registration returned incomplete session: %+v", body)
	}
	return token, userID
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in envelope, got %+v", body)
	}
	return data
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
