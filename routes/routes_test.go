package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Tomm10100/el-dorado-ecommerce/analytics"
	"github.com/Tomm10100/el-dorado-ecommerce/cart"
	"github.com/Tomm10100/el-dorado-ecommerce/database"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type mockStorage struct{}

func (m *mockStorage) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	return "https://storage.googleapis.com/test-bucket/products/test.jpg", nil
}
func (m *mockStorage) DeleteFile(objectPath string) error { return nil }

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}

	router := gin.New()
	SetupRoutes(router, db, &mockStorage{}, cart.NewGormPersistence(db), analytics.NewSink())
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestPublicRoutesWired(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/products", http.StatusOK},
		{"GET", "/api/products/1", http.StatusOK},
		{"GET", "/api/config", http.StatusOK},
		{"GET", "/api/cart", http.StatusOK},
		{"GET", "/api/support/chat", http.StatusOK},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.status {
			t.Errorf("%s %s: expected status %d, got %d: %s", tt.method, tt.path, tt.status, w.Code, w.Body.String())
		}
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"name": "X", "price": 1})

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/admin/products"},
		{"PUT", "/api/admin/products/1"},
		{"DELETE", "/api/admin/products/1"},
		{"POST", "/api/admin/products/upload"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status 401, got %d", tt.method, tt.path, w.Code)
		}
	}
}

func TestCheckoutRoutesWired(t *testing.T) {
	router := setupTestRouter(t)

	// Empty cart checkout returns 400 from the handler, proving the route is
	// wired through the cart key middleware.
	for _, path := range []string{"/api/checkout/card", "/api/checkout/crypto"} {
		req := httptest.NewRequest("POST", path, nil)
		req.Header.Set("X-Cart-Key", "routes-test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: expected status 400, got %d: %s", path, w.Code, w.Body.String())
		}
	}
}

func TestSubscribeRouteWired(t *testing.T) {
	router := setupTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"email": "routes@test.com"})
	req := httptest.NewRequest("POST", "/api/subscribers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
}
