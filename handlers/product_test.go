package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tomm10100/el-dorado-ecommerce/middleware"
	"github.com/Tomm10100/el-dorado-ecommerce/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupProductRouter(db *gorm.DB, storage *mockStorage) *gin.Engine {
	router := gin.New()
	h := &ProductHandler{DB: db, Storage: storage}

	api := router.Group("/api")
	api.GET("/products", h.GetProducts)
	api.GET("/products/:id", h.GetProduct)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.POST("/products/upload", h.UploadProductImage)

	return router
}

func TestGetProducts(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	seedProduct(db, "Cruz-Ki", "pendant", 200)
	seedProduct(db, "Fuego Cadena", "chain", 1200)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Errorf("expected 2 products, got %d", len(result))
	}
}

func TestGetProductsFilterByCategory(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	seedProduct(db, "Cruz-Ki", "pendant", 200)
	seedProduct(db, "Dumfe", "bracelet", 400)
	seedProduct(db, "Chan", "bracelet", 300)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?category=bracelet", nil))

	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Errorf("expected 2 bracelets, got %d", len(result))
	}
}

func TestGetProductsSearch(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	seedProduct(db, "Fuego Cadena", "chain", 1200)
	seedProduct(db, "Oni", "bracelet", 200)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?search=fuego", nil))

	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result))
	}
	match := result[0].(map[string]interface{})
	if match["name"] != "Fuego Cadena" {
		t.Errorf("expected Fuego Cadena, got %v", match["name"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/9999", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	body := map[string]interface{}{"name": "Nuevo", "price": 500}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products", body))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductSuccess(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	_, token := seedAdmin(db, "admin-create@test.com")

	body := map[string]interface{}{
		"name":        "Sol",
		"price":       650.0,
		"description": "A radiant silver pendant.",
		"category":    "pendant",
		"resonance":   "963Hz",
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["name"] != "Sol" {
		t.Errorf("expected name Sol, got %v", resp["name"])
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 product in db, got %d", count)
	}
}

func TestCreateProductValidation(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	_, token := seedAdmin(db, "admin-validate@test.com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", map[string]interface{}{"price": 100}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateProduct(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	_, token := seedAdmin(db, "admin-update@test.com")
	prod := seedProduct(db, "Chan", "bracelet", 300)

	body := map[string]interface{}{"price": 350.0}

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/admin/products/%d", prod.ID)
	router.ServeHTTP(w, authRequest("PUT", url, body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if price, _ := resp["price"].(float64); price != 350 {
		t.Errorf("expected price 350, got %v", resp["price"])
	}
	if resp["name"] != "Chan" {
		t.Errorf("expected name to be unchanged, got %v", resp["name"])
	}
}

func TestDeleteProductCleansUpImage(t *testing.T) {
	db := freshDB()
	storage := newMockStorage()
	router := setupProductRouter(db, storage)

	_, token := seedAdmin(db, "admin-delete@test.com")

	prod := models.Product{
		Name:     "Oni",
		Price:    200,
		Image:    "https://storage.googleapis.com/test-bucket/products/oni.jpg",
		Category: "bracelet",
	}
	db.Create(&prod)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/admin/products/%d", prod.ID)
	router.ServeHTTP(w, authRequest("DELETE", url, nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("expected product to be deleted, got %d rows", count)
	}

	if len(storage.DeleteFileCalls) != 1 || storage.DeleteFileCalls[0] != "products/oni.jpg" {
		t.Errorf("expected image cleanup for products/oni.jpg, got %v", storage.DeleteFileCalls)
	}
}

func TestUploadProductImage(t *testing.T) {
	db := freshDB()
	storage := newMockStorage()
	router := setupProductRouter(db, storage)

	_, token := seedAdmin(db, "admin-upload@test.com")
	prod := seedProduct(db, "Cruz-Ki", "pendant", 200)

	fields := map[string]string{"product_id": fmt.Sprintf("%d", prod.ID)}
	files := map[string]string{"image": "cruz-ki.jpg"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/products/upload", fields, files, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if storage.UploadCallCount != 1 {
		t.Errorf("expected 1 upload call, got %d", storage.UploadCallCount)
	}

	var updated models.Product
	db.First(&updated, prod.ID)
	if updated.Image != "https://storage.googleapis.com/test-bucket/products/test_image.jpg" {
		t.Errorf("expected product image to be updated, got %s", updated.Image)
	}
}

func TestUploadProductImageMissingFile(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db, newMockStorage())

	_, token := seedAdmin(db, "admin-nofile@test.com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/products/upload", nil, nil, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}
