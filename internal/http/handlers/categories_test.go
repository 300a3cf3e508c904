package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/provider"
	"github.com/yanhua-ledger/internal/repository"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:category_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductCategory{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	container := &provider.Container{
		CategoryService: service.NewCategoryService(categoryRepo, productRepo),
	}
	return NewHandler(container), db
}

func deleteCategoryRequest(t *testing.T, handler *Handler, categoryID, role string) *response.Response {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("DELETE", "/api/v1/categories/"+categoryID, nil)
	c.Params = gin.Params{{Key: "id", Value: categoryID}}
	SetAuthClaims(c, &service.AuthClaims{Username: "测试账号", Role: role})

	handler.DeleteCategory(c)

	var resp response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return &resp
}

func TestDeleteCategoryRequiresOwnerRole(t *testing.T) {
	handler, db := setupCategoryHandlerTest(t)

	category := &models.Category{Name: "烟花组合"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	resp := deleteCategoryRequest(t, handler, category.ID, constants.RoleClerk)
	if resp.StatusCode != response.CodeForbidden {
		t.Fatalf("expected forbidden code %d for clerk, got %d", response.CodeForbidden, resp.StatusCode)
	}

	// 店员请求被拒后分类仍在
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error; err != nil {
		t.Fatalf("count categories failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("category must survive clerk delete attempt, count %d", count)
	}

	resp = deleteCategoryRequest(t, handler, category.ID, constants.RoleOwner)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("expected owner delete to succeed, got code %d msg %s", resp.StatusCode, resp.Msg)
	}
	if err := db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error; err != nil {
		t.Fatalf("count categories failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected category deleted by owner, count %d", count)
	}
}
