package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart models failed: %v", err)
	}
	service := NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
	)
	return service, db
}

func createCartProduct(t *testing.T, db *gorm.DB, slug string, active bool) *models.Product {
	t.Helper()
	category := &models.Category{Slug: slug + "-category", Name: "Category"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	disc, _ := models.NewMoneyFromString("10")
	product := &models.Product{
		CategoryID:         category.ID,
		Slug:               slug,
		Name:               "Oud Royale",
		Price:              models.NewMoneyFromInt(899),
		DiscountPercentage: disc,
		Images:             models.StringArray{"/uploads/oud.jpg"},
		CashOnDelivery:     true,
		IsActive:           active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	// GORM omits zero-value fields on create, so the default:true column
	// tag would silently override IsActive: false.
	if !active {
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func TestCartAddSnapshotsProduct(t *testing.T) {
	service, db := setupCartTest(t)
	product := createCartProduct(t, db, "cart-add", true)

	if err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	lines, err := service.List("sess-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(lines))
	}
	line := lines[0]
	if line.ProductName != "Oud Royale" || line.UnitPrice.String() != "899.00" {
		t.Fatalf("snapshot = %+v", line)
	}
	if line.DiscountPercentage.String() != "10.00" || !line.CashOnDelivery {
		t.Fatalf("snapshot = %+v", line)
	}
	if line.ImageURL != "/uploads/oud.jpg" {
		t.Fatalf("image = %q", line.ImageURL)
	}
}

func TestCartAddMergesExistingLine(t *testing.T) {
	service, db := setupCartTest(t)
	product := createCartProduct(t, db, "cart-merge", true)

	for i := 0; i < 2; i++ {
		if err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: product.ID, Quantity: 2}); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}

	lines, _ := service.List("sess-1")
	if len(lines) != 1 || lines[0].Quantity != 4 {
		t.Fatalf("merged cart = %+v", lines)
	}
}

func TestCartAddRejectsInactiveProduct(t *testing.T) {
	service, db := setupCartTest(t)
	product := createCartProduct(t, db, "cart-inactive", false)

	err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrProductInactive) {
		t.Fatalf("inactive product: got %v, want %v", err, ErrProductInactive)
	}
	if err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product: got %v, want %v", err, ErrProductNotFound)
	}
}

func TestCartAddQuantityBounds(t *testing.T) {
	service, db := setupCartTest(t)
	product := createCartProduct(t, db, "cart-bounds", true)

	for _, qty := range []int{0, -1, 100} {
		err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: product.ID, Quantity: qty})
		if !errors.Is(err, ErrQuantityInvalid) {
			t.Fatalf("quantity %d: got %v, want %v", qty, err, ErrQuantityInvalid)
		}
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	service, db := setupCartTest(t)
	product := createCartProduct(t, db, "cart-zero", true)

	if err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := service.UpdateQuantity("sess-1", product.ID, "", 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	lines, _ := service.List("sess-1")
	if len(lines) != 0 {
		t.Fatalf("cart still has %d lines", len(lines))
	}

	if err := service.UpdateQuantity("sess-1", product.ID, "", 1); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("update missing line: got %v, want %v", err, ErrCartLineNotFound)
	}
}

func TestCartSessionRequired(t *testing.T) {
	service, _ := setupCartTest(t)
	if _, err := service.List(" "); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("blank session list: got %v, want %v", err, ErrSessionRequired)
	}
	if err := service.Clear(""); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("blank session clear: got %v, want %v", err, ErrSessionRequired)
	}
}

func TestCartClear(t *testing.T) {
	service, db := setupCartTest(t)
	product := createCartProduct(t, db, "cart-clear", true)

	if err := service.Add(AddItemInput{SessionID: "sess-1", ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := service.Clear("sess-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	lines, _ := service.List("sess-1")
	if len(lines) != 0 {
		t.Fatalf("cart still has %d lines after clear", len(lines))
	}
}
