package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate order models failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func testOrder(orderNo string) *models.Order {
	return &models.Order{
		OrderNo:       orderNo,
		CustomerName:  "Asha Verma",
		Phone:         "+919876543210",
		Address:       "12 MG Road",
		State:         "Karnataka",
		Pincode:       "560001",
		PaymentMethod: constants.PaymentMethodCOD,
		Subtotal:      models.NewMoneyFromInt(900),
		Total:         models.NewMoneyFromInt(900),
		Status:        constants.OrderStatusPending,
	}
}

func TestOrderCreateLinksItems(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	items := []models.OrderItem{
		{ProductID: 1, ProductName: "Oud Royale", UnitPrice: models.NewMoneyFromInt(900), Quantity: 1},
	}
	if err := repo.Create(testOrder("RYL-AAAA1111"), items); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var stored models.OrderItem
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if stored.OrderID == 0 {
		t.Fatalf("item not linked to its order")
	}

	order, err := repo.GetByOrderNo("RYL-AAAA1111")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if order == nil || len(order.Items) != 1 {
		t.Fatalf("order = %+v", order)
	}
}

func TestOrderNoUniqueConstraint(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	if err := repo.Create(testOrder("RYL-DUPE0001"), nil); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := repo.Create(testOrder("RYL-DUPE0001"), nil)
	if err == nil {
		t.Fatalf("duplicate order no accepted")
	}
	if !strings.Contains(err.Error(), "UNIQUE constraint failed") {
		t.Fatalf("duplicate error = %v", err)
	}
}

func TestGetByOrderNoAndPhone(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	if err := repo.Create(testOrder("RYL-TRCK0001"), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	order, err := repo.GetByOrderNoAndPhone("RYL-TRCK0001", "+919876543210")
	if err != nil || order == nil {
		t.Fatalf("lookup: got (%+v, %v)", order, err)
	}

	order, err = repo.GetByOrderNoAndPhone("RYL-TRCK0001", "+919123456789")
	if err != nil {
		t.Fatalf("mismatched phone errored: %v", err)
	}
	if order != nil {
		t.Fatalf("mismatched phone returned an order")
	}
}

func TestListAdminFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	if err := repo.Create(testOrder("RYL-LIST0001"), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	confirmed := testOrder("RYL-LIST0002")
	confirmed.Status = constants.OrderStatusConfirmed
	if err := repo.Create(confirmed, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orders, total, err := repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusPending})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].OrderNo != "RYL-LIST0001" {
		t.Fatalf("filtered list = %d rows, total %d", len(orders), total)
	}

	_, total, err = repo.ListAdmin(OrderListFilter{Phone: "+919876543210"})
	if err != nil || total != 2 {
		t.Fatalf("phone filter: got (total %d, %v), want (2, nil)", total, err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := testOrder("RYL-STAT0001")
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateStatus(order.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	reloaded, err := repo.GetByID(order.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload: got (%+v, %v)", reloaded, err)
	}
	if reloaded.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", reloaded.Status)
	}
}
