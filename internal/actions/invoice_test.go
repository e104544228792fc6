package actions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finbase/invoices/internal/models"
	"github.com/finbase/invoices/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupActionsTest(t *testing.T) (*gorm.DB, *InvoiceActions) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, NewInvoiceActions(store.NewInvoiceStore(db))
}

func countInvoices(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Invoice{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreatePersistsAndNavigates(t *testing.T) {
	db, a := setupActionsTest(t)

	res := a.Create(context.Background(), Form{
		"customerId": "c1",
		"amount":     "50",
		"status":     "pending",
	})

	if res.State != nil {
		t.Fatalf("expected no state on success, got %#v", res.State)
	}
	if res.Revalidate != InvoicesPath || res.Redirect != InvoicesPath {
		t.Fatalf("expected invalidate+redirect to %s, got %#v", InvoicesPath, res)
	}

	var inv models.Invoice
	if err := db.First(&inv).Error; err != nil {
		t.Fatalf("no row persisted: %v", err)
	}
	if inv.CustomerID != "c1" || inv.Amount != 5000 || inv.Status != "pending" {
		t.Fatalf("unexpected row: %#v", inv)
	}
	if inv.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("expected today's date, got %s", inv.Date)
	}
	if inv.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestCreateConvertsAmountToCents(t *testing.T) {
	db, a := setupActionsTest(t)

	res := a.Create(context.Background(), Form{
		"customerId": "c1",
		"amount":     "12.34",
		"status":     "paid",
	})
	if res.State != nil {
		t.Fatalf("unexpected state: %#v", res.State)
	}

	var inv models.Invoice
	if err := db.First(&inv).Error; err != nil {
		t.Fatalf("no row persisted: %v", err)
	}
	if inv.Amount != 1234 {
		t.Fatalf("expected 1234 cents, got %d", inv.Amount)
	}
}

func TestCreateMissingCustomer(t *testing.T) {
	db, a := setupActionsTest(t)

	res := a.Create(context.Background(), Form{
		"customerId": "",
		"amount":     "10",
		"status":     "paid",
	})

	if res.State == nil {
		t.Fatal("expected failure state")
	}
	if res.Revalidate != "" || res.Redirect != "" {
		t.Fatalf("no side effects expected on validation failure: %#v", res)
	}
	if res.State.Message != "Missing fields. Failed to create an invoice" {
		t.Fatalf("unexpected message: %q", res.State.Message)
	}
	errs := res.State.Errors["customerId"]
	if len(errs) != 1 || errs[0] != "Please select a customer" {
		t.Fatalf("unexpected customerId errors: %#v", errs)
	}
	if len(res.State.Errors) != 1 {
		t.Fatalf("only customerId should fail: %#v", res.State.Errors)
	}
	if countInvoices(t, db) != 0 {
		t.Fatal("validation failure must not persist")
	}
}

func TestCreateAggregatesFieldErrors(t *testing.T) {
	db, a := setupActionsTest(t)

	res := a.Create(context.Background(), Form{
		"customerId": "",
		"amount":     "0",
		"status":     "overdue",
	})

	if res.State == nil || len(res.State.Errors) != 3 {
		t.Fatalf("expected 3 failing fields, got %#v", res.State)
	}
	if res.State.Errors["amount"][0] != "Please enter the number greater than 0" {
		t.Fatalf("unexpected amount message: %#v", res.State.Errors["amount"])
	}
	if res.State.Errors["status"][0] != "Please select an invoice status" {
		t.Fatalf("unexpected status message: %#v", res.State.Errors["status"])
	}
	if countInvoices(t, db) != 0 {
		t.Fatal("validation failure must not persist")
	}
}

func TestCreatePersistenceFailure(t *testing.T) {
	db, a := setupActionsTest(t)
	if err := db.Exec("DROP TABLE invoices").Error; err != nil {
		t.Fatalf("drop: %v", err)
	}

	res := a.Create(context.Background(), Form{
		"customerId": "c1",
		"amount":     "10",
		"status":     "paid",
	})

	if res.State == nil || res.State.Message != "Database Error: Failed to Create Invoice" {
		t.Fatalf("unexpected result: %#v", res)
	}
	if res.State.Errors != nil {
		t.Fatalf("no field errors expected: %#v", res.State.Errors)
	}
	if res.Revalidate != "" || res.Redirect != "" {
		t.Fatalf("no side effects expected on persistence failure: %#v", res)
	}
}

func TestUpdateReplacesFieldsKeepsDate(t *testing.T) {
	db, a := setupActionsTest(t)
	seed := models.Invoice{ID: "inv-1", CustomerID: "c1", Amount: 1000, Status: "pending", Date: "2026-01-02"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := a.Update(context.Background(), "inv-1", Form{
		"customerId": "c2",
		"amount":     "99.99",
		"status":     "paid",
	})

	if res.State != nil {
		t.Fatalf("expected no state on success, got %#v", res.State)
	}
	if res.Revalidate != InvoicesPath || res.Redirect != InvoicesPath {
		t.Fatalf("expected invalidate+redirect, got %#v", res)
	}

	var inv models.Invoice
	if err := db.First(&inv, "id = ?", "inv-1").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if inv.CustomerID != "c2" || inv.Amount != 9999 || inv.Status != "paid" {
		t.Fatalf("update not applied: %#v", inv)
	}
	if inv.Date != "2026-01-02" {
		t.Fatalf("date must not change on update: %s", inv.Date)
	}
}

func TestUpdateValidationMessage(t *testing.T) {
	_, a := setupActionsTest(t)

	res := a.Update(context.Background(), "inv-1", Form{
		"customerId": "c1",
		"amount":     "-3",
		"status":     "paid",
	})

	if res.State == nil {
		t.Fatal("expected failure state")
	}
	// wording kept as-is for compatibility with existing consumers
	if res.State.Message != "Missing fileds. Failed to create invoice" {
		t.Fatalf("unexpected message: %q", res.State.Message)
	}
	if res.State.Errors["amount"][0] != "Please enter the number greater than 0" {
		t.Fatalf("unexpected amount errors: %#v", res.State.Errors)
	}
}

func TestUpdatePersistenceFailure(t *testing.T) {
	db, a := setupActionsTest(t)
	if err := db.Exec("DROP TABLE invoices").Error; err != nil {
		t.Fatalf("drop: %v", err)
	}

	res := a.Update(context.Background(), "inv-1", Form{
		"customerId": "c1",
		"amount":     "10",
		"status":     "paid",
	})

	if res.State == nil || res.State.Message != "Database Error: Failed to Update Invoice" {
		t.Fatalf("unexpected result: %#v", res)
	}
	if res.Revalidate != "" || res.Redirect != "" {
		t.Fatalf("no invalidation or navigation on failure: %#v", res)
	}
}

func TestUpdateMissingID(t *testing.T) {
	_, a := setupActionsTest(t)

	res := a.Update(context.Background(), "missing", Form{
		"customerId": "c1",
		"amount":     "10",
		"status":     "paid",
	})

	if res.State == nil || res.State.Message != "Database Error: Failed to Update Invoice" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestDeleteReportsInPlace(t *testing.T) {
	db, a := setupActionsTest(t)
	seed := models.Invoice{ID: "inv-1", CustomerID: "c1", Amount: 1000, Status: "paid", Date: "2026-01-02"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := a.Delete(context.Background(), "inv-1")

	if res.State == nil || res.State.Message != "Deleted Invoice." {
		t.Fatalf("unexpected state: %#v", res.State)
	}
	if res.Revalidate != InvoicesPath {
		t.Fatalf("expected list invalidation, got %q", res.Revalidate)
	}
	if res.Redirect != "" {
		t.Fatal("delete must not navigate")
	}
	if countInvoices(t, db) != 0 {
		t.Fatal("row still present")
	}
}

func TestDeleteFailureMessage(t *testing.T) {
	_, a := setupActionsTest(t)

	res := a.Delete(context.Background(), "missing")

	// message kept verbatim, typo included, for compatibility
	if res.State == nil || res.State.Message != "Databse Error: Failed to Delete Invoice" {
		t.Fatalf("unexpected state: %#v", res.State)
	}
	if res.Revalidate != "" {
		t.Fatal("no invalidation on failure")
	}
}

func TestToCentsRounds(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{12.34, 1234},
		{50, 5000},
		{0.1, 10},
		{99.99, 9999},
	}
	for _, c := range cases {
		if got := toCents(c.in); got != c.want {
			t.Errorf("toCents(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
