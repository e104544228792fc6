// Package store is the persistence adapter for invoices. Mutations are
// issued as single parameterized statements; reads back the dashboard pages.
package store

import (
	"context"
	"errors"

	"github.com/finbase/invoices/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an update or delete matched no row.
var ErrNotFound = errors.New("invoice not found")

type InvoiceStore struct {
	db *gorm.DB
}

func NewInvoiceStore(db *gorm.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

// Insert persists a new invoice row. All values are bound parameters.
func (s *InvoiceStore) Insert(ctx context.Context, inv *models.Invoice) error {
	return s.db.WithContext(ctx).Exec(
		"INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)",
		inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date,
	).Error
}

// Update replaces the mutable columns of the row matching id. The date
// column is left untouched. Returns ErrNotFound when no row matched.
func (s *InvoiceStore) Update(ctx context.Context, id, customerID string, amount int64, status string) error {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?",
		customerID, amount, status, id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row matching id. Returns ErrNotFound when no row
// matched.
func (s *InvoiceStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Exec("DELETE FROM invoices WHERE id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads one invoice for the edit form.
func (s *InvoiceStore) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns a page of invoices, newest first, optionally filtered by
// status.
func (s *InvoiceStore) List(ctx context.Context, status string, limit, offset int) ([]models.Invoice, int64, error) {
	dbq := s.db.WithContext(ctx).Model(&models.Invoice{})
	if status != "" {
		dbq = dbq.Where("status = ?", status)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var invs []models.Invoice
	if err := dbq.Order("date DESC, id").Limit(limit).Offset(offset).Find(&invs).Error; err != nil {
		return nil, 0, err
	}
	return invs, total, nil
}

// ListCustomers returns all customers for the form select, by name.
func (s *InvoiceStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
