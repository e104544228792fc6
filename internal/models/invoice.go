package models

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice represents a customer invoice.
// The ID is assigned by the application (a UUID generated at creation time),
// never by the database. Amount is stored in minor units (cents). Date is the
// creation date in YYYY-MM-DD form and is never touched by updates.
type Invoice struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	CustomerID string `gorm:"size:36;index;not null" json:"customer_id"`
	Amount     int64  `gorm:"not null" json:"amount"`
	Status     string `gorm:"size:20;not null" json:"status"` // "pending" or "paid"
	Date       string `gorm:"size:10;not null" json:"date"`
}

// IsPaid returns true if the invoice has been paid.
func (i *Invoice) IsPaid() bool {
	return i.Status == string(InvoiceStatusPaid)
}

// AmountDecimal returns the amount in major currency units.
func (i *Invoice) AmountDecimal() float64 {
	return float64(i.Amount) / 100
}
