package models

// Customer backs the customer select input on the invoice forms.
// Customers are read-only here; they are managed elsewhere and only
// referenced by invoices.
type Customer struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`
}
