// Package actions implements the invoice mutation pipelines: validate the
// form, coerce values, persist, then instruct the caller to invalidate the
// cached list page and navigate. Framework side effects are never performed
// here; they are returned as instructions so the pipelines stay testable
// without an HTTP runtime.
package actions

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/finbase/invoices/internal/models"
	"github.com/finbase/invoices/internal/store"
	"github.com/finbase/invoices/internal/validation"
	"github.com/google/uuid"
)

// InvoicesPath is the dashboard list view backed by the page cache.
const InvoicesPath = "/dashboard/invoices"

// Form is a raw submission, field name to submitted value.
type Form map[string]string

// State is returned to the form for re-rendering after a failed mutation
// (and after delete, which reports in place instead of navigating).
type State struct {
	Errors  validation.Violations `json:"errors,omitempty"`
	Message string                `json:"message"`
}

// Result is the outcome of one pipeline run. Exactly one of State or
// Redirect is set: a pipeline either reports state back to the form or
// navigates away, never both. Revalidate names a cached path the caller
// must invalidate, and is only set after a confirmed write.
type Result struct {
	State      *State
	Revalidate string
	Redirect   string
}

// invoiceSchema is the shared shape for the create and update forms. Every
// field is checked so a submission with several bad fields reports all of
// them at once.
var invoiceSchema = validation.Schema{
	{Name: "customerId", Rules: []validation.Rule{
		validation.NonEmpty("Please select a customer"),
	}},
	{Name: "amount", Rules: []validation.Rule{
		validation.GreaterThan(0, "Please enter the number greater than 0"),
	}},
	{Name: "status", Rules: []validation.Rule{
		validation.OneOf("Please select an invoice status",
			string(models.InvoiceStatusPending), string(models.InvoiceStatusPaid)),
	}},
}

// invoiceFields holds the validated, coerced values shared by create and
// update.
type invoiceFields struct {
	CustomerID string
	Amount     float64
	Status     string
}

func parseInvoiceForm(form Form) (invoiceFields, validation.Violations) {
	if v := invoiceSchema.Validate(form); !v.Empty() {
		return invoiceFields{}, v
	}
	amount, _ := validation.ParseNumber(form["amount"])
	return invoiceFields{
		CustomerID: form["customerId"],
		Amount:     amount,
		Status:     form["status"],
	}, nil
}

// toCents converts a decimal amount to minor units.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type InvoiceActions struct {
	store *store.InvoiceStore
}

func NewInvoiceActions(s *store.InvoiceStore) *InvoiceActions {
	return &InvoiceActions{store: s}
}

// Create validates the submission, persists a new invoice dated today with
// a fresh id, and on success invalidates the list page and navigates to it.
func (a *InvoiceActions) Create(ctx context.Context, form Form) Result {
	fields, violations := parseInvoiceForm(form)
	if !violations.Empty() {
		log.Printf("invoice create rejected: %d invalid field(s)", len(violations))
		return Result{State: &State{
			Errors:  violations,
			Message: "Missing fields. Failed to create an invoice",
		}}
	}

	inv := models.Invoice{
		ID:         uuid.NewString(),
		CustomerID: fields.CustomerID,
		Amount:     toCents(fields.Amount),
		Status:     fields.Status,
		Date:       time.Now().Format("2006-01-02"),
	}
	if err := a.store.Insert(ctx, &inv); err != nil {
		log.Printf("invoice create failed: %v", err)
		return Result{State: &State{Message: "Database Error: Failed to Create Invoice"}}
	}

	return Result{Revalidate: InvoicesPath, Redirect: InvoicesPath}
}

// Update validates the submission with the same shape as Create and replaces
// the mutable columns of the row matching id; the creation date is left
// untouched. A missing id surfaces as a persistence failure.
func (a *InvoiceActions) Update(ctx context.Context, id string, form Form) Result {
	fields, violations := parseInvoiceForm(form)
	if !violations.Empty() {
		log.Printf("invoice update rejected: %d invalid field(s)", len(violations))
		return Result{State: &State{
			Errors:  violations,
			Message: "Missing fileds. Failed to create invoice",
		}}
	}

	if err := a.store.Update(ctx, id, fields.CustomerID, toCents(fields.Amount), fields.Status); err != nil {
		log.Printf("invoice update failed: id=%s err=%v", id, err)
		return Result{State: &State{Message: "Database Error: Failed to Update Invoice"}}
	}

	return Result{Revalidate: InvoicesPath, Redirect: InvoicesPath}
}

// Delete removes the row matching id. Unlike create and update it never
// navigates: it reports a status message for in-place feedback, and still
// invalidates the list page after a confirmed delete.
func (a *InvoiceActions) Delete(ctx context.Context, id string) Result {
	if err := a.store.Delete(ctx, id); err != nil {
		log.Printf("invoice delete failed: id=%s err=%v", id, err)
		return Result{State: &State{Message: "Databse Error: Failed to Delete Invoice"}}
	}
	return Result{
		State:      &State{Message: "Deleted Invoice."},
		Revalidate: InvoicesPath,
	}
}
