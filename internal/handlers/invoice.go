package handlers

import (
	"net/http"
	"strconv"

	"github.com/finbase/invoices/internal/actions"
	"github.com/finbase/invoices/internal/cache"
	"github.com/finbase/invoices/internal/httpx"
	"github.com/finbase/invoices/internal/models"
	"github.com/finbase/invoices/internal/store"
	"github.com/finbase/invoices/internal/validation"
	"github.com/finbase/invoices/internal/view"
)

// ListPage is the computed payload of the invoice list view. It is what the
// page cache stores, keyed by request URI.
type ListPage struct {
	Invoices []models.Invoice `json:"items"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	Status   string           `json:"-"`
}

// InvoiceHandler serves the invoice dashboard pages and runs the mutation
// pipelines, applying the side effects they request: invalidating the cached
// list page and redirecting the client.
type InvoiceHandler struct {
	store   *store.InvoiceStore
	actions *actions.InvoiceActions
	pages   *cache.Pages[ListPage]
}

func NewInvoiceHandler(s *store.InvoiceStore, a *actions.InvoiceActions, pages *cache.Pages[ListPage]) *InvoiceHandler {
	return &InvoiceHandler{store: s, actions: a, pages: pages}
}

// invoiceForm extracts the raw submission values the pipelines validate.
func invoiceForm(r *http.Request) actions.Form {
	return actions.Form{
		"customerId": r.FormValue("customerId"),
		"amount":     r.FormValue("amount"),
		"status":     r.FormValue("status"),
	}
}

// stateStatus picks the HTTP status for a failure state: field errors mean a
// bad submission, a bare message means the write itself failed.
func stateStatus(state *actions.State) int {
	if len(state.Errors) > 0 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *InvoiceHandler) loadPage(r *http.Request) (ListPage, error) {
	q := r.URL.Query()
	limit := 20
	offset := 0
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	status := q.Get("status")
	if status != string(models.InvoiceStatusPending) && status != string(models.InvoiceStatusPaid) {
		status = ""
	}
	invs, total, err := h.store.List(r.Context(), status, limit, offset)
	if err != nil {
		return ListPage{}, err
	}
	return ListPage{Invoices: invs, Total: total, Limit: limit, Offset: offset, Status: status}, nil
}

// List: GET /dashboard/invoices – HTML or JSON, served from the page cache
// when fresh.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()
	page, ok := h.pages.Get(key)
	if !ok {
		var err error
		page, err = h.loadPage(r)
		if err != nil {
			if httpx.WantsJSON(r) {
				httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed_to_list_invoices"})
				return
			}
			http.Error(w, "Failed to load invoices", http.StatusInternalServerError)
			return
		}
		h.pages.Put(key, page)
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, page)
		return
	}
	_ = view.Render(w, r, "invoices/index.html", map[string]any{
		"Invoices": page.Invoices,
		"Total":    page.Total,
		"Status":   page.Status,
	})
}

// New: GET /dashboard/invoices/create – the create form.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "invoices/new.html", map[string]any{
		"Customers": customers,
		"Form":      actions.Form{},
		"Errors":    validation.Violations{},
	})
}

// Create: POST /dashboard/invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := invoiceForm(r)
	res := h.actions.Create(r.Context(), form)
	if res.Revalidate != "" {
		h.pages.Invalidate(res.Revalidate)
	}
	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, stateStatus(res.State), res.State)
		return
	}
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "invoices/new.html", map[string]any{
		"Customers": customers,
		"Form":      form,
		"Errors":    res.State.Errors,
		"Message":   res.State.Message,
	})
}

// Edit: GET /dashboard/invoices/{id}/edit – the edit form.
func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	inv, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "invoices/edit.html", map[string]any{
		"ID":        inv.ID,
		"Customers": customers,
		"Form": actions.Form{
			"customerId": inv.CustomerID,
			"amount":     strconv.FormatFloat(inv.AmountDecimal(), 'f', 2, 64),
			"status":     inv.Status,
		},
		"Errors": validation.Violations{},
	})
}

// Update: POST /dashboard/invoices/{id}.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form := invoiceForm(r)
	res := h.actions.Update(r.Context(), id, form)
	if res.Revalidate != "" {
		h.pages.Invalidate(res.Revalidate)
	}
	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, stateStatus(res.State), res.State)
		return
	}
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "invoices/edit.html", map[string]any{
		"ID":        id,
		"Customers": customers,
		"Form":      form,
		"Errors":    res.State.Errors,
		"Message":   res.State.Message,
	})
}

// Delete: POST /dashboard/invoices/{id}/delete. Deleting never navigates:
// the client stays on the list page and gets a status message in place.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.actions.Delete(r.Context(), r.PathValue("id"))
	if res.Revalidate != "" {
		h.pages.Invalidate(res.Revalidate)
	}
	if httpx.WantsJSON(r) {
		status := http.StatusOK
		if res.Revalidate == "" {
			status = stateStatus(res.State)
		}
		httpx.JSON(w, status, res.State)
		return
	}
	page, err := h.loadPage(r)
	if err != nil {
		http.Error(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "invoices/index.html", map[string]any{
		"Invoices": page.Invoices,
		"Total":    page.Total,
		"Status":   page.Status,
		"Message":  res.State.Message,
	})
}
