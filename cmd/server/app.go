package main

import (
	"net/http"
	"time"

	"github.com/finbase/invoices/internal/actions"
	"github.com/finbase/invoices/internal/cache"
	"github.com/finbase/invoices/internal/config"
	"github.com/finbase/invoices/internal/handlers"
	"github.com/finbase/invoices/internal/store"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp wires the store, pipelines and page cache into the route table.
func NewApp(db *gorm.DB, cfg *config.Config) *App {
	invoiceStore := store.NewInvoiceStore(db)
	invoiceActions := actions.NewInvoiceActions(invoiceStore)
	pages := cache.NewPages[handlers.ListPage](time.Duration(cfg.App.CacheTTL) * time.Second)
	ih := handlers.NewInvoiceHandler(invoiceStore, invoiceActions, pages)

	app := &App{mux: http.NewServeMux()}

	app.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, actions.InvoicesPath, http.StatusFound)
	})

	app.mux.HandleFunc("GET /dashboard/invoices", ih.List)
	app.mux.HandleFunc("GET /dashboard/invoices/create", ih.New)
	app.mux.HandleFunc("POST /dashboard/invoices", ih.Create)
	app.mux.HandleFunc("GET /dashboard/invoices/{id}/edit", ih.Edit)
	app.mux.HandleFunc("POST /dashboard/invoices/{id}", ih.Update)
	app.mux.HandleFunc("POST /dashboard/invoices/{id}/delete", ih.Delete)

	app.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
