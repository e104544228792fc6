// Package db handles schema migrations and seed data.
package db

import (
	"errors"

	"github.com/finbase/invoices/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date. When sql is true it runs the SQL
// migrations in migrations/ via golang-migrate against dbURL; otherwise it
// falls back to gorm AutoMigrate, which is enough for development.
func Migrate(db *gorm.DB, sql bool, dbURL string) error {
	if sql {
		return runSQLMigrations(dbURL)
	}
	return db.AutoMigrate(&models.Customer{}, &models.Invoice{})
}

func runSQLMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Seed inserts the demo customers the invoice form selects from. It is
// idempotent: existing ids are left alone.
func Seed(db *gorm.DB) error {
	customers := []models.Customer{
		{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
		{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com"},
		{ID: "3958dc9e-737f-4377-85e9-fec4b6a6442a", Name: "Hector Simpson", Email: "hector@simpson.com"},
		{ID: "50ca3e18-62cd-11ee-8c99-0242ac120002", Name: "Steven Tey", Email: "steven@tey.com"},
		{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com"},
		{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com"},
	}
	for _, c := range customers {
		var existing models.Customer
		err := db.Where("id = ?", c.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
