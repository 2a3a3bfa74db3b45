package infra

import (
	"fmt"

	"github.com/marcusroqy/foodsystempdv/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// and then applies the idempotent DDL that AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.RecipeLink{},
		&model.LedgerEntry{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle
// on its own. Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Ledger aggregation always filters tenant+product; the dashboard query
		// groups the whole tenant.
		`CREATE INDEX IF NOT EXISTS idx_inventory_tx_tenant_product
		     ON inventory_transactions (tenant_id, product_id)`,
		// Packaging lookup: non-sellable products by name, per tenant.
		`CREATE INDEX IF NOT EXISTS idx_products_tenant_not_for_sale
		     ON products (tenant_id) WHERE is_for_sale = false`,
		// Order board sorts newest first.
		`CREATE INDEX IF NOT EXISTS idx_orders_tenant_created
		     ON orders (tenant_id, created_at DESC)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
