// Command seedtenant bootstraps a tenant with an admin user and a small demo
// catalog: a prepared product with a two-ingredient recipe, a direct-sale
// drink, the packaging SKU and opening stock for everything.
//
// Usage:
//
//	seedtenant -name "Pastelaria do Zé" -slug ze -email admin@ze.com -password segredo123
package main

import (
	"flag"
	"os"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/config"
	"github.com/marcusroqy/foodsystempdv/internal/infra"
	"github.com/marcusroqy/foodsystempdv/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	name := flag.String("name", "", "tenant display name")
	slug := flag.String("slug", "", "tenant slug")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *name == "" || *slug == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		tenant := model.Tenant{Name: *name, Slug: *slug, Active: true}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		admin := model.User{
			TenantID:     tenant.ID,
			Name:         "Administrador",
			Email:        *email,
			PasswordHash: string(hash),
			Role:         "admin",
			Active:       true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		lanches := model.Category{TenantID: tenant.ID, Name: "Lanches"}
		bebidas := model.Category{TenantID: tenant.ID, Name: "Bebidas"}
		if err := tx.Create(&lanches).Error; err != nil {
			return err
		}
		if err := tx.Create(&bebidas).Error; err != nil {
			return err
		}

		price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

		// Pastel is prepared: sold units consume ingredients, never the
		// product itself.
		pastel := model.Product{
			TenantID: tenant.ID, Name: "Pastel de Carne", Price: price("12.50"),
			CategoryID: &lanches.ID, IsStockControlled: false, IsForSale: true,
			MinQuantity: decimal.NewFromInt(10),
		}
		ketchup := model.Product{
			TenantID: tenant.ID, Name: "Sachê de Ketchup", Price: decimal.Zero,
			IsStockControlled: true, IsForSale: false,
			MinQuantity: decimal.NewFromInt(50),
		}
		maionese := model.Product{
			TenantID: tenant.ID, Name: "Sachê de Maionese", Price: decimal.Zero,
			IsStockControlled: true, IsForSale: false,
			MinQuantity: decimal.NewFromInt(50),
		}
		refrigerante := model.Product{
			TenantID: tenant.ID, Name: "Refrigerante Lata", Price: price("7.00"),
			CategoryID: &bebidas.ID, IsStockControlled: true, IsForSale: true,
			MinQuantity: decimal.NewFromInt(24),
		}
		sacola := model.Product{
			TenantID: tenant.ID, Name: "Sacola Plástica", Price: decimal.Zero,
			IsStockControlled: true, IsForSale: false,
			MinQuantity: decimal.NewFromInt(100),
		}
		for _, p := range []*model.Product{&pastel, &ketchup, &maionese, &refrigerante, &sacola} {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		links := []model.RecipeLink{
			{TenantID: tenant.ID, ProductID: pastel.ID, IngredientID: ketchup.ID, Quantity: decimal.NewFromInt(1)},
			{TenantID: tenant.ID, ProductID: pastel.ID, IngredientID: maionese.ID, Quantity: decimal.NewFromInt(1)},
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}

		opening := []struct {
			p   *model.Product
			qty int64
		}{
			{&ketchup, 200}, {&maionese, 200}, {&refrigerante, 48}, {&sacola, 500},
		}
		for _, o := range opening {
			entry := model.LedgerEntry{
				TenantID:  tenant.ID,
				ProductID: o.p.ID,
				Type:      model.DirectionIn,
				Quantity:  decimal.NewFromInt(o.qty),
				Reason:    "Estoque inicial",
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		log.Info().
			Str("tenant_id", tenant.ID.String()).
			Str("admin", admin.Email).
			Msg("tenant seeded")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}
