package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/softencymsc/webbill-api/internal/config"
	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Store entities
		&entity.Tenant{},
		&entity.Customer{},
		&entity.Product{},
		&entity.PromoCode{},

		// Settlement entities
		&entity.BillHeader{},
		&entity.BillLine{},
		&entity.BillTerm{},
		&entity.DraftBill{},
		&entity.SalesOrder{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the default tenant when one is configured via
// environment variables. The free-sale PIN is stored as a bcrypt hash.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	slug := viper.GetString("TENANT_SLUG")
	if slug == "" {
		log.Println("TENANT_SLUG not set, skipping tenant seed")
		return nil
	}

	var existing entity.Tenant
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		log.Printf("Tenant already exists: %s", slug)
		return nil
	}

	settings := entity.DefaultTenantSettings()
	settings.OwnerPhone = viper.GetString("TENANT_OWNER_PHONE")
	settings.WhatsAppNotifications = viper.GetBool("TENANT_WHATSAPP_NOTIFICATIONS")
	if prefix := viper.GetString("TENANT_SALE_PREFIX"); prefix != "" {
		settings.SalePrefix = prefix
	}
	if prefix := viper.GetString("TENANT_PURCHASE_PREFIX"); prefix != "" {
		settings.PurchasePrefix = prefix
	}

	if pin := viper.GetString("TENANT_FREE_SALE_PIN"); pin != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Warning: failed to hash free-sale PIN: %v", err)
		} else {
			settings.FreeSalePINHash = string(hash)
		}
	}

	name := viper.GetString("TENANT_NAME")
	if name == "" {
		name = slug
	}

	tenant := entity.Tenant{
		Name:     name,
		Slug:     slug,
		Settings: settings,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return fmt.Errorf("failed to seed tenant: %w", err)
	}

	log.Printf("Tenant created: %s", slug)
	return nil
}
