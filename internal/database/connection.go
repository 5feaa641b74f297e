// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lotchain/supplytrace-backend/internal/config"
	"github.com/lotchain/supplytrace-backend/internal/models"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Participant{},
		&models.Lot{},
		&models.LotBalance{},
		&models.Transfer{},
		&models.LedgerEvent{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_address ON users(address)",

		// Participant indexes
		"CREATE INDEX IF NOT EXISTS idx_participants_address ON participants(address)",
		"CREATE INDEX IF NOT EXISTS idx_participants_role_status ON participants(role, status)",

		// Lot indexes
		"CREATE INDEX IF NOT EXISTS idx_lots_creator ON lots(creator_address)",
		"CREATE INDEX IF NOT EXISTS idx_lot_balances_holder ON lot_balances(holder)",
		"CREATE INDEX IF NOT EXISTS idx_lot_balances_lot_holder ON lot_balances(lot_id, holder)",

		// Transfer indexes
		"CREATE INDEX IF NOT EXISTS idx_transfers_from ON transfers(from_address)",
		"CREATE INDEX IF NOT EXISTS idx_transfers_to ON transfers(to_address)",
		"CREATE INDEX IF NOT EXISTS idx_transfers_lot_status ON transfers(lot_id, status)",

		// Event and audit indexes
		"CREATE INDEX IF NOT EXISTS idx_ledger_events_type_created ON ledger_events(type, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_ledger_events_actor ON ledger_events(actor)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the administrator account on first startup.
// The administrator identity is fixed from then on.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding initial data...")

	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		address, err := utils.GenerateLedgerAddress()
		if err != nil {
			return fmt.Errorf("failed to generate administrator address: %w", err)
		}

		admin := &models.User{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Address:  address,
			UserType: models.UserTypeAdmin,
		}

		if err := admin.SetPassword(cfg.Admin.Password); err != nil {
			return fmt.Errorf("failed to set administrator password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create administrator account: %w", err)
		}

		log.Printf("Administrator account created with address %s", admin.Address)
	}

	log.Println("Initial data seeding completed")
	return nil
}
