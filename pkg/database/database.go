package database

import (
	"fmt"
	"log"

	"gateway-service/internal/model"
	"gateway-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// InitDB initializes the database connection with configuration
func InitDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	var err error

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// Open connection
	DB, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return nil, err
	}

	// Get generic database object SQL
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Failed to get database object: %v", err)
		return nil, err
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	fmt.Println("Database connected successfully")

	return DB, nil
}

// MigrateModels runs migrations for the provided models
func MigrateModels(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// SeedTestMerchant inserts the well-known test merchant if it is not
// already present. Checkout and dashboard clients discover it through
// the /api/v1/testmerchant endpoint.
func SeedTestMerchant() error {
	if DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	var count int64
	if err := DB.Model(&model.Merchant{}).Where("email = ?", model.TestMerchantEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for test merchant: %w", err)
	}
	if count > 0 {
		return nil
	}

	merchant := model.TestMerchant()
	if err := DB.Create(&merchant).Error; err != nil {
		return fmt.Errorf("failed to seed test merchant: %w", err)
	}

	return nil
}

// Ping verifies the underlying connection is alive. Used by the health endpoint.
func Ping() error {
	if DB == nil {
		return fmt.Errorf("database is not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
