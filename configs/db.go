package configs

import (
	"fmt"

	"restx/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{LogLevel: level, IgnoreRecordNotFoundError: true}),
	})
	if err != nil {
		return fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	db = database
	return nil
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Owner{}, &entity.Staff{}, &entity.Account{}, &entity.Customer{},
		&entity.TableStatus{}, &entity.Table{},
		&entity.Category{}, &entity.Dish{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderDetail{},
		&entity.PaymentMethod{}, &entity.Payment{},
		&entity.Supplier{}, &entity.Ingredient{}, &entity.IngredientImport{},
	)
}
