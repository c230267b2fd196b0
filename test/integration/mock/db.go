package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

// Db wraps an in-memory SQLite database migrated with the ledger models.
type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb returns the shared test database, creating it on first use.
func NewDb() *Db {
	once.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbConn, err := gorm.Open(sqlite.Open("file:household_ledger_bdd?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Children first so ClearDB never trips a foreign key.
	models := []any{
		&model.TransactionCategoryModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.BudgetPeriodModel{},
		&model.AccountModel{},
		&model.CategoryRuleModel{},
		&model.CategoryModel{},
		&model.HouseholdMemberModel{},
		&model.HouseholdModel{},
	}

	for i := len(models) - 1; i >= 0; i-- {
		if err := dbConn.AutoMigrate(models[i]); err != nil {
			panic(fmt.Sprintf("failed to migrate %T: %v", models[i], err))
		}
	}

	return &Db{DbConn: dbConn, models: models}
}

// ClearDB deletes every row, including soft-deleted ones.
func (d *Db) ClearDB() error {
	for _, m := range d.models {
		if err := d.DbConn.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", m, err)
		}
	}
	return nil
}
