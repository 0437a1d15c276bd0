package infra

import (
	"fmt"

	"github.com/Sergiom84/Lucy3000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique index, sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Translate driver errors so unique violations surface as
		// gorm.ErrDuplicatedKey for errors.Is checks in the services.
		TranslateError: true,
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

// RunMigrations brings the schema up to date. Idempotent; NewDatabase runs it
// once on connect.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.ClientHistory{},
		&model.Service{},
		&model.Product{},
		&model.StockMovement{},
		&model.Appointment{},
		&model.Sale{},
		&model.SaleItem{},
		&model.CashSession{},
		&model.CashMovement{},
		&model.Notification{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one OPEN cash session, enforced at the database level.
		// Concurrent opens race on this index, not on application checks.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_cash_sessions_open') THEN
		    CREATE UNIQUE INDEX uniq_cash_sessions_open
		        ON cash_sessions (status)
		        WHERE status = 'OPEN';
		  END IF;
		END $$`,
		// Sale number allocation: nextval is atomic across concurrent
		// transactions, so numbers are unique without row locks.
		`CREATE SEQUENCE IF NOT EXISTS sales_number_seq START 1`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
