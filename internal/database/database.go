package database

import (
	"log"
	"regexp"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"thenest/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	return ConnectWithConfig(dsn, &gorm.Config{})
}

func ConnectWithConfig(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&domain.AdminSettings{},
		&domain.Session{},
		&domain.Guest{},
		&domain.Product{},
		&domain.Consumption{},
		&domain.HardwareItem{},
		&domain.HardwareReservation{},
		&domain.Tip{},
		&domain.Settlement{},
		&domain.SeatReservation{},
		&domain.MealTemplate{},
		&domain.MenuItem{},
		&domain.Game{},
		&domain.GameVote{},
		&domain.User{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

var memoryName = regexp.MustCompile(`[^A-Za-z0-9_]`)

// OpenMemory opens a private in-memory SQLite database with the schema applied.
// A single connection keeps the database alive for the lifetime of db.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := "file:" + memoryName.ReplaceAllString(name, "_") + "?mode=memory&cache=shared"
	db, err := ConnectWithConfig(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
