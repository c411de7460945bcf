package database

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/institucion-api/config"
	"github.com/sahilchouksey/institucion-api/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// StartGORM opens the configured database: PostgreSQL by default, SQLite
// when DB_DRIVER=sqlite.
func StartGORM(env *config.EnvironmentVariable, log *zap.Logger) (*GORMStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if env.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}
	cfg := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch env.DB_DRIVER {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(sqliteDSN(env.SQLITE_PATH)), cfg)
	case "postgres", "":
		db, err = gorm.Open(postgres.Open(postgresDSN(env)), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DB_DRIVER)
	}
	if err != nil {
		log.Error("unable to open database", zap.String("driver", env.DB_DRIVER), zap.Error(err))
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if env.DB_DRIVER == "sqlite" {
		// SQLite serializes writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Info("connected to database", zap.String("driver", driverName(env.DB_DRIVER)))

	return &GORMStore{db: db, log: log}, nil
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB, log *zap.Logger) *GORMStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &GORMStore{db: db, log: log}
}

func postgresDSN(env *config.EnvironmentVariable) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", path)
}

func driverName(d string) string {
	if d == "" {
		return "postgres"
	}
	return d
}

// Models lists every table owned by the service, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Modalidad{},
		&model.Carrera{},
		&model.AuditLog{},
	}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	s.log.Info("running AutoMigrate")

	if err := s.db.AutoMigrate(Models()...); err != nil {
		s.log.Error("AutoMigrate failed", zap.Error(err))
		return err
	}

	s.log.Info("AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info("closing database connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the typed GORM handle
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
