package database

import (
	"cafeapi/logger"
	"cafeapi/model"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Options controls how Open connects.
type Options struct {
	// DSN is a SQLite file path (or ":memory:") or a Postgres DSN/URL.
	DSN string
	// SQLLog turns on gorm statement logging.
	SQLLog bool
	Logger logger.Logger
}

// Store owns the cafes table.
type Store struct {
	db  *gorm.DB
	log logger.Logger
}

// IsPostgres reports whether dsn addresses a Postgres server rather than a
// SQLite file.
func IsPostgres(dsn string) bool {
	d := strings.TrimSpace(dsn)
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		strings.HasPrefix(d, "host=")
}

// Open connects to the configured database, checks it is reachable and
// creates the cafes table if it is missing.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("open database: empty dsn")
	}

	level := gormlogger.Warn
	if opts.SQLLog {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgres(opts.DSN) {
		db, err = gorm.Open(postgres.Open(opts.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	} else {
		sqlDB, err := sql.Open("sqlite", sqliteDSN(opts.DSN))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if isMemory(opts.DSN) {
			// every pooled connection would otherwise get its own empty database
			sqlDB.SetMaxOpenConns(1)
		}
		db, err = gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: sqlDB}), gormCfg)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	}

	s := &Store{db: db, log: opts.Logger}
	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, err
	}
	if err := db.WithContext(ctx).AutoMigrate(&model.Cafe{}); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate cafes table: %w", err)
	}

	if s.log != nil {
		dialect := "sqlite"
		if IsPostgres(opts.DSN) {
			dialect = "postgres"
		}
		s.log.Info(ctx, "database ready", logger.String("dialect", dialect))
	}
	return s, nil
}

// Ping checks the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteDSN adds a busy timeout to file databases so concurrent writers wait
// for the lock instead of failing with SQLITE_BUSY.
func sqliteDSN(dsn string) string {
	if isMemory(dsn) || strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)"
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
