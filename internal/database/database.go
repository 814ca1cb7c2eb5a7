package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/sbreader/internal/entities"
)

// Options tunes how a store handle is opened.
type Options struct {
	LogLevel logger.LogLevel
	// LogWriter receives gorm's log lines. Nil writes to stdout.
	LogWriter logger.Writer
}

// DefaultOptions keeps gorm quiet except for warnings and slow queries.
func DefaultOptions() Options {
	return Options{LogLevel: logger.Warn}
}

// ParseLogLevel maps a config string onto a gorm log level.
// Unknown values fall back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Database is one logical store backed by a single SQLite file.
// It is opened once by the composition root and shared by the
// repositories built on top of it.
type Database struct {
	DB   *gorm.DB
	name string
	path string
}

// NewCorpusDatabase opens the corpus store and creates the
// Cantos/Chapters/Verses tables if they are missing.
func NewCorpusDatabase(dbPath string, opts Options) (*Database, error) {
	return open("corpus", dbPath, opts,
		&entities.Canto{},
		&entities.Chapter{},
		&entities.Verse{},
	)
}

// NewBookmarksDatabase opens the user data store: the Bookmarks table and
// the key-value settings area.
func NewBookmarksDatabase(dbPath string, opts Options) (*Database, error) {
	return open("bookmarks", dbPath, opts,
		&entities.Bookmark{},
		&entities.Setting{},
	)
}

func open(name, dbPath string, opts Options, models ...any) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: newLogger(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access %s connection pool: %w", name, err)
	}
	// A single connection makes every operation on this handle run in
	// the order it was issued, and keeps :memory: stores coherent.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(models...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSchema, name, err)
	}

	log.Printf("Database %s initialized successfully at %s", name, dbPath)

	return &Database{DB: db, name: name, path: dbPath}, nil
}

// newLogger keeps record-not-found out of the log: existence checks miss
// on every imported row and a miss is a normal result.
func newLogger(opts Options) logger.Interface {
	writer := opts.LogWriter
	if writer == nil {
		writer = log.New(os.Stdout, "\r\n", log.LstdFlags)
	}
	return logger.New(writer, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  opts.LogLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Name identifies the store in logs and health checks.
func (d *Database) Name() string {
	return d.name
}

// Path returns the file the store was opened from.
func (d *Database) Path() string {
	return d.path
}

// Ping checks that the underlying connection is still usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
