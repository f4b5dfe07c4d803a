// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Seeds the file from a bundled template or creates it, using modernc.org/sqlite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/harperreed/minds/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

var (
	// ErrArityMismatch is returned when an insert tuple does not match the table columns.
	ErrArityMismatch = errors.New("bind value count does not match columns")
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
)

// DB wraps the SQLite database connection.
type DB struct {
	db     *sqlx.DB
	dbPath string
	log    *zap.SugaredLogger

	// absent lists the measurement tables missing from a read-only file.
	absent map[string]bool
}

type options struct {
	seedPath string
	log      *zap.SugaredLogger
}

// Option configures Open.
type Option func(*options)

// WithSeed copies the template database at path when the target file is missing.
func WithSeed(path string) Option {
	return func(o *options) { o.seedPath = path }
}

// WithLogger sets the log sink for storage failures.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string, opts ...Option) (*DB, error) {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		o.log.Errorw("create data directory failed", "dir", dir, "error", err)
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	seeded, err := ensureDatabaseFile(dbPath, o.seedPath)
	if err != nil {
		o.log.Errorw("create database failed", "path", dbPath, "error", err)
		return nil, fmt.Errorf("create database: %w", err)
	}
	if seeded {
		o.log.Infow("database seeded from template", "path", dbPath, "seed", o.seedPath)
	}

	db, err := sqlx.Open(driverName, dbPath)
	if err != nil {
		o.log.Errorw("open database failed", "path", dbPath, "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := &DB{db: db, dbPath: dbPath, log: o.log}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		o.log.Errorw("configure pragmas failed", "error", err)
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		o.log.Errorw("initialize schema failed", "error", err)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	o.log.Infow("database ready", "path", dbPath)
	return d, nil
}

// OpenReadOnly opens an existing database without changing it: no seed copy,
// chmod, pragmas or schema. Measurement tables the file lacks read as empty.
func OpenReadOnly(dbPath string, opts ...Option) (*DB, error) {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("open database: %s is not a file", dbPath)
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: abs, RawQuery: "mode=ro"}).String()
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		o.log.Errorw("open database failed", "path", dbPath, "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &DB{db: db, dbPath: dbPath, log: o.log, absent: make(map[string]bool)}
	tables, err := d.Tables(context.Background())
	if err != nil {
		_ = db.Close()
		o.log.Errorw("read schema failed", "path", dbPath, "error", err)
		return nil, fmt.Errorf("read schema: %w", err)
	}
	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}
	for _, c := range models.AllCategories {
		if table := models.MustSpec(c).Table; !present[table] {
			d.absent[table] = true
		}
	}

	o.log.Infow("database opened read-only", "path", dbPath, "missing_tables", len(d.absent))
	return d, nil
}

// NewWithDB wraps an already open connection. The schema is not touched.
func NewWithDB(db *sql.DB, log *zap.SugaredLogger) *DB {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DB{db: sqlx.NewDb(db, driverName), log: log}
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single local writer.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// ensureDatabaseFile makes sure dbPath exists, copying seedPath when it is
// available. It reports whether the seed was copied.
func ensureDatabaseFile(dbPath, seedPath string) (bool, error) {
	if _, err := os.Stat(dbPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if seedPath != "" && !samePath(seedPath, dbPath) {
		if info, err := os.Stat(seedPath); err == nil && info.Mode().IsRegular() {
			if err := copyFile(seedPath, dbPath); err != nil {
				return false, fmt.Errorf("copy template %s: %w", seedPath, err)
			}
			return true, nil
		}
	}

	f, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return false, err
	}
	return false, f.Close()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
