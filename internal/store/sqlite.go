package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hance08/hb/internal/apperr"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Options controls how the store copes with the companion application
// holding the database file.
type Options struct {
	LockRetries int
	LockBackoff time.Duration
	BusyTimeout time.Duration
	Logger      zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		LockRetries: 5,
		LockBackoff: 100 * time.Millisecond,
		BusyTimeout: time.Second,
		Logger:      zerolog.Nop(),
	}
}

type Store struct {
	db   DBTX
	opts Options
}

// NewStore opens an existing companion database. It never creates or
// migrates the file; use Bootstrap for that.
func NewStore(dbPath string, opts Options) (*Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &apperr.StorageError{Op: "open", Err: fmt.Errorf("%s: %w", dbPath, ErrDatabaseAbsent)}
		}
		return nil, &apperr.StorageError{Op: "open", Err: err}
	}

	db, err := openDB(dbPath, opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, opts: opts}, nil
}

// Bootstrap creates an empty database with the companion schema at dbPath.
// It is used by `hb init` and by tests.
func Bootstrap(dbPath string, opts Options) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := openDB(dbPath, opts)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database : %w", err)
	}

	return &Store{db: db, opts: opts}, nil
}

func openDB(dbPath string, opts Options) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_txlock=immediate", dbPath, opts.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &apperr.StorageError{Op: "open", Err: err}
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, &apperr.StorageError{Op: "open", Err: fmt.Errorf("can not connect with database: %w", err)}
	}
	return db, nil
}

// ExecTx runs fn inside one write transaction. When the file is locked by
// another process the whole unit is retried with linear backoff; any other
// failure rolls back and is returned as is.
func (s *Store) ExecTx(fn func(Repository) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return ErrInTransaction
	}

	var err error
	for attempt := 0; attempt <= s.opts.LockRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * s.opts.LockBackoff
			s.opts.Logger.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("database locked, retrying")
			time.Sleep(wait)
		}

		err = s.execTxOnce(db, fn)
		if err == nil || !isLockError(err) {
			break
		}
	}

	switch {
	case err == nil:
		return nil
	case isLockError(err):
		return &apperr.StorageError{
			Op:  "transaction",
			Err: fmt.Errorf("database still locked after %d attempts: %w", s.opts.LockRetries+1, err),
		}
	case apperr.Kind(err) == "":
		return &apperr.StorageError{Op: "transaction", Err: err}
	}
	return err
}

func (s *Store) execTxOnce(db *sql.DB, fn func(Repository) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	txStore := &Store{db: tx, opts: s.opts}

	err = fn(txStore)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	if db, ok := s.db.(*sql.DB); ok {
		return db.Close()
	}
	return nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver : %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver : %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs",
		sourceDriver,
		"sqlite3",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance : %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up) : %w", err)
	}

	return nil
}

func checkAffected(result sql.Result, entity string, key int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound(entity, key)
	}
	return nil
}
