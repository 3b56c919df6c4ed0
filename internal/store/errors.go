package store

import (
	"errors"

	sqlite "github.com/mattn/go-sqlite3"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInTransaction  = errors.New("store is already in a transaction")
	ErrDatabaseAbsent = errors.New("database file does not exist")
)

// isLockError reports whether err comes from another connection holding the
// database file, which is worth retrying.
func isLockError(err error) bool {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite.ErrBusy || sqliteErr.Code == sqlite.ErrLocked
	}
	return false
}
