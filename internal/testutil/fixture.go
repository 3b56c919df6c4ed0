// Package testutil builds throwaway companion databases for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/hb/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	BaseCurrency      = "AUD"
	PrimaryDeviceID   = "3F2C9A10-7B4E-4D21-9C55-8E1A2B3C4D5E"
	SecondaryDeviceID = "B7E14C02-1D2A-4F3B-8E6D-0A9B8C7D6E5F"
)

// Reference keys seeded by Seed.
const (
	AccountWallet = 1 // AUD, identity (primary, 7)
	AccountBank   = 2 // AUD, no identity
	AccountUS     = 3 // USD, identity (secondary, 3)
	AccountEU     = 4 // EUR
	AccountYen    = 5 // JPY

	CategoryFood      = 1
	CategoryTransport = 2

	SubCategoryGroceries  = 1
	SubCategoryRestaurant = 2
	SubCategoryFuel       = 3

	PayeeCornerStore = 1
)

const seedSQL = `
INSERT INTO DeviceInfo (key, deviceId, deviceName, isActive, isPrimary) VALUES
	(1, '` + PrimaryDeviceID + `', 'Desktop', 'Y', 'Y'),
	(2, '` + SecondaryDeviceID + `', 'Phone', 'Y', 'N');

INSERT INTO Settings (key, currency) VALUES (1, '` + BaseCurrency + `');

INSERT INTO Currency (key, code, name, exchangeRate) VALUES
	(1, 'AUD', 'Australian Dollar', 1),
	(2, 'USD', 'US Dollar', 1.35),
	(3, 'EUR', 'Euro', 1.62),
	(4, 'JPY', 'Japanese Yen', 0.0098);

INSERT INTO Account (key, name, accountType, balance, balanceDate, currency, seqNum, deviceIdKey, deviceKey) VALUES
	(1, 'Wallet', 1, 100, '2026-01-01', 'AUD', 1, 1, 7),
	(2, 'Bank', 1, 0, '2026-01-01', 'AUD', 2, NULL, NULL),
	(3, 'US Account', 1, 0, '2026-01-01', 'USD', 3, 2, 3),
	(4, 'EU Account', 1, 0, '2026-01-01', 'EUR', 4, NULL, NULL),
	(5, 'Yen Cash', 1, 0, '2026-01-01', 'JPY', 5, NULL, NULL);

INSERT INTO Category (key, name, seqNum, deviceIdKey, deviceKey) VALUES
	(1, 'Food (Basic)', 1, 1, 21),
	(2, 'Transport', 2, NULL, NULL);

INSERT INTO SubCategory (key, catKey, name, seqNum, deviceIdKey, deviceKey) VALUES
	(1, 1, 'Groceries', 1, 1, 5),
	(2, 1, 'Cheap restaurant', 2, NULL, NULL),
	(3, 2, 'Fuel', 1, 2, NULL);

INSERT INTO Payee (key, name, deviceIdKey, deviceKey) VALUES
	(1, 'Corner Store', 1, 9);
`

// Fixture is a migrated and seeded database in a temp dir. DB is a
// separate handle for direct assertions.
type Fixture struct {
	Path  string
	Store *store.Store
	DB    *sql.DB
}

// NewFixture creates an empty companion schema without reference rows.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "homebudget.db")

	opts := store.DefaultOptions()
	opts.LockBackoff = 5 * time.Millisecond

	s, err := store.Bootstrap(path, opts)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		s.Close()
	})

	return &Fixture{Path: path, Store: s, DB: db}
}

// NewSeededFixture creates the schema and loads the reference rows above.
func NewSeededFixture(t *testing.T) *Fixture {
	t.Helper()

	f := NewFixture(t)
	f.Exec(t, seedSQL)
	return f
}

func (f *Fixture) Exec(t *testing.T, query string, args ...any) {
	t.Helper()
	_, err := f.DB.Exec(query, args...)
	require.NoError(t, err)
}

// Count returns the number of rows in table.
func (f *Fixture) Count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// SyncPayloads returns every queued payload in insertion order.
func (f *Fixture) SyncPayloads(t *testing.T) []string {
	t.Helper()
	rows, err := f.DB.Query("SELECT payload FROM SyncUpdate ORDER BY key")
	require.NoError(t, err)
	defer rows.Close()

	var payloads []string
	for rows.Next() {
		var p string
		require.NoError(t, rows.Scan(&p))
		payloads = append(payloads, p)
	}
	require.NoError(t, rows.Err())
	return payloads
}
