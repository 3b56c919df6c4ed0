package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/hb/internal/apperr"
)

func (s *Store) ListPrimaryDevices() ([]*Device, error) {
	rows, err := s.db.Query(`
		SELECT key, deviceId, COALESCE(deviceName, ''), isActive, isPrimary
		FROM DeviceInfo
		WHERE isPrimary = 'Y' AND isActive = 'Y'
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		d := &Device{}
		if err := rows.Scan(&d.Key, &d.DeviceID, &d.Name, &d.IsActive, &d.IsPrimary); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (s *Store) GetDeviceByKey(key int64) (*Device, error) {
	d := &Device{}
	err := s.db.QueryRow(
		"SELECT key, deviceId, COALESCE(deviceName, ''), isActive, isPrimary FROM DeviceInfo WHERE key = ?", key,
	).Scan(&d.Key, &d.DeviceID, &d.Name, &d.IsActive, &d.IsPrimary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query device %d: %w", key, err)
	}
	return d, nil
}

// GetEntityDevice reads the identity columns of one reference row.
func (s *Store) GetEntityDevice(table EntityTable, key int64) (*EntityDevice, error) {
	switch table {
	case TableAccount, TableCategory, TableSubCategory, TablePayee:
	default:
		return nil, fmt.Errorf("unsupported entity table %q", table)
	}

	ed := &EntityDevice{}
	query := fmt.Sprintf("SELECT key, deviceIdKey, deviceKey FROM %s WHERE key = ?", table)
	err := s.db.QueryRow(query, key).Scan(&ed.EntityKey, &ed.DeviceIDKey, &ed.DeviceKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(string(table), key)
		}
		return nil, fmt.Errorf("failed to query %s %d: %w", table, key, err)
	}
	return ed, nil
}

// NextDeviceKey returns MAX(deviceKey)+1 for a transaction table.
func (s *Store) NextDeviceKey(table string) (int64, error) {
	switch table {
	case "Expense", "Income", "Transfer":
	default:
		return 0, fmt.Errorf("unsupported transaction table %q", table)
	}

	var next int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(deviceKey), 0) + 1 FROM %s", table)
	if err := s.db.QueryRow(query).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next device key for %s: %w", table, err)
	}
	return next, nil
}
