package store

import (
	"fmt"
	"strings"

	"github.com/hance08/hb/internal/constants"
)

// RegisterPrimaryDevice records deviceID as the active primary device of a
// fresh database. It refuses to add a second primary.
func (s *Store) RegisterPrimaryDevice(deviceID, name string) (int64, error) {
	existing, err := s.ListPrimaryDevices()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, fmt.Errorf("database already has a primary device (%s)", existing[0].DeviceID)
	}

	result, err := s.db.Exec(
		"INSERT INTO DeviceInfo (deviceId, deviceName, isActive, isPrimary) VALUES (?, ?, ?, ?)",
		strings.ToUpper(deviceID), name, constants.FlagYes, constants.FlagYes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert device: %w", err)
	}
	return result.LastInsertId()
}

// SetSettingsCurrency writes the home currency, replacing any previous value.
func (s *Store) SetSettingsCurrency(code string) error {
	return s.ExecTx(func(repo Repository) error {
		tx := repo.(*Store)
		if _, err := tx.db.Exec("DELETE FROM Settings"); err != nil {
			return fmt.Errorf("failed to clear settings: %w", err)
		}
		if _, err := tx.db.Exec("INSERT INTO Settings (currency) VALUES (?)", strings.ToUpper(code)); err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}
		return nil
	})
}
