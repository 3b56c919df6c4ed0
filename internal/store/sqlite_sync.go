package store

import (
	"fmt"
)

func (s *Store) InsertSyncUpdate(u *SyncUpdate) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO SyncUpdate (updateType, uuid, payload) VALUES (?, ?, ?)",
		u.UpdateType, u.UUID, u.Payload,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sync update: %w", err)
	}

	key, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return key, nil
}

// ListSyncUpdates reads queue rows with key > afterKey in insertion order.
// The companion client owns the queue; this is for inspection only.
func (s *Store) ListSyncUpdates(afterKey int64, limit int) ([]*SyncUpdate, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT key, COALESCE(updateType, ''), COALESCE(uuid, ''), COALESCE(payload, '')
		FROM SyncUpdate
		WHERE key > ?
		ORDER BY key
		LIMIT ?
	`, afterKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync updates: %w", err)
	}
	defer rows.Close()

	var updates []*SyncUpdate
	for rows.Next() {
		u := &SyncUpdate{}
		if err := rows.Scan(&u.Key, &u.UpdateType, &u.UUID, &u.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan sync update: %w", err)
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}
