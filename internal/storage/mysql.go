package storage

import (
	"context"
	"database/sql"
	"errors"

	"journeyplanner/internal/utils"
)

const createClientStateTable = `CREATE TABLE IF NOT EXISTS client_state (
	state_key VARCHAR(191) NOT NULL PRIMARY KEY,
	state_value MEDIUMTEXT NOT NULL,
	updated_at DATETIME NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQL persists client state in the client_state table.
type MySQL struct {
	DB *sql.DB
}

// NewMySQL ensures the client_state table exists.
func NewMySQL(ctx context.Context, db *sql.DB) (*MySQL, error) {
	if !hasTable(ctx, db, "client_state") {
		if _, err := db.ExecContext(ctx, createClientStateTable); err != nil {
			return nil, err
		}
		utils.LogEvent(utils.RequestID(ctx), "storage", "create_table", "client_state")
	}
	return &MySQL{DB: db}, nil
}

func (m *MySQL) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := m.DB.QueryRowContext(ctx, `SELECT state_value FROM client_state WHERE state_key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (m *MySQL) SetItem(ctx context.Context, key, value string) error {
	_, err := m.DB.ExecContext(ctx, `
		INSERT INTO client_state (state_key, state_value, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE state_value = VALUES(state_value), updated_at = NOW()
	`, key, value)
	return err
}

func (m *MySQL) RemoveItem(ctx context.Context, key string) error {
	_, err := m.DB.ExecContext(ctx, `DELETE FROM client_state WHERE state_key = ?`, key)
	return err
}
