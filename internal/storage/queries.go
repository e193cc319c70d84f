package storage

// Database schema queries
const (
	queryCreateKVTable = `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	querySelectValue = `SELECT value FROM kv WHERE key = ?`

	queryUpsertValue = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	queryDeleteValue = `DELETE FROM kv WHERE key = ?`

	querySelectKeys = `SELECT key FROM kv ORDER BY key`
)
