package storage

import (
	"strconv"
	"time"
)

// Config holds database configuration settings
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
	CacheSizeKB     int
}

// DefaultConfig returns settings sized for a handful of small rows that
// are read once per session and written on every committed search.
func DefaultConfig() *Config {
	return &Config{
		MaxOpenConns:    2,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     2 * time.Second,
		CacheSizeKB:     2000,
	}
}

// pragmas returns SQLite PRAGMA statements based on configuration
func (c *Config) pragmas() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = memory",
		"PRAGMA busy_timeout = " + strconv.FormatInt(c.BusyTimeout.Milliseconds(), 10),
		"PRAGMA cache_size = -" + strconv.Itoa(c.CacheSizeKB),
	}
}
