package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("SQLite In Memory", func(t *testing.T) {
		cfg := Config{
			Driver: "sqlite",
			Path:   "file::memory:?cache=shared",
		}

		db, err := Connect(cfg)
		require.NoError(t, err)
		require.NotNil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "matcher",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestEnsurePartialUnique(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Path: "file:partialidx?mode=memory&cache=shared"})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE widgets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		namespace VARCHAR(128) NOT NULL,
		token VARCHAR(255) NOT NULL,
		deleted_at DATETIME
	)`).Error
	require.NoError(t, err)

	err = EnsurePartialUnique(db, "widgets", "idx_widgets_ns_token_live", "namespace", "token")
	require.NoError(t, err)

	// Creating the index twice must be a no-op.
	err = EnsurePartialUnique(db, "widgets", "idx_widgets_ns_token_live", "namespace", "token")
	require.NoError(t, err)

	// Live duplicates collide.
	require.NoError(t, db.Exec(`INSERT INTO widgets (namespace, token) VALUES ('ns1', 't1')`).Error)
	err = db.Exec(`INSERT INTO widgets (namespace, token) VALUES ('ns1', 't1')`).Error
	require.Error(t, err)

	// Same token in another namespace is fine.
	require.NoError(t, db.Exec(`INSERT INTO widgets (namespace, token) VALUES ('ns2', 't1')`).Error)

	// Tombstoned rows do not block re-creation.
	require.NoError(t, db.Exec(`UPDATE widgets SET deleted_at = ? WHERE namespace = 'ns1' AND token = 't1'`, time.Now()).Error)
	require.NoError(t, db.Exec(`INSERT INTO widgets (namespace, token) VALUES ('ns1', 't1')`).Error)
}
