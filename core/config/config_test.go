package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "item-matcher.db", cfg.Database.Path)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Empty(t, cfg.Server.MasterKeys())
	})

	t.Run("Environment Override", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SERVER_MASTER_API_KEYS", "master1,master2")
		t.Setenv("DATABASE_DRIVER", "mysql")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, []string{"master1", "master2"}, cfg.Server.MasterKeys())
		assert.Equal(t, "mysql", cfg.Database.Driver)
	})
}
