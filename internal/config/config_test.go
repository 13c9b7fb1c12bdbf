package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatroom/chat-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"RDB_HOST", "RDB_PORT", "RDB_DB", "DOCDB_TYPE", "CACHE_TYPE"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Store.Host)
	assert.Equal(t, 28015, cfg.Store.Port)
	assert.Equal(t, "chat", cfg.Store.Database)
	assert.Equal(t, "mongodb", cfg.Store.Type)
	assert.Equal(t, "none", cfg.Cache.Type)
	assert.Equal(t, 5*time.Second, cfg.Store.ConnectTimeout)
	assert.Equal(t, config.DefaultSchema(), cfg.Store.Schema)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("RDB_HOST", "db.internal")
	t.Setenv("RDB_PORT", "29015")
	t.Setenv("RDB_DB", "chat_test")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Store.Host)
	assert.Equal(t, 29015, cfg.Store.Port)
	assert.Equal(t, "chat_test", cfg.Store.Database)
	assert.Equal(t, "db.internal:29015", cfg.Store.Address())
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoad_InvalidPortFallsBackToDefault(t *testing.T) {
	t.Setenv("RDB_PORT", "not-a-number")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 28015, cfg.Store.Port)
}

func TestLoad_NegativePort(t *testing.T) {
	t.Setenv("RDB_PORT", "-1")

	cfg, err := config.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSchema_Tables(t *testing.T) {
	schema := config.DefaultSchema()

	tables := schema.Tables()

	assert.Len(t, tables, 3)
	assert.ElementsMatch(t, []config.TableSchema{
		{Name: "messages", PrimaryKey: "id"},
		{Name: "cache", PrimaryKey: "cid"},
		{Name: "users", PrimaryKey: "id"},
	}, tables)
}

func TestSchema_PrimaryKey(t *testing.T) {
	schema := config.DefaultSchema()

	assert.Equal(t, "cid", schema.PrimaryKey("cache"))
	assert.Equal(t, "id", schema.PrimaryKey("users"))
	assert.Equal(t, "id", schema.PrimaryKey("unknown"))
}

func TestStoreConfig_IsolatedCopies(t *testing.T) {
	a := config.Default().Store
	b := config.Default().Store
	b.Database = "other"
	b.Schema["extra"] = "eid"

	assert.Equal(t, "chat", a.Database)
	assert.NotContains(t, a.Schema, "extra")
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://chat.example.com ,,http://localhost:5173")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://chat.example.com", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
}
