package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB_NAME", "")
	t.Setenv("LOG_RETENTION_DAYS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("USERS_ADDR", "")
	t.Setenv("COSTS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "cost_manager", cfg.MongoDBName)
	require.Equal(t, 30, cfg.LogRetentionDays)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, ":8080", cfg.HTTP.UsersAddr)
	require.Equal(t, ":8081", cfg.HTTP.CostsAddr)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadRetention(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	t.Setenv("LOG_RETENTION_DAYS", "zero")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("LOG_RETENTION_DAYS", "0")
	_, err = Load()
	require.Error(t, err)
}

func TestGetAddrAcceptsBarePort(t *testing.T) {
	t.Setenv("USERS_ADDR", "9090")
	require.Equal(t, ":9090", getAddr("USERS_ADDR", ":8080"))

	t.Setenv("USERS_ADDR", "0.0.0.0:9090")
	require.Equal(t, "0.0.0.0:9090", getAddr("USERS_ADDR", ":8080"))
}

func TestParseOrigins(t *testing.T) {
	require.Equal(t, []string{"*"}, parseOrigins(""))
	require.Equal(t, []string{"http://a.com", "http://b.com"}, parseOrigins(" http://a.com, http://b.com ,"))
}
