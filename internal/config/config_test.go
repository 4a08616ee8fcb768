package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.Equal(t, "api", cfg.Backend)
	assert.Equal(t, "https://pad.crc.nd.edu", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("PAD_BACKEND", "snapshot")
	t.Setenv("SNAPSHOT_DB_PATH", "/tmp/snap.db")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "snapshot", cfg.Backend)
	assert.Equal(t, "/tmp/snap.db", cfg.SnapshotDB)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}
