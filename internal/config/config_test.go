package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := NewAppConfig()

	assert.Equal(t, ":8080", c.ApiAddr())
	assert.Equal(t, "opshub.sqlite", c.DB())
	assert.Equal(t, 64*1024*1024, c.BodyLimit())
	assert.EqualValues(t, 64*1024*1024, c.WsMaxMessageSize())
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "opshub_server.yml")

	data := "api_addr: \":9999\"\ndb: \"\"\nws:\n  max_message_mb: 8\n"
	require.NoError(t, os.WriteFile(name, []byte(data), 0o644))

	c := NewAppConfig()
	require.True(t, c.Load(name))

	assert.Equal(t, ":9999", c.ApiAddr())
	assert.Empty(t, c.DB())
	assert.EqualValues(t, 8*1024*1024, c.WsMaxMessageSize())
}

func TestLoadMissingFile(t *testing.T) {
	c := NewAppConfig()

	assert.False(t, c.Load("no_such_file.yml"))
	assert.Equal(t, ":8080", c.ApiAddr())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("OPSHUB_API_ADDR", ":7777")
	t.Setenv("OPSHUB_WS_MAX_MESSAGE_MB", "16")

	c := NewAppConfig()
	require.NoError(t, c.LoadEnv("OPSHUB_"))

	assert.Equal(t, ":7777", c.ApiAddr())
	assert.EqualValues(t, 16*1024*1024, c.WsMaxMessageSize())
}
