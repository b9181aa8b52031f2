package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "monero.yaml", `
daemon:
  addr: http://node.local:38081
  timeout: 5s
wallet:
  addr: https://wallet.local:38083
  tls:
    server:
      skip_hostname_verification: true
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://node.local:38081", cfg.Daemon.Addr)
	assert.Equal(t, 5*time.Second, cfg.Daemon.Timeout)
	assert.Equal(t, "https://wallet.local:38083", cfg.Wallet.Addr)
	assert.True(t, cfg.Wallet.TLS.Server.SkipHostnameVerification)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "monero.json", `{"wallet": {"addr": "http://10.0.0.2:18083"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultDaemonAddr, cfg.Daemon.Addr)
	assert.Equal(t, "http://10.0.0.2:18083", cfg.Wallet.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("MONERO_DAEMON_ADDR", "http://env-node:18081")
	t.Setenv("MONERO_WALLET_TIMEOUT", "30s")
	t.Setenv("MONERO_RPC_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://env-node:18081", cfg.Daemon.Addr)
	assert.Equal(t, DefaultWalletAddr, cfg.Wallet.Addr)
	assert.Equal(t, 30*time.Second, cfg.Wallet.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "monero.yaml", "daemon:\n  addr: http://file-node:18081\n")
	t.Setenv("MONERO_DAEMON_ADDR", "http://env-node:18081")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env-node:18081", cfg.Daemon.Addr)
}

func TestLoadConfigErrors(t *testing.T) {
	var configErr *ConfigError

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorAs(t, err, &configErr)

	_, err = LoadConfig(writeConfig(t, "monero.yaml", "log_level: chatty\n"))
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "logLevel", configErr.Field)
}

func TestClientConfigValidate(t *testing.T) {
	require.NoError(t, ClientConfig{Addr: DefaultWalletAddr}.Validate())

	var configErr *ConfigError
	require.ErrorAs(t, ClientConfig{}.Validate(), &configErr)
	require.ErrorAs(t, ClientConfig{Addr: "127.0.0.1 18081"}.Validate(), &configErr)
}

func TestApplyLogLevel(t *testing.T) {
	previous := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(previous) })

	cfg := &Config{LogLevel: "trace"}
	cfg.ApplyLogLevel()
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())

	cfg.LogLevel = "nope"
	cfg.ApplyLogLevel()
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())
}
