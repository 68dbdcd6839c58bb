package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dando385/electrum-bench/internal/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "tcp://electrum.blockstream.info:50001", cfg.Server.URL)
	assert.Equal(t, 100, cfg.Samples.Addresses)
	assert.Equal(t, 100, cfg.Samples.Transactions)
	assert.Equal(t, "value", cfg.Inputs.Column)
	assert.Equal(t, "benchmark_results.txt", cfg.Output.Report)
}

func TestDefaultReportPathFollowsReportPackage(t *testing.T) {
	assert.Equal(t, report.DefaultPath, Default().Output.Report)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  url: ssl://electrum.example.org:50002
  timeout: 5s
samples:
  addresses: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ssl://electrum.example.org:50002", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 10, cfg.Samples.Addresses)
	// untouched fields keep their defaults
	assert.Equal(t, 100, cfg.Samples.Transactions)
	assert.Equal(t, "mainnet", cfg.Server.Network)
	assert.Equal(t, "benchmark_csv/bitcoin_txids.csv", cfg.Inputs.Txids)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("ELECTRUM_BENCH_TEST_URL", "tcp://10.0.0.5:50001")
	path := writeConfig(t, "server:\n  url: ${ELECTRUM_BENCH_TEST_URL}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp://10.0.0.5:50001", cfg.Server.URL)
}

func TestLoadZeroTimeoutDisables(t *testing.T) {
	path := writeConfig(t, "server:\n  timeout: 0s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Server.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"http scheme", func(c *Config) { c.Server.URL = "http://example.org:80" }, "server.url"},
		{"empty url", func(c *Config) { c.Server.URL = "" }, "server.url is required"},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }, "server.timeout"},
		{"unknown network", func(c *Config) { c.Server.Network = "dogecoin" }, "server.network"},
		{"unknown script mode", func(c *Config) { c.Server.ScriptMode = "p2sh" }, "server.script_mode"},
		{"negative address samples", func(c *Config) { c.Samples.Addresses = -1 }, "samples.addresses"},
		{"negative tx samples", func(c *Config) { c.Samples.Transactions = -1 }, "samples.transactions"},
		{"no address file", func(c *Config) { c.Inputs.Addresses = "" }, "inputs.addresses"},
		{"no txid file", func(c *Config) { c.Inputs.Txids = "" }, "inputs.txids"},
		{"no column", func(c *Config) { c.Inputs.Column = "" }, "inputs.column"},
		{"no report path", func(c *Config) { c.Output.Report = "" }, "output.report"},
		{"json without dir", func(c *Config) { c.Output.JSON = true; c.Output.JSONDir = "" }, "output.json_dir"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"zero samples allowed", func(c *Config) { c.Samples.Addresses = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
