// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion, default value application,
// and ensures all configuration fields hold usable values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dando385/electrum-bench/internal/electrum"
	"github.com/dando385/electrum-bench/internal/inputs"
	"github.com/dando385/electrum-bench/internal/report"
)

// DefaultPath is where the config file is looked up when --config is not given.
const DefaultPath = "config/bench.yaml"

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Server  Server  `yaml:"server"`
	Samples Samples `yaml:"samples"`
	Inputs  Inputs  `yaml:"inputs"`
	Output  Output  `yaml:"output"`
	Log     Log     `yaml:"log"`
}

// Server describes the Electrum endpoint under test.
type Server struct {
	URL           string        `yaml:"url"`             // tcp://host:port or ssl://host:port (supports ${VAR})
	Timeout       time.Duration `yaml:"timeout"`         // Per-call timeout, 0 disables
	TLSSkipVerify bool          `yaml:"tls_skip_verify"` // Accept self-signed certificates on ssl://
	Network       string        `yaml:"network"`         // mainnet, testnet, signet, regtest
	ScriptMode    string        `yaml:"script_mode"`     // address or empty
}

// Samples holds the number of inputs each pass attempts.
type Samples struct {
	Addresses    int `yaml:"addresses"`
	Transactions int `yaml:"transactions"`
}

// Inputs locates the CSV input files.
type Inputs struct {
	Addresses string `yaml:"addresses"`
	Txids     string `yaml:"txids"`
	Column    string `yaml:"column"`
}

// Output controls where reports are written.
type Output struct {
	Report  string `yaml:"report"`   // Text report path, overwritten on each run
	JSON    bool   `yaml:"json"`     // Also write a JSON report
	JSONDir string `yaml:"json_dir"` // Directory for timestamped JSON reports
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is present. Values
// in a loaded file are applied on top of it.
func Default() *Config {
	return &Config{
		Server: Server{
			URL:        electrum.DefaultServer,
			Timeout:    30 * time.Second,
			Network:    "mainnet",
			ScriptMode: string(electrum.ScriptModeAddress),
		},
		Samples: Samples{
			Addresses:    100,
			Transactions: 100,
		},
		Inputs: Inputs{
			Addresses: inputs.DefaultAddressFile,
			Txids:     inputs.DefaultTxidFile,
			Column:    inputs.DefaultColumn,
		},
		Output: Output{
			Report:  report.DefaultPath,
			JSONDir: "reports",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks every field. It may emit warnings (to stderr) for
// suspicious values but does not fail on warnings.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if _, err := electrum.ParseEndpoint(c.Server.URL); err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must be >= 0")
	}
	if _, err := electrum.NetworkParams(c.Server.Network); err != nil {
		return fmt.Errorf("server.network: %w", err)
	}
	if _, err := electrum.ParseScriptMode(c.Server.ScriptMode); err != nil {
		return fmt.Errorf("server.script_mode: %w", err)
	}

	if c.Samples.Addresses < 0 {
		return fmt.Errorf("samples.addresses must be >= 0")
	}
	if c.Samples.Transactions < 0 {
		return fmt.Errorf("samples.transactions must be >= 0")
	}

	if c.Inputs.Addresses == "" {
		return fmt.Errorf("inputs.addresses is required")
	}
	if c.Inputs.Txids == "" {
		return fmt.Errorf("inputs.txids is required")
	}
	if c.Inputs.Column == "" {
		return fmt.Errorf("inputs.column is required")
	}

	if c.Output.Report == "" {
		return fmt.Errorf("output.report is required")
	}
	if c.Output.JSON && c.Output.JSONDir == "" {
		return fmt.Errorf("output.json_dir is required when output.json is set")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	const low = 500 * time.Millisecond
	const high = 5 * time.Minute
	if d := c.Server.Timeout; d > 0 && d < low {
		fmt.Fprintf(os.Stderr, "Warning: server timeout is very low (%s); lookups may fail under normal network jitter\n", d)
	}
	if d := c.Server.Timeout; d > high {
		fmt.Fprintf(os.Stderr, "Warning: server timeout is very high (%s); a hung lookup will stall the benchmark\n", d)
	}
	if c.Server.Timeout == 0 {
		fmt.Fprintln(os.Stderr, "Warning: server timeout disabled; a hung lookup will block the benchmark indefinitely")
	}

	return nil
}

// Load reads a YAML configuration file on top of Default, expanding
// environment variables, and validates the result.
//
// Environment variable expansion:
//
//	Values can use ${VAR} syntax which will be expanded using os.ExpandEnv().
//	Example: url: ${ELECTRUM_URL} will use the ELECTRUM_URL environment variable.
//
// A missing file is reported with an error wrapping fs.ErrNotExist so callers
// can decide whether the file was optional.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply overrides
// (command-line flags) before validating.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default without validating.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
