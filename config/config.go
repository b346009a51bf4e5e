// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/utils"
)

const (
	defaultLogLevel      = "info"
	defaultDataDir       = ".countervm"
	defaultListenAddress = "127.0.0.1:9650"
	defaultLogMaxSize    = 8 // megabytes
	defaultLogMaxFiles   = 4

	// DefaultComputeFee is 0.002 units. It is charged on the attached
	// value of every message before the remainder is credited.
	DefaultComputeFee = 2_000_000

	// DefaultTreasuryBalance is the amount a sandbox wallet is funded with
	// on first use (1,000,000 units).
	DefaultTreasuryBalance = 1_000_000 * 1_000_000_000
)

// Config is the host configuration of the ledger sandbox.
type Config struct {
	LogLevel      string `yaml:"logLevel"`
	LogDir        string `yaml:"logDir"`
	LogMaxSize    int    `yaml:"logMaxSize"`
	LogMaxFiles   int    `yaml:"logMaxFiles"`
	DataDir       string `yaml:"dataDir"`
	ListenAddress string `yaml:"listenAddress"`

	// Amounts are decimal units, e.g. "0.002".
	ComputeFee      string `yaml:"computeFee"`
	TreasuryBalance string `yaml:"treasuryBalance"`

	Trace trace.Config `yaml:"trace"`

	logLevel        logging.Level
	computeFee      uint64
	treasuryBalance uint64
}

func NewDefault() *Config {
	c := &Config{}
	c.setDefault()
	// Defaults always parse.
	_ = c.parse()
	return c
}

func (c *Config) setDefault() {
	c.LogLevel = defaultLogLevel
	c.LogMaxSize = defaultLogMaxSize
	c.LogMaxFiles = defaultLogMaxFiles
	c.DataDir = defaultDataDir
	c.ListenAddress = defaultListenAddress
	c.ComputeFee = utils.FormatBalance(DefaultComputeFee)
	c.TreasuryBalance = utils.FormatBalance(DefaultTreasuryBalance)
}

// Load parses a YAML config. Fields that are not set keep their defaults.
func Load(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if err := c.parse(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads the config at [path]. An empty path yields the defaults.
func LoadFile(path string) (*Config, error) {
	if len(path) == 0 {
		return NewDefault(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

func (c *Config) parse() error {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	c.logLevel = level

	c.computeFee, err = utils.ParseBalance(c.ComputeFee)
	if err != nil {
		return fmt.Errorf("%w: computeFee: %w", ErrInvalidAmount, err)
	}
	c.treasuryBalance, err = utils.ParseBalance(c.TreasuryBalance)
	if err != nil {
		return fmt.Errorf("%w: treasuryBalance: %w", ErrInvalidAmount, err)
	}
	if len(c.ListenAddress) == 0 {
		return ErrMissingListenAddress
	}
	if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.Trace.SampleRate)
	}
	if c.LogMaxSize <= 0 || c.LogMaxFiles <= 0 {
		return fmt.Errorf("%w: logMaxSize=%d logMaxFiles=%d", ErrInvalidLogRotation, c.LogMaxSize, c.LogMaxFiles)
	}
	return nil
}

// SetLogLevel overrides the configured level, e.g. from a CLI flag.
func (c *Config) SetLogLevel(level string) error {
	l, err := logging.ToLevel(level)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
	c.LogLevel = level
	c.logLevel = l
	return nil
}

func (c *Config) GetLogLevel() logging.Level { return c.logLevel }
func (c *Config) GetLogDir() string          { return c.LogDir }
func (c *Config) GetDataDir() string         { return c.DataDir }
func (c *Config) GetListenAddress() string   { return c.ListenAddress }
func (c *Config) GetComputeFee() uint64      { return c.computeFee }
func (c *Config) GetTreasuryBalance() uint64 { return c.treasuryBalance }

func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:        c.Trace.Enabled,
		SampleRate:     c.Trace.SampleRate,
		ZipkinEndpoint: c.Trace.ZipkinEndpoint,
		AppName:        consts.Name,
		Version:        consts.Version,
	}
}

// GetLogConfig returns the avalanchego logging config for file output.
func (c *Config) GetLogConfig(name string) logging.Config {
	loggingConfig := logging.Config{}
	loggingConfig.LogLevel = c.logLevel
	loggingConfig.DisplayLevel = c.logLevel
	loggingConfig.LoggerName = name
	loggingConfig.Directory = c.LogDir
	loggingConfig.MaxSize = c.LogMaxSize
	loggingConfig.MaxFiles = c.LogMaxFiles
	loggingConfig.LogFormat = logging.JSON
	return loggingConfig
}
