package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSlitherBinary = "slither"
	DefaultSolcVersion   = "0.5.0"
	DefaultContractPath  = "contracts/Vulnerable.sol"
	DefaultFailOn        = "none"
)

// Environment variables that override the config file.
const (
	EnvSlitherBinary = "CONTRACT_AUDIT_SLITHER_BIN"
	EnvSolcVersion   = "CONTRACT_AUDIT_SOLC"
	EnvContractPath  = "CONTRACT_AUDIT_CONTRACT"
	EnvFailOn        = "CONTRACT_AUDIT_FAIL_ON"
)

type Config struct {
	SlitherBinary string `yaml:"slither_binary" validate:"required"`
	SolcVersion   string `yaml:"solc_version" validate:"required,semver"`
	ContractPath  string `yaml:"contract_path" validate:"required"`
	// FailOn is the lowest impact that makes `analyze` exit non-zero.
	FailOn string `yaml:"fail_on" validate:"omitempty,oneof=none informational low medium high"`
}

func Default() *Config {
	return &Config{
		SlitherBinary: DefaultSlitherBinary,
		SolcVersion:   DefaultSolcVersion,
		ContractPath:  DefaultContractPath,
		FailOn:        DefaultFailOn,
	}
}

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".contract-audit"), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist. Fields left empty in the file keep their default values.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.fillDefaults()
	cfg.Normalize()
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, field *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}
	set(EnvSlitherBinary, &c.SlitherBinary)
	set(EnvSolcVersion, &c.SolcVersion)
	set(EnvContractPath, &c.ContractPath)
	set(EnvFailOn, &c.FailOn)
	c.Normalize()
}

// Normalize trims whitespace and lower-cases the fail-on threshold.
func (c *Config) Normalize() {
	c.SlitherBinary = strings.TrimSpace(c.SlitherBinary)
	c.SolcVersion = strings.TrimSpace(c.SolcVersion)
	c.ContractPath = strings.TrimSpace(c.ContractPath)
	c.FailOn = strings.ToLower(strings.TrimSpace(c.FailOn))
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.SlitherBinary == "" {
		c.SlitherBinary = d.SlitherBinary
	}
	if c.SolcVersion == "" {
		c.SolcVersion = d.SolcVersion
	}
	if c.ContractPath == "" {
		c.ContractPath = d.ContractPath
	}
	if c.FailOn == "" {
		c.FailOn = d.FailOn
	}
}
