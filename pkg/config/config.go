// Package config loads the kernel's process-level configuration from
// environment variables (node/wallet listen addresses, data directories,
// logging) and its deployment-level genesis configuration from a YAML
// file (see genesis.go).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the settings common to both the node and wallet processes.
type Config struct {
	// Server configuration
	ListenAddr  string
	MetricsAddr string
	HealthAddr  string

	// Storage
	DataDir string

	// Node RPC, used by wallet processes to reach a node's pkg/rpc.Client
	// façade (spec §6).
	NodeRPCURL string

	// Keystore
	KeystorePath string

	// Service identity
	NodeID   string
	LogLevel string

	// Genesis: path of this deployment's genesis.yaml, read by
	// LoadGenesisConfig (see genesis.go).
	GenesisPath string

	// Sync tuning
	SyncPollInterval time.Duration
}

// Load reads configuration from environment variables. Call Validate
// afterward before starting a service.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:  getEnv("KERNEL_HOST", "0.0.0.0") + ":" + getEnv("KERNEL_PORT", "8080"),
		MetricsAddr: getEnv("KERNEL_HOST", "0.0.0.0") + ":" + getEnv("METRICS_PORT", "9090"),
		HealthAddr:  getEnv("KERNEL_HOST", "0.0.0.0") + ":" + getEnv("HEALTH_PORT", "8081"),

		DataDir: getEnv("DATA_DIR", "./data"),

		NodeRPCURL: getEnv("NODE_RPC_URL", ""),

		KeystorePath: getEnv("KEYSTORE_PATH", ""),

		NodeID:   getEnv("NODE_ID", "node-default"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GenesisPath: getEnv("GENESIS_PATH", "./genesis.yaml"),

		SyncPollInterval: getEnvDuration("SYNC_POLL_INTERVAL", 2*time.Second),
	}
	return cfg, nil
}

// Validate checks that configuration required to run a wallet process
// (which depends on a remote node) is present.
func (c *Config) Validate() error {
	var errs []string
	if c.NodeRPCURL == "" {
		errs = append(errs, "NODE_RPC_URL is required but not set")
	}
	if c.KeystorePath == "" {
		errs = append(errs, "KEYSTORE_PATH is required but not set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ValidateForDevelopment performs relaxed validation suitable for a local
// node-only deployment that never opens a wallet.
func (c *Config) ValidateForDevelopment() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
