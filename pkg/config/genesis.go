// Genesis configuration loading, grounded on the teacher's
// anchor_config.go: YAML files with ${VAR:-default} environment variable
// substitution and a custom Duration type for human-readable time fields.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
)

// GenesisConfig describes the deployment-wide parameters a node and its
// wallets must agree on before they can interoperate: the chain
// identifier embedded in genesis, block production cadence, and genesis's
// initial coin allocation.
type GenesisConfig struct {
	Environment string `yaml:"environment"`
	ChainID     string `yaml:"chain_id"`

	Block struct {
		Interval Duration `yaml:"interval"`
	} `yaml:"block"`

	Allocations []GenesisAllocation `yaml:"allocations"`
}

// GenesisAllocation mints Amount coins to Owner in the genesis block.
type GenesisAllocation struct {
	Owner  string `yaml:"owner"` // hex-encoded kernelcrypto.PublicKey
	Amount uint64 `yaml:"amount"`
}

// PublicKey decodes a's Owner field.
func (a GenesisAllocation) PublicKey() (kernelcrypto.PublicKey, error) {
	raw, err := hex.DecodeString(a.Owner)
	if err != nil || len(raw) != kernelcrypto.PublicKeySize {
		return kernelcrypto.PublicKey{}, fmt.Errorf("genesis: malformed owner %q", a.Owner)
	}
	var pk kernelcrypto.PublicKey
	copy(pk[:], raw)
	return pk, nil
}

// Value returns a's amount as an amount.Amount.
func (a GenesisAllocation) Value() amount.Amount {
	return amount.FromUint64(a.Amount)
}

// Duration is a YAML-friendly wrapper over time.Duration, parsed from
// strings like "5s" rather than raw nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// LoadGenesisConfig reads and parses the genesis file at path, expanding
// ${VAR} / ${VAR:-default} references against the process environment.
func LoadGenesisConfig(path string) (*GenesisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file %s: %w", path, err)
	}

	expanded := substituteEnvVars(string(data))

	var cfg GenesisConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse genesis file %s: %w", path, err)
	}
	if cfg.Block.Interval == 0 {
		cfg.Block.Interval = Duration(5 * time.Second)
	}
	return &cfg, nil
}

// Validate checks that the genesis config is internally consistent.
func (c *GenesisConfig) Validate() error {
	var errs []string
	if c.ChainID == "" {
		errs = append(errs, "chain_id is required")
	}
	if len(c.Allocations) == 0 {
		errs = append(errs, "at least one genesis allocation is required")
	}
	for i, a := range c.Allocations {
		if _, err := a.PublicKey(); err != nil {
			errs = append(errs, fmt.Sprintf("allocations[%d]: %v", i, err))
		}
		if a.Amount == 0 {
			errs = append(errs, fmt.Sprintf("allocations[%d]: amount must be nonzero", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("genesis validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
