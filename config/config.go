// Package config defines the assembler's string-keyed configuration (spec
// §6 Configuration Keys table): a YAML-decodable, validator-tagged struct,
// following ahrav-go-gavel's pattern of yaml+validate struct tags on
// configuration types and gia-lo-sai-terraform's YAML-file loading.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable named in spec §6.
type Config struct {
	// AllowEdgeMultiples permits parallel edges on PLVRs. Default false.
	AllowEdgeMultiples bool `yaml:"allowEdgeMultiples"`

	// CompressMultiplesMustMatch refuses merges when u->w and w->next
	// multiplicities differ. Default true.
	CompressMultiplesMustMatch bool `yaml:"compressMultiplesMustMatch"`

	// IncludeFromEdges emits edgesFrom in serialized output. Default false.
	IncludeFromEdges bool `yaml:"includeFromEdges"`

	// PartitionBranchesChains splits output by isBranch. Default true.
	PartitionBranchesChains bool `yaml:"partitionBranchesChains"`

	// Coverage is the expected coverage for pruning; -1 disables pruning.
	Coverage int `yaml:"coverage" validate:"min=-1"`

	// TerminationCount is the number of consecutive silent rounds required
	// to stop chain compression.
	TerminationCount int `yaml:"terminationCount" validate:"min=1"`
}

// Default returns the configuration with every spec §6 default applied.
func Default() Config {
	return Config{
		AllowEdgeMultiples:         false,
		CompressMultiplesMustMatch: true,
		IncludeFromEdges:           false,
		PartitionBranchesChains:    true,
		Coverage:                   -1,
		TerminationCount:           1,
	}
}

// PruningEnabled reports whether Coverage names a usable pruning threshold.
func (c Config) PruningEnabled() bool { return c.Coverage > 0 }

// Validate checks c against its struct tags plus the cross-field rule that
// a non-default Coverage must still be positive or the disabling sentinel
// -1 (spec §7 PreconditionViolation: "coverage non-positive when pruning
// requested").
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Coverage == 0 {
		return fmt.Errorf("config: coverage must be -1 (disabled) or positive, got 0")
	}
	return nil
}

// Load reads and decodes a YAML configuration file over Default(), then
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
