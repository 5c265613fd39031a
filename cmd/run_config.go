package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/kinetic-sim/kinetic-sim/sim"
	"github.com/kinetic-sim/kinetic-sim/sim/models"
)

// RunConfig is the resolved set of parameters for one invocation.
type RunConfig struct {
	Model      string
	Method     string
	TEnd       float64
	Tau        float64
	Seed       int64
	Replicates int
	Rates      []float64
	Initial    map[string]int64
}

// RunFile mirrors the YAML run file. Pointer fields distinguish "absent"
// from zero so that unset keys fall through to flags.
type RunFile struct {
	Model      *string          `yaml:"model"`
	Method     *string          `yaml:"method"`
	TEnd       *float64         `yaml:"t_end"`
	Tau        *float64         `yaml:"tau"`
	Seed       *int64           `yaml:"seed"`
	Replicates *int             `yaml:"replicates"`
	Rates      []float64        `yaml:"rates"`
	Initial    map[string]int64 `yaml:"initial"`
}

// loadRunFile parses a run file with strict field checking: typos must
// cause errors.
func loadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run file: %w", err)
	}
	var rf RunFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil {
		return nil, fmt.Errorf("parse run file %s: %w", path, err)
	}
	return &rf, nil
}

// resolveRunConfig merges flag values with the optional run file.
// Explicitly set flags win over the file; the file wins over flag defaults.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := RunConfig{
		Model:      modelName,
		Method:     methodName,
		TEnd:       tEnd,
		Tau:        tau,
		Seed:       seed,
		Replicates: replicates,
		Rates:      rates,
		Initial:    initial,
	}
	if configPath == "" {
		return cfg, nil
	}
	rf, err := loadRunFile(configPath)
	if err != nil {
		return RunConfig{}, err
	}
	rf.applyTo(&cfg, cmd.Flags().Changed)
	return cfg, nil
}

// applyTo copies present file values into cfg unless changed(flag) is true.
func (rf *RunFile) applyTo(cfg *RunConfig, changed func(flag string) bool) {
	if rf.Model != nil && !changed("model") {
		cfg.Model = *rf.Model
	}
	if rf.Method != nil && !changed("method") {
		cfg.Method = *rf.Method
	}
	if rf.TEnd != nil && !changed("t-end") {
		cfg.TEnd = *rf.TEnd
	}
	if rf.Tau != nil && !changed("tau") {
		cfg.Tau = *rf.Tau
	}
	if rf.Seed != nil && !changed("seed") {
		cfg.Seed = *rf.Seed
	}
	if rf.Replicates != nil && !changed("replicates") {
		cfg.Replicates = *rf.Replicates
	}
	if rf.Rates != nil && !changed("rates") {
		cfg.Rates = rf.Rates
	}
	if rf.Initial != nil && !changed("initial") {
		cfg.Initial = rf.Initial
	}
}

// build resolves the model and method into a ready network.
func (cfg RunConfig) build() (sim.Network, sim.Method, error) {
	method, err := sim.ParseMethod(cfg.Method)
	if err != nil {
		return sim.Network{}, "", err
	}
	m, err := models.Lookup(cfg.Model)
	if err != nil {
		return sim.Network{}, "", err
	}
	net, err := m.Build(cfg.Rates, cfg.Initial)
	if err != nil {
		return sim.Network{}, "", err
	}
	return net, method, nil
}
