package scheduler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects how cases are grouped into suites
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
	ModeSmart      Mode = "smart"

	// ModeExplicit is never set in a policy file; plans take it when the
	// policy carries assignments.
	ModeExplicit Mode = "explicit"
)

// SuiteOverride tunes one named suite beyond the global mode
type SuiteOverride struct {
	Mode          Mode `yaml:"mode,omitempty"`           // sequential or parallel for this suite only
	Workers       int  `yaml:"workers,omitempty"`        // In-runner workers, clamped to >= 1
	SharedContext bool `yaml:"shared_context,omitempty"` // Cases share browser state, forces one worker
}

// Policy describes how a run should be scheduled
type Policy struct {
	Mode        Mode                     `yaml:"mode,omitempty"`
	Suites      map[string]SuiteOverride `yaml:"suites,omitempty"`
	Assignments map[string]string        `yaml:"assignments,omitempty"`
}

// DefaultPolicy is the policy used when no file or mode flag is given.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeSmart}
}

// LoadPolicyFile reads a scheduling policy from a YAML file.
func LoadPolicyFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	if policy.Mode == "" {
		policy.Mode = ModeSmart
	}
	return policy, nil
}
