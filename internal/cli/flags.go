package cli

import (
	"time"

	"wtr/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Mode       string
	PolicyFile string
	MaxWorkers int
	SuiteProcs int
	Timeout    time.Duration
	NameFilter string
	SpecsPath  string
	Manifest   string
	Prepare    bool
	SkipSeed   bool
	FailFast   bool
	OpenFails  bool
	Verbose    bool
	ShowCases  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Mode:       f.Mode,
		PolicyFile: f.PolicyFile,
		MaxWorkers: f.MaxWorkers,
		SuiteProcs: f.SuiteProcs,
		Timeout:    f.Timeout,
		NameFilter: f.NameFilter,
		SpecsPath:  f.SpecsPath,
		Manifest:   f.Manifest,
		Prepare:    f.Prepare,
		SkipSeed:   f.SkipSeed,
		FailFast:   f.FailFast,
		OpenFails:  f.OpenFails,
		Verbose:    f.Verbose,
		ShowCases:  f.ShowCases,
	}
}
