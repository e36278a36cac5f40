package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wtr/internal/cli"
	"wtr/internal/cli/commands"
	"wtr/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "wtr",
		Short:   "Web test runner",
		Long:    `A suite-oriented runner for generated web tests. Groups generated test cases into suites, executes each suite as an isolated runner process and reports healed selectors, failures and timings.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Ctrl+C cancels the command context so in-flight suite processes get killed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
