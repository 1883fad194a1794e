package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	redisAdapter "github.com/aretw0/fsm/internal/adapters/redis"
	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/registry"
	"github.com/spf13/cobra"
)

// app carries the state shared by all commands.
type app struct {
	dir      string
	redis    string
	logLevel string
	logger   *slog.Logger
}

// load reads every automaton definition in the configured directory, then
// the shared ones in Redis when configured. Stored definitions win on
// name clashes.
func (a *app) load(ctx context.Context) (*registry.Registry, error) {
	reg, err := a.loadDir()
	if err != nil || a.redis == "" {
		return reg, err
	}

	store := a.store()
	defer store.Close()
	if err := reg.LoadSource(ctx, store); err != nil {
		return nil, err
	}
	return reg, nil
}

func (a *app) loadDir() (*registry.Registry, error) {
	reg := registry.NewRegistry(registry.WithLogger(a.logger))
	if err := reg.LoadDir(a.dir); err != nil {
		return nil, err
	}
	return reg, nil
}

func (a *app) store(opts ...redisAdapter.Option) *redisAdapter.Store {
	return redisAdapter.New(a.redis, os.Getenv("FSM_REDIS_PASSWORD"), 0, opts...)
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "fsm",
		Short: "fsm evaluates deterministic finite automata",
		Long: `fsm loads declarative automaton definitions (YAML or JSON) from a directory,
composes them with "and" / "or", and evaluates inputs against them from the
command line, over HTTP or through an MCP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", ".", "Directory containing the automaton definitions")
	rootCmd.PersistentFlags().StringVar(&a.redis, "redis", "", "Redis address holding shared definitions (e.g. localhost:6379)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newListCmd(a),
		newRunCmd(a),
		newValidateCmd(a),
		newShowCmd(a),
		newGraphCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newPublishCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
