package main

import (
	"errors"
	"fmt"
	"time"

	redisAdapter "github.com/aretw0/fsm/internal/adapters/redis"
	"github.com/spf13/cobra"
)

func newPublishCmd(a *app) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Copy the definitions of a directory to Redis",
		Long: `Validates every definition in the directory, then stores them in Redis so
that other fsm processes started with --redis serve the same catalog.
Concurrent publishers are serialized with a lock.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.redis == "" {
				return errors.New("publish needs --redis")
			}
			reg, err := a.loadDir()
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			store := a.store(redisAdapter.WithTTL(ttl))
			defer store.Close()

			ctx := cmd.Context()
			locker := redisAdapter.NewLocker(store.Client(), redisAdapter.DefaultPrefix)
			unlock, err := locker.Lock(ctx, "publish", 30*time.Second)
			if err != nil {
				return err
			}
			defer func() {
				if err := unlock(ctx); err != nil {
					a.logger.Warn("failed to release publish lock", "error", err)
				}
			}()

			for _, name := range reg.Names() {
				automaton, err := reg.Get(name)
				if err != nil {
					return err
				}
				if err := store.Save(ctx, automaton.Definition()); err != nil {
					return fmt.Errorf("publish %s: %w", name, err)
				}
				a.logger.Debug("definition published", "automaton", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d automata to %s\n", reg.Len(), a.redis)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Expire the published definitions after this long (0 keeps them)")
	return cmd
}
