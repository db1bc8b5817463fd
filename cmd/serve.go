package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/app"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/notify"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/plancache"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// runServe opens the runtime, wires the engine service and runs the API
// server until an interrupt or termination signal arrives.
func runServe(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	cache, notifier, cleanup := openRedis(cmd.Context(), rt)
	defer cleanup()

	svc := engine.New(rt.repos, rt.graph, rt.tuning, cache, notifier, rt.cfg.PlanWorkers, rt.log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt.log.Info("starting", "env", rt.cfg.Env, "port", rt.cfg.ServerPort, "db", rt.cfg.DBDriver)
	if err := app.Run(ctx, app.Options{Config: rt.cfg, Log: rt.log, Service: svc}); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// openRedis connects the plan cache and event notifier when REDIS_ADDR is
// set and reachable; otherwise both degrade to no-ops and the engine builds
// every plan on demand.
func openRedis(ctx context.Context, rt *runtime) (plancache.PlanCache, notify.Notifier, func()) {
	if rt.cfg.RedisAddr == "" {
		return plancache.NewNop(), notify.NewNop(), func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: rt.cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		rt.log.Warn("redis unreachable, plan cache and events disabled", "addr", rt.cfg.RedisAddr, "err", err)
		_ = client.Close()
		return plancache.NewNop(), notify.NewNop(), func() {}
	}

	cache := plancache.NewRedis(client, 0, rt.log)
	notifier := notify.NewRedis(client, rt.cfg.RedisChannel, rt.log)
	return cache, notifier, func() { _ = client.Close() }
}
