package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/config"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

var rootCmd = &cobra.Command{
	Use:   "barprep",
	Short: "Mastery and scheduling engine for bar exam preparation",
	Long: "Barprep tracks per-skill mastery from graded attempts, verifies skills " +
		"through a staged gate, schedules spaced reviews, and assembles the daily " +
		"study plan for each candidate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("tuning", "", "Path to a tuning override file (overrides TUNING_FILE env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(versionCmd)
}

// runtime bundles the pieces every command needs: resolved config, logger,
// tuning, the curriculum graph and an open store.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	tuning tuning.Config
	graph  *skillgraph.Graph
	store  *store.Store
	repos  *store.Repos
}

func (r *runtime) close() {
	if r.store != nil {
		_ = r.store.Close()
	}
	r.log.Sync()
}

// openRuntime resolves configuration (flag > env > default), builds the
// logger and curriculum graph, loads tuning and opens the database.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("tuning"); p != "" {
		cfg.TuningFile = p
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tcfg, err := tuning.Load(cfg.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}

	graph, err := skillgraph.NewGraph(skillgraph.DefaultSkills())
	if err != nil {
		return nil, fmt.Errorf("build skill graph: %w", err)
	}

	st, err := store.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &runtime{
		cfg:    cfg,
		log:    log,
		tuning: tcfg,
		graph:  graph,
		store:  st,
		repos:  store.NewRepos(st.DB(), log),
	}, nil
}
