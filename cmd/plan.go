package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/notify"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/plancache"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and print a candidate's daily plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := userFlag(cmd)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		svc := engine.New(rt.repos, rt.graph, rt.tuning, plancache.NewNop(), notify.NewNop(), rt.cfg.PlanWorkers, rt.log)
		plan, err := svc.RebuildPlan(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("build plan: %w", err)
		}

		fmt.Printf("Plan for %s  phase=%s  budget=%dmin  planned=%dmin\n\n",
			plan.GeneratedAt.Format("2006-01-02"), plan.Phase, plan.BudgetMinutes, plan.PlannedMinutes)

		fmt.Printf("%-26s  %-22s  %-10s  %-8s  %3s  %s\n",
			"Skill", "Item", "Mode", "Format", "Min", "Why")
		fmt.Println(strings.Repeat("─", 110))

		for _, t := range plan.Tasks {
			why := t.Rationale
			if len(why) > 40 {
				why = why[:37] + "..."
			}
			fmt.Printf("%-26s  %-22s  %-10s  %-8s  %3d  %s\n",
				t.SkillName, t.ItemID, t.Mode, t.Format, t.EstimatedMinutes, why)
		}

		fmt.Printf("\n%d tasks\n", len(plan.Tasks))
		return nil
	},
}

var planRebuildAllCmd = &cobra.Command{
	Use:   "rebuild-all",
	Short: "Precompute plans for every enrolled candidate",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		cache, notifier, cleanup := openRedis(cmd.Context(), rt)
		defer cleanup()

		svc := engine.New(rt.repos, rt.graph, rt.tuning, cache, notifier, rt.cfg.PlanWorkers, rt.log)
		n, err := svc.RebuildAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("rebuild plans: %w", err)
		}

		fmt.Printf("%d plans rebuilt\n", n)
		return nil
	},
}

// userFlag parses the required --user flag.
func userFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("user")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--user is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user %q: %w", raw, err)
	}
	return id, nil
}

func init() {
	planCmd.Flags().String("user", "", "Candidate user ID (UUID)")

	planCmd.AddCommand(planRebuildAllCmd)
}
