package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show a candidate's due reviews and the week ahead",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := userFlag(cmd)
		if err != nil {
			return err
		}
		announce, _ := cmd.Flags().GetBool("announce")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		ctx := cmd.Context()
		cache, notifier, cleanup := openRedis(ctx, rt)
		defer cleanup()

		svc := engine.New(rt.repos, rt.graph, rt.tuning, cache, notifier, rt.cfg.PlanWorkers, rt.log)

		cards, err := svc.DueCards(ctx, userID)
		if err != nil {
			return fmt.Errorf("due cards: %w", err)
		}

		fmt.Printf("%-28s  %-12s  %4s  %4s  %5s\n",
			"Card", "Due", "Reps", "Days", "EF")
		fmt.Println(strings.Repeat("─", 62))
		for _, c := range cards {
			fmt.Printf("%-28s  %-12s  %4d  %4d  %5.2f\n",
				c.CardID, c.NextReviewDate.Format("2006-01-02"),
				c.Repetitions, c.IntervalDays, c.EasinessFactor)
		}
		fmt.Printf("\n%d due now\n\n", len(cards))

		forecast, err := svc.ReviewForecast(ctx, userID, 7)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		fmt.Println("Next 7 days:")
		for _, d := range forecast {
			fmt.Printf("  %s  %3d\n", d.Date.Format("Mon 2006-01-02"), d.Due)
		}

		if announce {
			n, err := svc.AnnounceDue(ctx, userID)
			if err != nil {
				return fmt.Errorf("announce: %w", err)
			}
			fmt.Printf("\nannounced %d due cards\n", n)
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().String("user", "", "Candidate user ID (UUID)")
	dueCmd.Flags().Bool("announce", false, "Publish a cards.due event for this candidate")
}
