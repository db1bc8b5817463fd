package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter practice item catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		ctx := cmd.Context()
		items := store.DefaultItems()
		for i := range items {
			if err := rt.repos.Items.Upsert(ctx, &items[i]); err != nil {
				return fmt.Errorf("seed item %s: %w", items[i].ID, err)
			}
		}

		fmt.Printf("%d items seeded\n", len(items))
		return nil
	},
}
