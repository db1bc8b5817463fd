package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Browse the curriculum skill graph",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills in prerequisite order (optionally filtered by unit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, _ := cmd.Flags().GetString("unit")

		graph, err := skillgraph.NewGraph(skillgraph.DefaultSkills())
		if err != nil {
			return fmt.Errorf("build skill graph: %w", err)
		}

		skills := graph.TopologicalOrder()
		if unit != "" {
			filtered := skills[:0]
			for _, s := range skills {
				if s.Unit == skillgraph.Unit(unit) {
					filtered = append(filtered, s)
				}
			}
			skills = filtered
			if len(skills) == 0 {
				return fmt.Errorf("no skills found for unit %q", unit)
			}
		}

		fmt.Printf("%-24s  %-38s  %-18s  %6s  %4s  %-4s  %s\n",
			"ID", "Name", "Unit", "Weight", "Tier", "Core", "Formats")
		fmt.Println(strings.Repeat("─", 118))

		for _, s := range skills {
			name := s.Name
			if len(name) > 38 {
				name = name[:35] + "..."
			}
			core := ""
			if s.Core {
				core = "yes"
			}
			formats := make([]string, 0, len(s.Formats))
			for _, f := range s.Formats {
				formats = append(formats, string(f))
			}
			fmt.Printf("%-24s  %-38s  %-18s  %6.3f  %4d  %-4s  %s\n",
				s.ID, name, skillgraph.UnitDisplayName(s.Unit),
				s.ExamWeight, s.DifficultyTier, core, strings.Join(formats, ","))
		}

		fmt.Printf("\n%d skills\n", len(skills))
		return nil
	},
}

func init() {
	skillsListCmd.Flags().String("unit", "", "Filter by unit (e.g. civil-law)")

	skillsCmd.AddCommand(skillsListCmd)
}
