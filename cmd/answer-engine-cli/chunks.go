package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nietlabs/answer-engine/internal/knowledge"
	"github.com/nietlabs/answer-engine/internal/observability"
)

func newChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Inspect the knowledge base",
	}
	cmd.AddCommand(newChunksValidateCmd())
	return cmd
}

func newChunksValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the chunk files and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := knowledge.LoadDir(cfg.Knowledge.DataDir, observability.NopLogger())
			if err != nil {
				return fmt.Errorf("loading chunks: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d chunks from %s\n", store.Len(), cfg.Knowledge.DataDir)
			for _, cat := range []knowledge.Category{
				knowledge.CategoryCourse,
				knowledge.CategoryAdmission,
				knowledge.CategoryFacility,
				knowledge.CategoryClub,
				knowledge.CategoryPlacement,
				knowledge.CategoryOverview,
				knowledge.CategoryGeneral,
			} {
				if n := len(store.ByCategory(cat)); n > 0 {
					fmt.Fprintf(out, "  %-10s %d\n", cat, n)
				}
			}

			if skipped := store.Skipped(); skipped > 0 {
				color.New(color.FgYellow).Fprintf(out, "%d malformed records skipped\n", skipped)
			} else {
				color.New(color.FgGreen).Fprintln(out, "No malformed records")
			}
			return nil
		},
	}
}
