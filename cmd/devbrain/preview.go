package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/bilal-bim/devbrain-ai/internal/export"
)

func previewCmd() *cobra.Command {
	var (
		idea      string
		sessionID string
		answers   []string
		width     int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the MVI document outline in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(cmd.Context(), sessionID, idea, answers)
			if err != nil {
				return err
			}
			bundle, err := export.Export(project, export.FormatPDF)
			if err != nil {
				return err
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return err
			}
			for _, f := range bundle.Files {
				out, err := r.Render(f.Content)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&idea, "idea", "", "Business idea to run through every stage")
	cmd.Flags().StringVar(&sessionID, "session", "", "Stored session ID to preview")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "Scripted answer for the next stage (repeatable)")
	cmd.Flags().IntVarP(&width, "width", "w", 100, "Word wrap width")
	cmd.MarkFlagsMutuallyExclusive("idea", "session")
	cmd.MarkFlagsOneRequired("idea", "session")

	return cmd
}
