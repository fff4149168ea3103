package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bilal-bim/devbrain-ai/internal/agents"
	"github.com/bilal-bim/devbrain-ai/internal/models"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <idea>",
		Short: "Extract concepts and reference market data from an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idea := strings.Join(args, " ")
			concepts := agents.ExtractConcepts(idea)
			market := agents.MarketFor(concepts.Industry)
			fmt.Fprint(cmd.OutOrStdout(), renderAnalysis(concepts, market))
			return nil
		},
	}
}

func renderAnalysis(c models.Concepts, m models.MarketAnalysis) string {
	var sb strings.Builder

	sb.WriteString(color.CyanString("Concepts\n"))
	fmt.Fprintf(&sb, "  Industry:     %s\n", c.Industry)
	fmt.Fprintf(&sb, "  Target user:  %s\n", c.TargetUser)
	fmt.Fprintf(&sb, "  Main problem: %s\n", c.MainProblem)
	fmt.Fprintf(&sb, "  Solution:     %s\n", c.Solution)
	if len(c.Keywords) > 0 {
		fmt.Fprintf(&sb, "  Keywords:     %s\n", strings.Join(c.Keywords, ", "))
	}

	sb.WriteString(color.CyanString("\nMarket\n"))
	fmt.Fprintf(&sb, "  TAM:    %s\n", color.GreenString(m.TAM))
	fmt.Fprintf(&sb, "  Growth: %s\n", color.GreenString(m.GrowthRate))
	for _, seg := range m.Segments {
		fmt.Fprintf(&sb, "  - %s %s\n", seg.Name, color.YellowString(seg.Size))
	}
	return sb.String()
}
