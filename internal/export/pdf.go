package export

import (
	"fmt"
	"strings"
)

// Outline is a titled document ready for a PDF renderer
type Outline struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

func renderPDF(v view) (any, []File, error) {
	personas, err := personasMarkdown(v)
	if err != nil {
		return nil, nil, err
	}
	features, err := featuresMarkdown(v)
	if err != nil {
		return nil, nil, err
	}
	stack, err := techStackMarkdown(v)
	if err != nil {
		return nil, nil, err
	}

	outline := Outline{
		Title: v.Name + ": Minimum Viable Idea",
		Sections: []Section{
			{Heading: "Executive Summary", Body: v.Summary},
			{Heading: "Market Opportunity", Body: marketBody(v)},
			{Heading: "User Personas", Body: stripTitle(personas)},
			{Heading: "Competitive Landscape", Body: competitorBody(v)},
			{Heading: "MVP Features", Body: stripTitle(features)},
			{Heading: "Technical Plan", Body: stripTitle(stack)},
		},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", outline.Title)
	for _, s := range outline.Sections {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", s.Heading, strings.TrimSpace(s.Body))
	}

	return outline, []File{{Path: "outline.md", Content: sb.String()}}, nil
}

func marketBody(v view) string {
	if v.Market.TAM == "" {
		return "Market analysis not available yet."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total addressable market of %s growing %s a year.\n", v.Market.TAM, v.Market.GrowthRate)
	for _, s := range v.Market.Segments {
		fmt.Fprintf(&sb, "\n- %s (%s): %s", s.Name, s.Size, s.Description)
	}
	return sb.String()
}

func competitorBody(v view) string {
	if len(v.Competitors) == 0 {
		return "No competitors analyzed yet."
	}
	var sb strings.Builder
	for _, c := range v.Competitors {
		fmt.Fprintf(&sb, "- %s: %g%% market share", c.Name, c.MarketShare)
		if len(c.Weaknesses) > 0 {
			fmt.Fprintf(&sb, "; weak on %s", strings.Join(c.Weaknesses, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// stripTitle drops the leading "# ..." line of a rendered markdown document
func stripTitle(md string) string {
	if strings.HasPrefix(md, "# ") {
		if i := strings.Index(md, "\n"); i >= 0 {
			return strings.TrimSpace(md[i+1:])
		}
		return ""
	}
	return strings.TrimSpace(md)
}
