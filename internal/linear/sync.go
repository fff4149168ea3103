package linear

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

// Linear priorities: 1 urgent, 2 high, 3 medium, 4 low
const (
	priorityMustHave   = 2
	priorityNiceToHave = 4
)

// IssueCreator is the part of Client used by SyncFeatures
type IssueCreator interface {
	CreateIssue(ctx context.Context, input IssueInput) (*Issue, error)
}

// SyncFeatures creates one issue per prioritized feature of the project.
// It stops at the first failure and returns the issues created so far.
func SyncFeatures(ctx context.Context, creator IssueCreator, project *models.Project, teamID string) ([]Issue, error) {
	issues := []Issue{}
	for _, f := range project.Context.Features {
		input := IssueInput{
			TeamID:      teamID,
			Title:       f.Name,
			Description: issueDescription(project, f),
			Priority:    priorityNiceToHave,
		}
		if f.Priority == models.PriorityMustHave {
			input.Priority = priorityMustHave
		}

		issue, err := creator.CreateIssue(ctx, input)
		if err != nil {
			return issues, fmt.Errorf("failed to create issue for %q: %w", f.Name, err)
		}
		issues = append(issues, *issue)
	}

	log.Printf("📋 Created %d Linear issues for session %s", len(issues), project.ID)
	return issues, nil
}

func issueDescription(project *models.Project, f models.Feature) string {
	var sb strings.Builder
	sb.WriteString(f.Description)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "- Priority: %s\n", f.Priority)
	if f.Effort != "" {
		fmt.Fprintf(&sb, "- Effort: %s\n", f.Effort)
	}
	if f.Impact != "" {
		fmt.Fprintf(&sb, "- Impact: %s\n", f.Impact)
	}
	fmt.Fprintf(&sb, "\nFrom DevbrainAI session `%s`: %s\n", project.ID, project.Idea)
	return sb.String()
}
