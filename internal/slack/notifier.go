package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

// Notifier announces finished MVI packages in a channel
type Notifier struct {
	client    *Client
	channelID string
}

func NewNotifier(client *Client, channelID string) *Notifier {
	return &Notifier{client: client, channelID: channelID}
}

// NotifyComplete posts a summary of the project's MVI package
func (n *Notifier) NotifyComplete(ctx context.Context, project *models.Project) error {
	pkg := project.Context.MVIPackage
	if pkg == nil {
		return fmt.Errorf("session %s has no MVI package", project.ID)
	}

	text := fmt.Sprintf("MVI package ready: %s", pkg.ProjectName)
	if err := n.client.SendMessageWithBlocks(ctx, n.channelID, text, CompletionBlocks(project)); err != nil {
		return fmt.Errorf("failed to post completion for %s: %w", project.ID, err)
	}
	return nil
}

// CompletionBlocks renders the summary message for a finished project
func CompletionBlocks(project *models.Project) []slack.Block {
	pkg := project.Context.MVIPackage

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "🚀 "+pkg.ProjectName, true, false),
	)
	summary := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, pkg.Summary, false, false),
		nil, nil,
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Market*\n"+orDash(pkg.MarketAnalysis.TAM), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Growth*\n"+orDash(pkg.MarketAnalysis.GrowthRate), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Personas*\n%d", len(pkg.UserPersonas)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Competitors*\n%d", len(pkg.Competitors)), false, false),
	}
	facts := slack.NewSectionBlock(nil, fields, nil)

	names := make([]string, 0, len(pkg.MustHave))
	for _, f := range pkg.MustHave {
		names = append(names, "• "+f.Name)
	}
	mustHave := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "*Must-have features*\n"+orDash(strings.Join(names, "\n")), false, false),
		nil, nil,
	)

	stack := pkg.TechStack
	footer := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Stack: %s / %s / %s on %s · session `%s`", stack.Frontend, stack.Backend, stack.Database, stack.Hosting, project.ID),
			false, false),
	)

	return []slack.Block{header, summary, facts, slack.NewDividerBlock(), mustHave, footer}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
