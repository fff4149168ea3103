package agents

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

const baseSystemPrompt = `You are DevbrainAI, a startup advisor that turns a raw business idea into a Minimum Viable Idea package.
Be concise, concrete and encouraging. When you mention data, use these exact formats so it can be charted:
- Market size: "$1.2B total addressable market"
- Growth: "15% annual growth"
- Segments, one per line: "• Segment Name: $400M"
- Personas: a line "Persona: Name" followed by "Size: 2.3M", "Income: $65K" and "Pain: 73% description"
- Competitors, one per line: "Name: 35% market share"
- Features under the headings "Must-have:" and "Nice-to-have:" as bullet lists`

var stageGuidance = map[models.Stage]string{
	models.StageIdeaCapture:             "Summarize the idea and market in two short paragraphs, then ask who exactly has this problem.",
	models.StageUserPersonaDiscovery:    "Describe two or three user personas for this idea, then ask which persona the user wants to serve first.",
	models.StageCompetitiveIntelligence: "Analyze the main competitors and their market share, then ask what will make this product different.",
	models.StageFeaturePrioritization:   "Propose must-have and nice-to-have features for the MVP, then ask about platform and technical constraints.",
	models.StageTechnicalRecommendation: "Recommend a pragmatic tech stack for the MVP, then ask if the user is ready to generate the final package.",
	models.StageContextGeneration:       "Summarize the full MVI package and suggest which export format to use next.",
	models.StageComplete:                "The MVI package is complete. Answer follow-up questions about it.",
}

var fallbackReplies = map[models.Stage]string{
	models.StageIdeaCapture:             "Great idea! Let's refine it. Who is the person that feels this problem most, and how do they solve it today?",
	models.StageUserPersonaDiscovery:    "Thanks! I've sketched the core user personas for your idea. Which of them should we focus on first?",
	models.StageCompetitiveIntelligence: "I've mapped the main competitors in your space. What will make your product stand out from them?",
	models.StageFeaturePrioritization:   "Here are the must-have and nice-to-have features for your MVP. Any platform or technical constraints I should know about?",
	models.StageTechnicalRecommendation: "I've put together a recommended tech stack. Ready to generate your MVI package?",
	models.StageContextGeneration:       "Your MVI package is ready! Export it for Cursor, GitHub, Replit, MCP or as a PDF outline.",
	models.StageComplete:                "Your MVI package is complete. You can export it in any supported format.",
}

// Advisor produces the conversational replies for each stage
type Advisor struct {
	client        LLMClient
	model         string
	historyTokens int

	tokenizerOnce sync.Once
	tokenizer     *Tokenizer
}

// NewAdvisor wraps an LLM client. A nil client makes every reply a fallback.
func NewAdvisor(client LLMClient, model string, historyTokens int) *Advisor {
	return &Advisor{
		client:        client,
		model:         model,
		historyTokens: historyTokens,
	}
}

// Configured reports whether a provider is available
func (a *Advisor) Configured() bool {
	return a.client != nil
}

// ProviderName returns the provider in use, or "none"
func (a *Advisor) ProviderName() string {
	if a.client == nil {
		return "none"
	}
	return a.client.Name()
}

// FallbackReply is the canned reply used when the provider fails
func FallbackReply(stage models.Stage) string {
	if reply, ok := fallbackReplies[stage]; ok {
		return reply
	}
	return fallbackReplies[models.StageComplete]
}

// StageReply asks the provider to respond to the latest turn of the project.
// Provider failures are logged and replaced by the stage's canned reply; the
// boolean reports whether the text came from the provider.
func (a *Advisor) StageReply(ctx context.Context, project *models.Project) (string, bool) {
	if a.client == nil {
		return FallbackReply(project.CurrentStep), false
	}

	history := make([]Message, 0, len(project.Context.ConversationHistory))
	for _, entry := range project.Context.ConversationHistory {
		history = append(history, Message{Role: entry.Role, Content: entry.Content})
	}
	history = a.trim(history)

	reply, err := a.client.Complete(ctx, a.stagePrompt(project), history)
	if err != nil {
		log.Printf("❌ %s reply failed for session %s: %v", a.client.Name(), project.ID, err)
		return FallbackReply(project.CurrentStep), false
	}
	return reply, true
}

// Chat forwards a single message to the provider with the fixed system prompt
func (a *Advisor) Chat(ctx context.Context, message, extraContext string) (string, error) {
	if a.client == nil {
		return "", ErrNoProvider
	}

	system := baseSystemPrompt
	if strings.TrimSpace(extraContext) != "" {
		system += "\n\nContext from the user's project:\n" + extraContext
	}

	reply, err := a.client.Complete(ctx, system, []Message{{Role: "user", Content: message}})
	if err != nil {
		return "", fmt.Errorf("chat with %s: %w", a.client.Name(), err)
	}
	return reply, nil
}

func (a *Advisor) stagePrompt(project *models.Project) string {
	var sb strings.Builder
	sb.WriteString(baseSystemPrompt)
	sb.WriteString("\n\nCurrent step: ")
	sb.WriteString(project.CurrentStep.String())
	sb.WriteString("\n")
	if guidance, ok := stageGuidance[project.CurrentStep]; ok {
		sb.WriteString(guidance)
		sb.WriteString("\n")
	}

	concepts := project.Context.BusinessIdea.Concepts
	fmt.Fprintf(&sb, "\nIdea: %s\n", project.Context.BusinessIdea.Original)
	if concepts.Industry != "" {
		fmt.Fprintf(&sb, "Industry: %s\n", concepts.Industry)
	}
	if concepts.TargetUser != "" {
		fmt.Fprintf(&sb, "Target user: %s\n", concepts.TargetUser)
	}
	if market := project.Context.MarketAnalysis; market.TAM != "" {
		fmt.Fprintf(&sb, "Reference market: %s TAM, %s growth\n", market.TAM, market.GrowthRate)
	}
	return sb.String()
}

func (a *Advisor) trim(history []Message) []Message {
	if a.historyTokens <= 0 {
		return history
	}
	a.tokenizerOnce.Do(func() {
		a.tokenizer = NewTokenizerForModel(a.model)
	})
	return a.tokenizer.TrimHistory(history, a.historyTokens)
}
