package mvi

import (
	"fmt"
	"strings"
	"time"

	"github.com/bilal-bim/devbrain-ai/internal/agents"
	"github.com/bilal-bim/devbrain-ai/internal/models"
)

// Visualization tells the web client which panel to render for a result
type Visualization struct {
	Type    string       `json:"type"`
	Stage   models.Stage `json:"stage"`
	UIStage string       `json:"uiStage"`
}

// Result is what one stage handler produced for a turn
type Result struct {
	Message       string        `json:"message"`
	Data          any           `json:"data"`
	Visualization Visualization `json:"visualization"`
}

// stageHandler processes the user's answer at one stage. next is fixed per
// stage; the handler never decides where the conversation goes.
type stageHandler struct {
	next models.Stage
	run  func(project *models.Project, text string) Result
}

var stageHandlers = map[models.Stage]stageHandler{
	models.StageIdeaCapture:             {next: models.StageUserPersonaDiscovery, run: refineIdea},
	models.StageUserPersonaDiscovery:    {next: models.StageCompetitiveIntelligence, run: discoverPersonas},
	models.StageCompetitiveIntelligence: {next: models.StageFeaturePrioritization, run: analyzeCompetitors},
	models.StageFeaturePrioritization:   {next: models.StageTechnicalRecommendation, run: prioritizeFeatures},
	models.StageTechnicalRecommendation: {next: models.StageContextGeneration, run: recommendStack},
	models.StageContextGeneration:       {next: models.StageComplete, run: generatePackage},
}

func visualize(kind string, stage models.Stage) Visualization {
	return Visualization{Type: kind, Stage: stage, UIStage: stage.UIStage()}
}

func unknownStep(stage models.Stage) Result {
	return Result{
		Message:       fmt.Sprintf("Unknown step: %s", stage),
		Visualization: visualize("none", stage),
	}
}

func refineIdea(project *models.Project, text string) Result {
	idea := &project.Context.BusinessIdea
	idea.Refined = strings.TrimSpace(idea.Original + "\n" + text)
	idea.Concepts = agents.ExtractConcepts(idea.Refined)
	project.Context.MarketAnalysis = agents.MarketFor(idea.Concepts.Industry)

	return Result{
		Message: "Idea refined",
		Data: map[string]any{
			"refined":        idea.Refined,
			"concepts":       idea.Concepts,
			"marketAnalysis": project.Context.MarketAnalysis,
		},
		Visualization: visualize("market_analysis", models.StageIdeaCapture),
	}
}

func discoverPersonas(project *models.Project, _ string) Result {
	personas := agents.PersonasFor(project.Context.BusinessIdea.Concepts.Industry)
	project.Context.UserPersonas = personas

	return Result{
		Message:       fmt.Sprintf("Identified %d user personas", len(personas)),
		Data:          map[string]any{"personas": personas},
		Visualization: visualize("persona_cards", models.StageUserPersonaDiscovery),
	}
}

func analyzeCompetitors(project *models.Project, _ string) Result {
	competitors := agents.CompetitorsFor(project.Context.BusinessIdea.Concepts.Industry)
	project.Context.Competitors = competitors

	return Result{
		Message:       fmt.Sprintf("Mapped %d competitors", len(competitors)),
		Data:          map[string]any{"competitors": competitors},
		Visualization: visualize("competitor_matrix", models.StageCompetitiveIntelligence),
	}
}

func prioritizeFeatures(project *models.Project, text string) Result {
	features := agents.FeaturesFor(project.Context.BusinessIdea.Concepts.Industry)
	signal := " " + project.Idea + " " + text + " "

	if agents.ContainsAny(signal, "mobile", "ios", "android", "phone") {
		features = append(features, models.Feature{
			Name:        "Mobile App",
			Description: "Native mobile experience for on-the-go use",
			Priority:    models.PriorityNiceToHave,
			Effort:      "high",
			Impact:      "medium",
		})
	}
	if agents.ContainsAny(signal, "integrat", " api", "sync", "zapier", "slack") {
		features = append(features, models.Feature{
			Name:        "Third-Party Integrations",
			Description: "Connect with the tools users already rely on",
			Priority:    models.PriorityNiceToHave,
			Effort:      "medium",
			Impact:      "medium",
		})
	}
	if agents.ContainsAny(signal, " ai ", " ai-", "artificial intelligence", "machine learning", "automat", "smart") {
		features = append(features, models.Feature{
			Name:        "AI Assistant",
			Description: "Automated suggestions based on the user's own data",
			Priority:    models.PriorityNiceToHave,
			Effort:      "high",
			Impact:      "high",
		})
	}
	project.Context.Features = features

	mustHave, niceToHave := project.FeaturesByPriority()
	return Result{
		Message: fmt.Sprintf("Prioritized %d must-have and %d nice-to-have features", len(mustHave), len(niceToHave)),
		Data: map[string]any{
			"mustHave":   mustHave,
			"niceToHave": niceToHave,
		},
		Visualization: visualize("feature_priority", models.StageFeaturePrioritization),
	}
}

// DefaultTechStack is recommended when no keyword picks a variant
func DefaultTechStack() models.TechStack {
	return models.TechStack{
		Frontend: "React",
		Backend:  "Node.js",
		Database: "PostgreSQL",
		Hosting:  "Vercel",
		Extras:   []string{"Tailwind CSS", "Prisma"},
	}
}

func recommendStack(project *models.Project, text string) Result {
	stack := DefaultTechStack()
	signal := " " + project.Idea + " " + text + " "

	if agents.ContainsAny(signal, "mobile", "ios", "android") {
		stack.Frontend = "React Native (Expo)"
		stack.Hosting = "Expo EAS + Render"
	}
	if agents.ContainsAny(signal, "python", "django", "machine learning", " ml ", "data science") {
		stack.Backend = "Python (FastAPI)"
		if stack.Hosting == "Vercel" {
			stack.Hosting = "Render"
		}
	}
	if agents.ContainsAny(signal, "serverless", "lambda") {
		stack.Backend += " on AWS Lambda"
		stack.Database = "DynamoDB"
		stack.Hosting = "AWS"
	}
	if agents.ContainsAny(signal, "payment", "invoice", "billing", "subscription") {
		stack.Extras = append(stack.Extras, "Stripe")
	}
	project.Context.TechStack = &stack

	return Result{
		Message:       "Recommended a tech stack",
		Data:          map[string]any{"techStack": stack},
		Visualization: visualize("tech_stack", models.StageTechnicalRecommendation),
	}
}

func generatePackage(project *models.Project, _ string) Result {
	ctx := project.Context
	mustHave, niceToHave := project.FeaturesByPriority()

	stack := DefaultTechStack()
	if ctx.TechStack != nil {
		stack = *ctx.TechStack
	}

	pkg := &models.MVIPackage{
		ProjectName:    projectName(project),
		Summary:        projectSummary(project),
		BusinessIdea:   ctx.BusinessIdea,
		MarketAnalysis: ctx.MarketAnalysis,
		UserPersonas:   ctx.UserPersonas,
		Competitors:    ctx.Competitors,
		MustHave:       mustHave,
		NiceToHave:     niceToHave,
		TechStack:      stack,
		ExportFormats:  append([]string{}, models.ExportFormats...),
		GeneratedAt:    time.Now().UTC(),
	}
	project.Context.MVIPackage = pkg
	project.Status = models.StatusComplete

	return Result{
		Message:       "MVI package generated",
		Data:          map[string]any{"mviPackage": pkg},
		Visualization: visualize("mvi_summary", models.StageContextGeneration),
	}
}

func projectName(project *models.Project) string {
	concepts := project.Context.BusinessIdea.Concepts
	var parts []string
	for _, part := range []string{concepts.Industry, concepts.MainProblem, concepts.Solution} {
		if part != "" {
			parts = append(parts, titleCase(part))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	words := strings.Fields(project.Idea)
	if len(words) > 5 {
		words = words[:5]
	}
	if len(words) == 0 {
		return "Untitled Project"
	}
	return titleCase(strings.Join(words, " "))
}

func projectSummary(project *models.Project) string {
	concepts := project.Context.BusinessIdea.Concepts
	solution := orDefault(concepts.Solution, "product")
	user := orDefault(concepts.TargetUser, "early adopters")
	problem := orDefault(concepts.MainProblem, "their core workflow")
	return fmt.Sprintf("A %s that helps %s with %s.", solution, user, problem)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
