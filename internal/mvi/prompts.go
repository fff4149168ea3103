package mvi

import "github.com/bilal-bim/devbrain-ai/internal/models"

const openingPrompt = "Tell me more about your idea. Who has this problem today, and how are they solving it?"

// Prompt shown to the user once the project has reached a stage
var stagePrompts = map[models.Stage]string{
	models.StageIdeaCapture:             openingPrompt,
	models.StageUserPersonaDiscovery:    "Which of these users feels the problem most? Describe the person you want to serve first.",
	models.StageCompetitiveIntelligence: "Here is who you're up against. What will make your product different from them?",
	models.StageFeaturePrioritization:   "These are the features I'd prioritize. Anything missing, or any platform you need to support?",
	models.StageTechnicalRecommendation: "Here is a stack that fits your MVP. Any technical constraints before I assemble your package?",
	models.StageContextGeneration:       "Everything is in place. Reply when you're ready and I'll generate your MVI package.",
	models.StageComplete:                "Your MVI package is complete. Export it for Cursor, GitHub, Replit, MCP or as a PDF outline.",
}

// NextPrompt returns the prompt for the given stage
func NextPrompt(stage models.Stage) string {
	if prompt, ok := stagePrompts[stage]; ok {
		return prompt
	}
	return stagePrompts[models.StageComplete]
}
