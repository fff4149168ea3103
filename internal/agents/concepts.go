package agents

import (
	"strings"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

type conceptRule struct {
	keyword string
	value   string
}

// Rules are tried in order; the first keyword found in the idea sets the field.
var (
	industryRules = []conceptRule{
		{"freelance", "freelance"},
		{"e-commerce", "ecommerce"},
		{"ecommerce", "ecommerce"},
		{"online store", "ecommerce"},
		{"shop", "ecommerce"},
		{"patient", "healthcare"},
		{"health", "healthcare"},
		{"medical", "healthcare"},
		{"fitness", "healthcare"},
		{"student", "education"},
		{"course", "education"},
		{"education", "education"},
		{"learn", "education"},
		{"payment", "fintech"},
		{"bank", "fintech"},
		{"invest", "fintech"},
		{"budget", "fintech"},
		{"saas", "saas"},
		{"b2b", "saas"},
		{"workflow", "saas"},
	}

	targetUserRules = []conceptRule{
		{"freelance", "freelancers"},
		{"small business", "small businesses"},
		{"student", "students"},
		{"teacher", "teachers"},
		{"developer", "developers"},
		{"creator", "content creators"},
		{"patient", "patients"},
		{"doctor", "healthcare providers"},
		{"seller", "online sellers"},
		{"team", "teams"},
	}

	mainProblemRules = []conceptRule{
		{"invoice", "invoice management"},
		{"payment", "payment collection"},
		{"schedul", "scheduling"},
		{"booking", "scheduling"},
		{"inventory", "inventory management"},
		{"track", "progress tracking"},
		{"communicat", "communication"},
		{"collaborat", "collaboration"},
		{"marketing", "customer acquisition"},
		{"budget", "budgeting"},
	}

	solutionRules = []conceptRule{
		{"marketplace", "marketplace"},
		{"platform", "platform"},
		{"dashboard", "dashboard"},
		{"chatbot", "AI assistant"},
		{"artificial intelligence", "AI assistant"},
		{"ai-powered", "AI assistant"},
		{"mobile app", "mobile app"},
		{"app", "app"},
		{"tool", "productivity tool"},
	}
)

// ExtractConcepts buckets a free-form idea into industry, target user, problem
// and solution by ordered substring matching. Fields with no match stay empty.
func ExtractConcepts(idea string) models.Concepts {
	text := strings.ToLower(idea)
	keywords := []string{}
	seen := map[string]bool{}

	match := func(rules []conceptRule) string {
		for _, rule := range rules {
			if strings.Contains(text, rule.keyword) {
				if !seen[rule.keyword] {
					seen[rule.keyword] = true
					keywords = append(keywords, rule.keyword)
				}
				return rule.value
			}
		}
		return ""
	}

	concepts := models.Concepts{
		Industry:    match(industryRules),
		TargetUser:  match(targetUserRules),
		MainProblem: match(mainProblemRules),
		Solution:    match(solutionRules),
	}
	concepts.Keywords = keywords
	return concepts
}

// IndustryOrDefault returns the lookup bucket for an extracted industry
func IndustryOrDefault(industry string) string {
	if _, ok := marketTable[industry]; ok && industry != "" {
		return industry
	}
	return defaultIndustry
}

// ContainsAny reports whether the lower-cased text contains one of the keywords
func ContainsAny(text string, keywords ...string) bool {
	text = strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
