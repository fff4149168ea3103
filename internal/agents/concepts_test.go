package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractConcepts(t *testing.T) {
	tests := []struct {
		name        string
		idea        string
		industry    string
		targetUser  string
		mainProblem string
		solution    string
	}{
		{
			name:        "freelance invoicing",
			idea:        "I want an app for freelance invoice management",
			industry:    "freelance",
			targetUser:  "freelancers",
			mainProblem: "invoice management",
			solution:    "app",
		},
		{
			name:        "ecommerce inventory",
			idea:        "A dashboard for small business E-Commerce inventory",
			industry:    "ecommerce",
			targetUser:  "small businesses",
			mainProblem: "inventory management",
			solution:    "dashboard",
		},
		{
			name:        "health booking",
			idea:        "Booking platform for patients",
			industry:    "healthcare",
			targetUser:  "patients",
			mainProblem: "scheduling",
			solution:    "platform",
		},
		{
			name: "nothing matches",
			idea: "Something completely different",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractConcepts(tc.idea)
			assert.Equal(t, tc.industry, got.Industry)
			assert.Equal(t, tc.targetUser, got.TargetUser)
			assert.Equal(t, tc.mainProblem, got.MainProblem)
			assert.Equal(t, tc.solution, got.Solution)
		})
	}
}

func TestExtractConceptsIsDeterministic(t *testing.T) {
	idea := "I want an app for freelance invoice management"

	first := ExtractConcepts(idea)
	second := ExtractConcepts(idea)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"freelance", "invoice", "app"}, first.Keywords)
}

func TestExtractConceptsEmptyKeywords(t *testing.T) {
	got := ExtractConcepts("")
	require.NotNil(t, got.Keywords)
	assert.Empty(t, got.Keywords)
}

func TestMarketFor(t *testing.T) {
	freelance := MarketFor("freelance")
	assert.Equal(t, "$1.2T", freelance.TAM)
	assert.Equal(t, "15%", freelance.GrowthRate)
	assert.Len(t, freelance.Segments, 3)

	fallback := MarketFor("")
	assert.Equal(t, marketTable[defaultIndustry].TAM, fallback.TAM)
	assert.Equal(t, MarketFor("underwater basket weaving"), fallback)
}

func TestReferenceTablesReturnCopies(t *testing.T) {
	personas := PersonasFor("freelance")
	personas[0].Name = "changed"
	personas[0].PainPoints[0].Severity = 1

	fresh := PersonasFor("freelance")
	assert.Equal(t, "Creative Freelancer", fresh[0].Name)
	assert.Equal(t, 73, fresh[0].PainPoints[0].Severity)

	segments := MarketFor("freelance").Segments
	segments[0].Name = "changed"
	assert.Equal(t, "Creative Freelancers", MarketFor("freelance").Segments[0].Name)
}

func TestReferenceTablesFallBackToDefault(t *testing.T) {
	assert.Equal(t, PersonasFor(defaultIndustry), PersonasFor("fintech"))
	assert.Equal(t, CompetitorsFor(defaultIndustry), CompetitorsFor("saas"))
	assert.Equal(t, FeaturesFor(defaultIndustry), FeaturesFor("healthcare"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("We need an iOS and Android MOBILE app", "mobile"))
	assert.False(t, ContainsAny("web only", "mobile", "ios"))
}
