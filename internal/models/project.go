package models

import (
	"time"
)

// Project is the conversation state of one MVI session
type Project struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Idea        string         `json:"idea"`
	CurrentStep Stage          `json:"currentStep"`
	Status      string         `json:"status"` // "analyzing", "complete"
	Context     ProjectContext `json:"context"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

const (
	StatusAnalyzing = "analyzing"
	StatusComplete  = "complete"
)

// ProjectContext accumulates everything the stages learn about the idea
type ProjectContext struct {
	BusinessIdea        BusinessIdea        `json:"businessIdea"`
	MarketAnalysis      MarketAnalysis      `json:"marketAnalysis"`
	UserPersonas        []Persona           `json:"userPersonas"`
	Competitors         []Competitor        `json:"competitors"`
	Features            []Feature           `json:"features"`
	TechStack           *TechStack          `json:"techStack,omitempty"`
	ConversationHistory []ConversationEntry `json:"conversationHistory"`
	MVIPackage          *MVIPackage         `json:"mviPackage,omitempty"`
}

type BusinessIdea struct {
	Original string   `json:"original"`
	Refined  string   `json:"refined,omitempty"`
	Concepts Concepts `json:"concepts"`
}

// Concepts is the keyword bucketing of an idea
type Concepts struct {
	Industry    string   `json:"industry"`
	TargetUser  string   `json:"targetUser"`
	MainProblem string   `json:"mainProblem"`
	Solution    string   `json:"solution"`
	Keywords    []string `json:"keywords"`
}

type MarketAnalysis struct {
	TAM        string          `json:"tam"`
	GrowthRate string          `json:"growthRate"`
	Segments   []MarketSegment `json:"segments"`
}

type MarketSegment struct {
	Name        string `json:"name"`
	Size        string `json:"size"`
	Description string `json:"description"`
}

type Persona struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Size        string      `json:"size"`
	Income      string      `json:"income"`
	PainPoints  []PainPoint `json:"painPoints"`
	Goals       []string    `json:"goals"`
}

type PainPoint struct {
	Description string `json:"description"`
	Severity    int    `json:"severity"` // percent of the persona reporting it
}

type Competitor struct {
	Name        string   `json:"name"`
	MarketShare float64  `json:"marketShare"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Pricing     string   `json:"pricing"`
}

// ExportFormats lists the bundle formats a finished package can be exported to
var ExportFormats = []string{"mcp", "cursor", "github", "replit", "pdf"}

const (
	PriorityMustHave   = "must-have"
	PriorityNiceToHave = "nice-to-have"
)

type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Effort      string `json:"effort"` // "low", "medium", "high"
	Impact      string `json:"impact"`
}

type TechStack struct {
	Frontend string   `json:"frontend"`
	Backend  string   `json:"backend"`
	Database string   `json:"database"`
	Hosting  string   `json:"hosting"`
	Extras   []string `json:"extras"`
}

// ConversationEntry is one turn of the session transcript
type ConversationEntry struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user", "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MVIPackage is the combined, export-ready result of a finished session
type MVIPackage struct {
	ProjectName    string         `json:"projectName"`
	Summary        string         `json:"summary"`
	BusinessIdea   BusinessIdea   `json:"businessIdea"`
	MarketAnalysis MarketAnalysis `json:"marketAnalysis"`
	UserPersonas   []Persona      `json:"userPersonas"`
	Competitors    []Competitor   `json:"competitors"`
	MustHave       []Feature      `json:"mustHave"`
	NiceToHave     []Feature      `json:"niceToHave"`
	TechStack      TechStack      `json:"techStack"`
	ExportFormats  []string       `json:"exportFormats"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// NewProject creates a project at the first stage
func NewProject(id, userID, idea string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:          id,
		UserID:      userID,
		Idea:        idea,
		CurrentStep: StageIdeaCapture,
		Status:      StatusAnalyzing,
		Context: ProjectContext{
			BusinessIdea:        BusinessIdea{Original: idea},
			UserPersonas:        []Persona{},
			Competitors:         []Competitor{},
			Features:            []Feature{},
			ConversationHistory: []ConversationEntry{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Summary is the small project descriptor returned by the API
type Summary struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CurrentStep Stage  `json:"currentStep"`
}

func (p *Project) Summary() Summary {
	return Summary{ID: p.ID, Status: p.Status, CurrentStep: p.CurrentStep}
}

// FeaturesByPriority splits the feature list into must-have and nice-to-have
func (p *Project) FeaturesByPriority() (mustHave, niceToHave []Feature) {
	mustHave = []Feature{}
	niceToHave = []Feature{}
	for _, f := range p.Context.Features {
		if f.Priority == PriorityMustHave {
			mustHave = append(mustHave, f)
		} else {
			niceToHave = append(niceToHave, f)
		}
	}
	return mustHave, niceToHave
}
