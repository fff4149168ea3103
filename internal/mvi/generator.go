// Package mvi runs the seven-step conversation that turns a raw idea into a
// Minimum Viable Idea package.
package mvi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/bilal-bim/devbrain-ai/internal/agents"
	"github.com/bilal-bim/devbrain-ai/internal/models"
)

// ErrEmptyIdea is returned when a session is started without an idea
var ErrEmptyIdea = errors.New("idea is required")

const anonymousUser = "anonymous"

// Analysis is the first look at an idea returned when a session starts
type Analysis struct {
	Concepts       models.Concepts       `json:"concepts"`
	MarketAnalysis models.MarketAnalysis `json:"marketAnalysis"`
}

type StartResult struct {
	SessionID  string          `json:"sessionId"`
	Project    *models.Project `json:"project"`
	Analysis   Analysis        `json:"analysis"`
	NextPrompt string          `json:"nextPrompt"`
}

type TurnResult struct {
	Project    *models.Project `json:"project"`
	Result     Result          `json:"result"`
	NextPrompt string          `json:"nextPrompt"`

	// Advanced is false when the step had no handler and nothing was stored
	Advanced bool `json:"advanced"`
}

// Generator advances projects through the stage table
type Generator struct {
	repo SessionRepository
}

func NewGenerator(repo SessionRepository) *Generator {
	return &Generator{repo: repo}
}

// StartSession creates a project for idea, analyzes it and stores it
func (g *Generator) StartSession(ctx context.Context, userID, idea string) (*StartResult, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	if strings.TrimSpace(userID) == "" {
		userID = anonymousUser
	}

	project := models.NewProject(newSessionID(), userID, idea)
	concepts := agents.ExtractConcepts(idea)
	project.Context.BusinessIdea.Concepts = concepts
	project.Context.MarketAnalysis = agents.MarketFor(concepts.Industry)
	appendEntry(project, "user", idea)

	if err := g.repo.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Printf("🚀 Session %s started (industry=%q)", project.ID, concepts.Industry)

	return &StartResult{
		SessionID: project.ID,
		Project:   project,
		Analysis: Analysis{
			Concepts:       concepts,
			MarketAnalysis: project.Context.MarketAnalysis,
		},
		NextPrompt: openingPrompt,
	}, nil
}

// ProcessUserResponse records the user's answer and runs the handler for the
// project's current step, which moves the project to that step's fixed
// successor. A step with no handler, including complete, leaves the project
// untouched and returns an "unknown step" result.
func (g *Generator) ProcessUserResponse(ctx context.Context, sessionID, text string) (*TurnResult, error) {
	project, err := g.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	stage := project.CurrentStep
	handler, ok := stageHandlers[stage]
	if !ok {
		log.Printf("⚠️ Session %s has no handler for step %q", sessionID, stage)
		return &TurnResult{
			Project:    project,
			Result:     unknownStep(stage),
			NextPrompt: NextPrompt(stage),
		}, nil
	}

	appendEntry(project, "user", text)
	result := handler.run(project, text)
	project.CurrentStep = handler.next
	project.UpdatedAt = time.Now().UTC()

	if err := g.repo.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Printf("➡️ Session %s: %s -> %s", sessionID, stage, handler.next)

	return &TurnResult{
		Project:    project,
		Result:     result,
		NextPrompt: NextPrompt(handler.next),
		Advanced:   true,
	}, nil
}

// Session returns the stored project
func (g *Generator) Session(ctx context.Context, sessionID string) (*models.Project, error) {
	return g.repo.Get(ctx, sessionID)
}

// Delete removes a session
func (g *Generator) Delete(ctx context.Context, sessionID string) error {
	if _, err := g.repo.Get(ctx, sessionID); err != nil {
		return err
	}
	return g.repo.Delete(ctx, sessionID)
}

// AppendAssistant records an assistant reply in the session history
func (g *Generator) AppendAssistant(ctx context.Context, sessionID, text string) (*models.Project, error) {
	return g.appendTurn(ctx, sessionID, "assistant", text)
}

// AppendUser records a user message without running a stage, e.g. a
// follow-up question on a completed session
func (g *Generator) AppendUser(ctx context.Context, sessionID, text string) (*models.Project, error) {
	return g.appendTurn(ctx, sessionID, "user", text)
}

func (g *Generator) appendTurn(ctx context.Context, sessionID, role, text string) (*models.Project, error) {
	project, err := g.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	appendEntry(project, role, text)
	if err := g.repo.Put(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return project, nil
}

// Save stores a project that was modified outside the stage table
func (g *Generator) Save(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now().UTC()
	if err := g.repo.Put(ctx, project); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func newSessionID() string {
	return "mvi_" + strings.ToLower(ulid.Make().String())
}

func appendEntry(project *models.Project, role, content string) {
	project.Context.ConversationHistory = append(project.Context.ConversationHistory, models.ConversationEntry{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}
