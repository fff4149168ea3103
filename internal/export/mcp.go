package export

import (
	"encoding/json"
	"fmt"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

const mcpVersion = "1.0"

// MCPDocument is the JSON context bundle consumed by MCP-aware assistants
type MCPDocument struct {
	Document MCPContext        `json:"document"`
	Manifest MCPManifest       `json:"manifest"`
	Files    map[string]string `json:"files"`
}

type MCPContext struct {
	Version     string                `json:"version"`
	Project     MCPProject            `json:"project"`
	Market      models.MarketAnalysis `json:"market"`
	Personas    []models.Persona      `json:"personas"`
	Competitors []models.Competitor   `json:"competitors"`
	Features    MCPFeatures           `json:"features"`
	TechStack   models.TechStack      `json:"techStack"`
}

type MCPProject struct {
	Name     string          `json:"name"`
	Summary  string          `json:"summary"`
	Idea     string          `json:"idea"`
	Concepts models.Concepts `json:"concepts"`
	Stage    models.Stage    `json:"stage"`
	Status   string          `json:"status"`
}

type MCPFeatures struct {
	MustHave   []models.Feature `json:"mustHave"`
	NiceToHave []models.Feature `json:"niceToHave"`
}

type MCPManifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

func renderMCP(v view) (any, []File, error) {
	doc := MCPContext{
		Version: mcpVersion,
		Project: MCPProject{
			Name:     v.Name,
			Summary:  v.Summary,
			Idea:     v.Idea,
			Concepts: v.Concepts,
			Stage:    v.Step,
			Status:   v.Status,
		},
		Market:      v.Market,
		Personas:    v.Personas,
		Competitors: v.Competitors,
		Features:    MCPFeatures{MustHave: v.MustHave, NiceToHave: v.NiceToHave},
		TechStack:   v.Stack,
	}

	contextJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal context: %w", err)
	}
	personas, err := personasMarkdown(v)
	if err != nil {
		return nil, nil, err
	}
	features, err := featuresMarkdown(v)
	if err != nil {
		return nil, nil, err
	}

	files := []File{
		{Path: "context.json", Content: string(contextJSON)},
		{Path: "personas.md", Content: personas},
		{Path: "features.md", Content: features},
	}

	manifest := MCPManifest{
		Name:        v.Slug,
		Version:     mcpVersion,
		Description: v.Summary,
	}
	byPath := make(map[string]string, len(files))
	for _, f := range files {
		manifest.Resources = append(manifest.Resources, f.Path)
		byPath[f.Path] = f.Content
	}

	return MCPDocument{Document: doc, Manifest: manifest, Files: byPath}, files, nil
}
