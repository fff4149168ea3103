// Package export renders a project's accumulated context into file bundles
// for other tools. Nothing here touches the filesystem.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatMCP    = "mcp"
	FormatCursor = "cursor"
	FormatGitHub = "github"
	FormatReplit = "replit"
	FormatPDF    = "pdf"
)

// Fallbacks for stack fields the conversation never filled in
const (
	defaultFrontend = "React"
	defaultBackend  = "Node.js"
	defaultDatabase = "PostgreSQL"
	defaultHosting  = "Vercel"
)

// File is one generated file of a bundle
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Bundle is the result of exporting a project in one format
type Bundle struct {
	Format string `json:"format"`
	Data   any    `json:"data"`
	Files  []File `json:"files"`
}

type renderer func(v view) (any, []File, error)

var renderers = map[string]renderer{
	FormatMCP:    renderMCP,
	FormatCursor: renderCursor,
	FormatGitHub: renderGitHub,
	FormatReplit: renderReplit,
	FormatPDF:    renderPDF,
}

// Export renders project in the given format
func Export(project *models.Project, format string) (*Bundle, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	render, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	data, files, err := render(newView(project))
	if err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}
	return &Bundle{Format: format, Data: data, Files: files}, nil
}

// Supported reports whether format can be exported
func Supported(format string) bool {
	_, ok := renderers[strings.ToLower(strings.TrimSpace(format))]
	return ok
}

// view is the project flattened for templates, with every fallback applied
type view struct {
	Name        string
	Slug        string
	Summary     string
	Idea        string
	Concepts    models.Concepts
	Market      models.MarketAnalysis
	Personas    []models.Persona
	Competitors []models.Competitor
	MustHave    []models.Feature
	NiceToHave  []models.Feature
	Stack       models.TechStack
	Step        models.Stage
	Status      string
}

func newView(p *models.Project) view {
	ctx := p.Context
	mustHave, niceToHave := p.FeaturesByPriority()

	v := view{
		Idea:        firstNonEmpty(ctx.BusinessIdea.Refined, ctx.BusinessIdea.Original, p.Idea),
		Concepts:    ctx.BusinessIdea.Concepts,
		Market:      ctx.MarketAnalysis,
		Personas:    orEmpty(ctx.UserPersonas),
		Competitors: orEmpty(ctx.Competitors),
		MustHave:    mustHave,
		NiceToHave:  niceToHave,
		Step:        p.CurrentStep,
		Status:      p.Status,
	}
	if v.Market.Segments == nil {
		v.Market.Segments = []models.MarketSegment{}
	}

	if pkg := ctx.MVIPackage; pkg != nil {
		v.Name = pkg.ProjectName
		v.Summary = pkg.Summary
	}
	if v.Name == "" {
		v.Name = nameFromIdea(p.Idea)
	}
	if v.Summary == "" {
		v.Summary = firstNonEmpty(ctx.BusinessIdea.Original, p.Idea, "A new product idea.")
	}
	v.Slug = slugify(v.Name)

	if ctx.TechStack != nil {
		v.Stack = *ctx.TechStack
	}
	v.Stack.Frontend = firstNonEmpty(v.Stack.Frontend, defaultFrontend)
	v.Stack.Backend = firstNonEmpty(v.Stack.Backend, defaultBackend)
	v.Stack.Database = firstNonEmpty(v.Stack.Database, defaultDatabase)
	v.Stack.Hosting = firstNonEmpty(v.Stack.Hosting, defaultHosting)
	v.Stack.Extras = orEmpty(v.Stack.Extras)
	return v
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

func execute(t *template.Template, v any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, v); err != nil {
		return "", fmt.Errorf("execute %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "mvi-project"
	}
	return slug
}

func nameFromIdea(idea string) string {
	words := strings.Fields(idea)
	if len(words) == 0 {
		return "Untitled Project"
	}
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
