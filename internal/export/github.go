package export

import (
	"encoding/json"
	"fmt"
)

// GitHubRepo describes the generated repository skeleton
type GitHubRepo struct {
	Repository  string   `json:"repository"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
}

type packageJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Private      bool              `json:"private"`
	Scripts      map[string]string `json:"scripts"`
	Keywords     []string          `json:"keywords"`
	Dependencies map[string]string `json:"dependencies"`
}

var readmeTmpl = mustTemplate("readme", `# {{.Name}}

{{.Summary}}

## The idea

{{.Idea}}
{{if .Market.TAM}}
## Market

- Total addressable market: {{.Market.TAM}}
- Annual growth: {{.Market.GrowthRate}}
{{range .Market.Segments}}- {{.Name}}: {{.Size}}
{{end}}{{end}}
## Competitors
{{range .Competitors}}
- **{{.Name}}** ({{.MarketShare}}% market share){{if .Pricing}}, {{.Pricing}}{{end}}{{end}}{{if not .Competitors}}
_No competitors analyzed yet._{{end}}

## MVP scope
{{range .MustHave}}
- [ ] {{.Name}}{{end}}{{if not .MustHave}}
_No features prioritized yet._{{end}}

## Stack

{{.Stack.Frontend}} · {{.Stack.Backend}} · {{.Stack.Database}} · {{.Stack.Hosting}}

See [docs/PERSONAS.md](docs/PERSONAS.md), [docs/FEATURES.md](docs/FEATURES.md) and [docs/TECH_STACK.md](docs/TECH_STACK.md).
`)

const gitignore = `node_modules/
dist/
build/
.env
.env.local
*.log
.DS_Store
coverage/
`

func renderGitHub(v view) (any, []File, error) {
	readme, err := execute(readmeTmpl, v)
	if err != nil {
		return nil, nil, err
	}
	pkg, err := json.MarshalIndent(newPackageJSON(v), "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal package.json: %w", err)
	}
	personas, err := personasMarkdown(v)
	if err != nil {
		return nil, nil, err
	}
	features, err := featuresMarkdown(v)
	if err != nil {
		return nil, nil, err
	}
	stack, err := techStackMarkdown(v)
	if err != nil {
		return nil, nil, err
	}

	files := []File{
		{Path: "README.md", Content: readme},
		{Path: "package.json", Content: string(pkg) + "\n"},
		{Path: "docs/PERSONAS.md", Content: personas},
		{Path: "docs/FEATURES.md", Content: features},
		{Path: "docs/TECH_STACK.md", Content: stack},
		{Path: ".gitignore", Content: gitignore},
	}

	repo := GitHubRepo{Repository: v.Slug, Description: v.Summary}
	for _, f := range files {
		repo.Files = append(repo.Files, f.Path)
	}
	return repo, files, nil
}

func newPackageJSON(v view) packageJSON {
	deps := map[string]string{}
	switch v.Stack.Frontend {
	case "React":
		deps["react"] = "^18.3.0"
		deps["react-dom"] = "^18.3.0"
	}
	if v.Stack.Backend == "Node.js" {
		deps["express"] = "^4.19.0"
	}
	if v.Stack.Database == "PostgreSQL" {
		deps["pg"] = "^8.11.0"
	}

	keywords := orEmpty(append([]string{}, v.Concepts.Keywords...))
	return packageJSON{
		Name:        v.Slug,
		Version:     "0.1.0",
		Description: v.Summary,
		Private:     true,
		Scripts: map[string]string{
			"dev":   "node server/index.js",
			"build": "echo \"add a build step\"",
			"test":  "echo \"no tests yet\"",
		},
		Keywords:     keywords,
		Dependencies: deps,
	}
}
