package export

import "strings"

// CursorContext is the system prompt and layout handed to the Cursor editor
type CursorContext struct {
	SystemPrompt     string `json:"systemPrompt"`
	ProjectStructure string `json:"projectStructure"`
}

var cursorRulesTmpl = mustTemplate("cursorrules", `You are an expert full-stack engineer building "{{.Name}}".

Product: {{.Summary}}
{{if .Concepts.TargetUser}}Primary users: {{.Concepts.TargetUser}}
{{end}}{{if .Concepts.MainProblem}}Problem solved: {{.Concepts.MainProblem}}
{{end}}
Tech stack:
- Frontend: {{.Stack.Frontend}}
- Backend: {{.Stack.Backend}}
- Database: {{.Stack.Database}}
- Hosting: {{.Stack.Hosting}}
{{range .Stack.Extras}}- {{.}}
{{end}}
User personas:
{{range .Personas}}- {{.Name}}{{if .PainPoints}}: {{(index .PainPoints 0).Description}}{{end}}
{{else}}- Not defined yet
{{end}}
Build these must-have features first:
{{range .MustHave}}- {{.Name}}: {{.Description}}
{{else}}- Not defined yet
{{end}}
Rules:
- Keep the MVP scope to the must-have list until it ships.
- Write small, typed, tested modules.
- Prefer the stack above over new dependencies.
`)

func renderCursor(v view) (any, []File, error) {
	prompt, err := execute(cursorRulesTmpl, v)
	if err != nil {
		return nil, nil, err
	}
	structure := projectStructure(v)

	files := []File{
		{Path: ".cursorrules", Content: prompt},
		{Path: "PROJECT_STRUCTURE.md", Content: "# Project Structure\n\n```\n" + structure + "```\n"},
	}
	return CursorContext{SystemPrompt: prompt, ProjectStructure: structure}, files, nil
}

// projectStructure sketches a directory tree for the recommended stack
func projectStructure(v view) string {
	var sb strings.Builder
	sb.WriteString(v.Slug + "/\n")

	frontend := strings.ToLower(v.Stack.Frontend)
	switch {
	case strings.Contains(frontend, "native"):
		sb.WriteString("├── app/              # screens (" + v.Stack.Frontend + ")\n")
		sb.WriteString("├── components/\n")
	default:
		sb.WriteString("├── src/\n")
		sb.WriteString("│   ├── components/   # UI (" + v.Stack.Frontend + ")\n")
		sb.WriteString("│   ├── pages/\n")
		sb.WriteString("│   └── lib/\n")
	}

	sb.WriteString("├── server/           # API (" + v.Stack.Backend + ")\n")
	for _, f := range v.MustHave {
		sb.WriteString("│   ├── " + slugify(f.Name) + "/\n")
	}
	sb.WriteString("│   └── db/           # " + v.Stack.Database + "\n")
	sb.WriteString("├── docs/\n")
	sb.WriteString("└── README.md\n")
	return sb.String()
}
