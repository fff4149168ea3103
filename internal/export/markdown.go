package export

var personasTmpl = mustTemplate("personas", `# User Personas: {{.Name}}
{{if not .Personas}}
_No personas defined yet._
{{end}}{{range .Personas}}
## {{.Name}}

{{if .Description}}{{.Description}}

{{end}}- Market size: {{if .Size}}{{.Size}}{{else}}unknown{{end}}
- Income: {{if .Income}}{{.Income}}{{else}}unknown{{end}}

### Pain points
{{range .PainPoints}}- {{.Description}} ({{.Severity}}%)
{{else}}- None recorded
{{end}}
### Goals
{{range .Goals}}- {{.}}
{{else}}- None recorded
{{end}}{{end}}`)

var featuresTmpl = mustTemplate("features", `# Features: {{.Name}}

## Must-have
{{range .MustHave}}- **{{.Name}}**: {{.Description}} (effort: {{.Effort}}, impact: {{.Impact}})
{{else}}- None yet
{{end}}
## Nice-to-have
{{range .NiceToHave}}- **{{.Name}}**: {{.Description}} (effort: {{.Effort}}, impact: {{.Impact}})
{{else}}- None yet
{{end}}`)

var techStackTmpl = mustTemplate("techstack", `# Tech Stack: {{.Name}}

| Layer | Choice |
|---|---|
| Frontend | {{.Stack.Frontend}} |
| Backend | {{.Stack.Backend}} |
| Database | {{.Stack.Database}} |
| Hosting | {{.Stack.Hosting}} |
{{if .Stack.Extras}}
Extras: {{join .Stack.Extras ", "}}
{{end}}`)

func personasMarkdown(v view) (string, error)  { return execute(personasTmpl, v) }
func featuresMarkdown(v view) (string, error)  { return execute(featuresTmpl, v) }
func techStackMarkdown(v view) (string, error) { return execute(techStackTmpl, v) }
