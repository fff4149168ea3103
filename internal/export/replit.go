package export

import (
	"fmt"
	"strings"
)

// ReplitConfig holds the two Replit configuration files
type ReplitConfig struct {
	Replit    string `json:"replit"`
	ReplitNix string `json:"replitNix"`
}

func renderReplit(v view) (any, []File, error) {
	backend := strings.ToLower(v.Stack.Backend)

	language, run, deps := "nodejs", "npm run dev", []string{"pkgs.nodejs_20"}
	if strings.Contains(backend, "python") {
		language, run, deps = "python3", "uvicorn main:app --host 0.0.0.0 --port 8080", []string{"pkgs.python311"}
	}
	if strings.Contains(strings.ToLower(v.Stack.Database), "postgres") {
		deps = append(deps, "pkgs.postgresql")
	}

	replit := fmt.Sprintf(`# %s
language = %q
run = %q
entrypoint = "README.md"

[nix]
channel = "stable-24_05"

[deployment]
run = ["sh", "-c", %q]
`, v.Name, language, run, run)

	nix := fmt.Sprintf("{ pkgs }: {\n  deps = [\n    %s\n  ];\n}\n", strings.Join(deps, "\n    "))

	files := []File{
		{Path: ".replit", Content: replit},
		{Path: "replit.nix", Content: nix},
	}
	return ReplitConfig{Replit: replit, ReplitNix: nix}, files, nil
}
