package templates

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed builtin/*.md
var builtinFS embed.FS

// Documents lists the built-in document templates in generation order.
var Documents = []string{"instructions", "process", "tools", "learnings"}

// loadBuiltin loads a built-in template by name.
func loadBuiltin(name string) (*Template, error) {
	path := "builtin/" + name + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin template %s: %w", path, err)
	}
	return parseTemplate(string(data))
}

// listBuiltins returns info for all built-in templates.
func listBuiltins() []Info {
	dirEntries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		tmpl, err := loadBuiltin(name)
		if err != nil {
			continue
		}
		tmpl.withDefaults(name)

		infos = append(infos, Info{
			Name:        name,
			Description: tmpl.Description,
			File:        tmpl.File,
			Source:      SourceBuiltin,
		})
	}

	return infos
}
