// Package templates loads the documents proact writes into a project.
//
// Each document is a Markdown file with YAML frontmatter naming its output
// file and write mode, followed by a text/template body. Templates resolve
// from the project's .proact/templates, then the global config templates
// directory, then the built-in set.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/proact/internal/metadata"
	"github.com/gorewood/proact/internal/writer"
)

// Source labels.
const (
	SourceProject = "project"
	SourceGlobal  = "global"
	SourceBuiltin = "built-in"
)

// ProjectDir is the template override directory relative to a target.
const ProjectDir = ".proact/templates"

// ErrNotFound is returned when no source provides a template.
var ErrNotFound = errors.New("template not found")

// Template is a document template with metadata and body.
type Template struct {
	// Metadata from frontmatter
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	File        string `yaml:"file"`
	Mode        string `yaml:"mode,omitempty"`

	// Body after frontmatter
	Content string `yaml:"-"`

	// Source location for display
	Source string `yaml:"-"`
}

// Info provides template metadata for listing.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	File        string `json:"file"`
	Source      string `json:"source"`
	Overrides   string `json:"overrides,omitempty"`
}

// Data is the value templates execute against.
type Data struct {
	Project string
	Meta    metadata.ProjectMetadata
}

// Loader resolves templates for one target project.
type Loader struct {
	projectDir string
	globalDir  string
}

// NewLoader returns a loader for target. globalDir may be empty.
func NewLoader(target, globalDir string) *Loader {
	return &Loader{
		projectDir: filepath.Join(target, filepath.FromSlash(ProjectDir)),
		globalDir:  globalDir,
	}
}

// Load finds a template by name.
// Resolution order: project-local → user global → built-in
func (l *Loader) Load(name string) (*Template, error) {
	if tmpl, err := loadFromPath(l.projectDir, name); err == nil {
		tmpl.Source = SourceProject
		return tmpl.withDefaults(name), nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if tmpl, err := loadFromPath(l.globalDir, name); err == nil {
		tmpl.Source = SourceGlobal
		return tmpl.withDefaults(name), nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	tmpl, err := loadBuiltin(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	tmpl.Source = SourceBuiltin
	return tmpl.withDefaults(name), nil
}

// List returns every available template, overrides first.
func (l *Loader) List() []Info {
	seen := make(map[string]int) // name -> index in infos
	var infos []Info

	sources := []struct {
		name string
		dir  string
	}{
		{SourceProject, l.projectDir},
		{SourceGlobal, l.globalDir},
	}

	for _, src := range sources {
		for _, info := range listFromPath(src.dir, src.name) {
			if _, exists := seen[info.Name]; !exists {
				seen[info.Name] = len(infos)
				infos = append(infos, info)
			}
		}
	}

	for _, info := range listBuiltins() {
		if i, exists := seen[info.Name]; exists {
			infos[i].Overrides = SourceBuiltin
			continue
		}
		infos = append(infos, info)
	}

	return infos
}

// WriteMode returns the writer mode named in the frontmatter.
func (t *Template) WriteMode() (writer.Mode, error) {
	mode, err := writer.ParseMode(t.Mode)
	if err != nil {
		return 0, fmt.Errorf("template %s: %w", t.Name, err)
	}
	return mode, nil
}

// Render executes the template body against data.
func (t *Template) Render(data Data) (string, error) {
	tmpl, err := template.New(t.Name).Option("missingkey=error").Parse(t.Content)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", t.Name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", t.Name, err)
	}
	return buf.String(), nil
}

func (t *Template) withDefaults(name string) *Template {
	if t.Name == "" {
		t.Name = name
	}
	if t.File == "" {
		t.File = name + ".md"
	}
	return t
}

// loadFromPath attempts to load a template from a directory.
// A missing directory or file yields an error matching os.ErrNotExist.
func loadFromPath(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}

	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := parseTemplate(string(data))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return tmpl, nil
}

// listFromPath lists templates in a directory, skipping unreadable entries.
func listFromPath(dir, source string) []Info {
	if dir == "" {
		return nil
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		tmpl, err := parseTemplate(string(data))
		if err != nil {
			continue
		}
		tmpl.withDefaults(name)

		infos = append(infos, Info{
			Name:        name,
			Description: tmpl.Description,
			File:        tmpl.File,
			Source:      source,
		})
	}

	return infos
}

// parseTemplate parses a template from raw content with YAML frontmatter.
func parseTemplate(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	tmpl.Content = strings.TrimSpace(content) + "\n"
	return &tmpl, nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:]
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}
