package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/proact/internal/metadata"
	"github.com/gorewood/proact/internal/writer"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func sampleData() Data {
	return Data{
		Project: "widget",
		Meta: metadata.ProjectMetadata{
			CurrentYear: "2026",
			AuthorName:  "Ada Lovelace",
			AuthorEmail: "ada@example.com",
			License:     "Apache-2.0",
			Repository:  "https://github.com/example/widget",
		},
	}
}

func TestLoad_Builtins(t *testing.T) {
	loader := NewLoader(t.TempDir(), "")

	tests := []struct {
		name string
		file string
		mode writer.Mode
	}{
		{name: "instructions", file: "ai_agent_instructions.md", mode: writer.ModeOverwrite},
		{name: "process", file: "process.md", mode: writer.ModeOverwrite},
		{name: "tools", file: "tools.md", mode: writer.ModeOverwrite},
		{name: "learnings", file: "learnings.md", mode: writer.ModeAppend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := loader.Load(tt.name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.name, err)
			}
			if tmpl.Source != SourceBuiltin {
				t.Errorf("Source = %q, want %q", tmpl.Source, SourceBuiltin)
			}
			if tmpl.File != tt.file {
				t.Errorf("File = %q, want %q", tmpl.File, tt.file)
			}
			mode, err := tmpl.WriteMode()
			if err != nil {
				t.Fatalf("WriteMode() error = %v", err)
			}
			if mode != tt.mode {
				t.Errorf("WriteMode() = %v, want %v", mode, tt.mode)
			}
			if _, err := tmpl.Render(sampleData()); err != nil {
				t.Errorf("Render() error = %v", err)
			}
		})
	}
}

func TestDocumentsAreAllBuiltin(t *testing.T) {
	loader := NewLoader(t.TempDir(), "")
	for _, name := range Documents {
		if _, err := loader.Load(name); err != nil {
			t.Errorf("Load(%q) error = %v", name, err)
		}
	}
}

func TestLoad_ResolutionOrder(t *testing.T) {
	target := t.TempDir()
	global := t.TempDir()
	writeTemplate(t, global, "process", "---\nname: process\ndescription: global\n---\nglobal body")
	writeTemplate(t, global, "tools", "---\ndescription: global tools\n---\nglobal tools")
	writeTemplate(t, filepath.Join(target, ProjectDir), "process", "---\ndescription: project\n---\nproject body")

	loader := NewLoader(target, global)

	process, err := loader.Load("process")
	if err != nil {
		t.Fatal(err)
	}
	if process.Source != SourceProject || process.Content != "project body\n" {
		t.Errorf("process = %+v, want project override", process)
	}

	tools, err := loader.Load("tools")
	if err != nil {
		t.Fatal(err)
	}
	if tools.Source != SourceGlobal {
		t.Errorf("tools.Source = %q, want %q", tools.Source, SourceGlobal)
	}
	if tools.File != "tools.md" {
		t.Errorf("tools.File = %q, want default %q", tools.File, "tools.md")
	}

	instructions, err := loader.Load("instructions")
	if err != nil {
		t.Fatal(err)
	}
	if instructions.Source != SourceBuiltin {
		t.Errorf("instructions.Source = %q, want %q", instructions.Source, SourceBuiltin)
	}
}

func TestLoad_MalformedOverrideIsAnError(t *testing.T) {
	target := t.TempDir()
	writeTemplate(t, filepath.Join(target, ProjectDir), "process", "---\nname: [broken\n---\nbody")

	_, err := NewLoader(target, "").Load("process")
	if err == nil {
		t.Fatal("Load() expected error for malformed frontmatter")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("malformed override should not report not found: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := NewLoader(t.TempDir(), "").Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestRender_Instructions(t *testing.T) {
	tmpl, err := NewLoader(t.TempDir(), "").Load("instructions")
	if err != nil {
		t.Fatal(err)
	}

	got, err := tmpl.Render(sampleData())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# AI Agent Instructions for widget",
		"Copyright (c) 2026 Ada Lovelace",
		"License: Apache-2.0",
		"Repository: https://github.com/example/widget",
		"Maintainer: Ada Lovelace <ada@example.com>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered instructions missing %q", want)
		}
	}
}

func TestRender_OmitsUnknownRepository(t *testing.T) {
	tmpl, err := NewLoader(t.TempDir(), "").Load("instructions")
	if err != nil {
		t.Fatal(err)
	}
	data := sampleData()
	data.Meta.Repository = ""

	got, err := tmpl.Render(data)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "Repository:") {
		t.Error("rendered instructions should omit an unresolved repository")
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "parse error", content: "{{.Project"},
		{name: "unknown field", content: "{{.Nope}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &Template{Name: "bad", Content: tt.content}
			if _, err := tmpl.Render(sampleData()); err == nil {
				t.Error("Render() expected error")
			}
		})
	}
}

func TestWriteMode_Invalid(t *testing.T) {
	tmpl := &Template{Name: "odd", Mode: "prepend"}
	if _, err := tmpl.WriteMode(); err == nil {
		t.Error("WriteMode() expected error for unknown mode")
	}
}

func TestList(t *testing.T) {
	target := t.TempDir()
	writeTemplate(t, filepath.Join(target, ProjectDir), "tools", "---\ndescription: ours\n---\nbody")
	writeTemplate(t, filepath.Join(target, ProjectDir), "extra", "---\ndescription: extra doc\nfile: EXTRA.md\n---\nbody")

	infos := NewLoader(target, "").List()

	byName := make(map[string]Info)
	for _, info := range infos {
		if _, dup := byName[info.Name]; dup {
			t.Errorf("duplicate entry %q", info.Name)
		}
		byName[info.Name] = info
	}
	if got := byName["tools"]; got.Source != SourceProject || got.Overrides != SourceBuiltin {
		t.Errorf("tools = %+v, want project override of built-in", got)
	}
	if got := byName["extra"]; got.File != "EXTRA.md" {
		t.Errorf("extra.File = %q", got.File)
	}
	if got := byName["learnings"]; got.Source != SourceBuiltin {
		t.Errorf("learnings.Source = %q", got.Source)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantFrontmatter string
		wantContent     string
	}{
		{name: "with frontmatter", raw: "---\nname: x\n---\nbody", wantFrontmatter: "name: x", wantContent: "body"},
		{name: "no frontmatter", raw: "just body", wantContent: "just body"},
		{name: "unterminated", raw: "---\nname: x\nbody", wantContent: "---\nname: x\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, content := splitFrontmatter(tt.raw)
			if fm != tt.wantFrontmatter || content != tt.wantContent {
				t.Errorf("splitFrontmatter() = (%q, %q), want (%q, %q)", fm, content, tt.wantFrontmatter, tt.wantContent)
			}
		})
	}
}
