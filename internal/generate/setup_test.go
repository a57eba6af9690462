package generate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gorewood/proact/internal/config"
	"github.com/gorewood/proact/internal/metadata"
)

func TestEnvironment_BuildAppliesAuthorOverride(t *testing.T) {
	t.Setenv("PROACT_CONFIG_HOME", t.TempDir())
	env := Environment{
		Identity: metadata.StaticIdentity{Name: "Git Name", Email: "git@example.com"},
		Now:      fixedClock,
	}
	cfg := &config.Config{Author: config.Author{Name: "Configured Name"}}

	plan, err := env.Build(cfg, true).Plan(context.Background(), OptionsFor(cfg, t.TempDir(), ""))
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan.Metadata.AuthorName != "Configured Name" {
		t.Errorf("AuthorName = %q, want configured override", plan.Metadata.AuthorName)
	}
	if plan.Metadata.AuthorEmail != "git@example.com" {
		t.Errorf("AuthorEmail = %q, want VCS fallback", plan.Metadata.AuthorEmail)
	}
	if plan.Metadata.CurrentYear != "2026" {
		t.Errorf("CurrentYear = %q", plan.Metadata.CurrentYear)
	}
}

func TestOptionsFor(t *testing.T) {
	t.Setenv("PROACT_CONFIG_HOME", "/cfg")

	tests := []struct {
		name      string
		cfg       config.Config
		flag      string
		wantOut   string
		wantLearn string
	}{
		{name: "flag wins", cfg: config.Config{OutputDir: "agent-docs"}, flag: "custom", wantOut: "custom"},
		{name: "configured", cfg: config.Config{OutputDir: "agent-docs"}, wantOut: "agent-docs"},
		{name: "default", cfg: config.Config{LearningsSource: "/l.md"}, wantOut: "docs", wantLearn: "/l.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptionsFor(&tt.cfg, "/work", tt.flag)
			if got.OutputDir != tt.wantOut {
				t.Errorf("OutputDir = %q, want %q", got.OutputDir, tt.wantOut)
			}
			if got.LearningsSource != tt.wantLearn {
				t.Errorf("LearningsSource = %q, want %q", got.LearningsSource, tt.wantLearn)
			}
			if got.GlobalTemplatesDir != filepath.Join("/cfg", "templates") {
				t.Errorf("GlobalTemplatesDir = %q", got.GlobalTemplatesDir)
			}
		})
	}
}
