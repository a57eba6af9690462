package metadata

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/gorewood/proact/internal/git"
)

// Identity is the author identity used for attribution.
// Name is always set; Email is empty when unknown.
type Identity struct {
	Name  string
	Email string
}

// IdentityResolver supplies the author identity for a project.
// Implementations must not fail: unresolvable names become AuthorPlaceholder.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, projectDir string) Identity
}

// ConfigLookup reads a single VCS configuration key.
type ConfigLookup func(ctx context.Context, dir, key string) (string, error)

// GitIdentity resolves the identity from `git config user.name` and
// `git config user.email`, run as two independent lookups.
type GitIdentity struct {
	lookup ConfigLookup
	logger *zap.Logger
}

// NewGitIdentity creates a GitIdentity. A nil lookup uses git.ConfigValue;
// a nil logger discards diagnostics.
func NewGitIdentity(lookup ConfigLookup, logger *zap.Logger) *GitIdentity {
	if lookup == nil {
		lookup = git.ConfigValue
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIdentity{lookup: lookup, logger: logger}
}

// ResolveIdentity implements IdentityResolver.
func (g *GitIdentity) ResolveIdentity(ctx context.Context, projectDir string) Identity {
	id := Identity{Name: AuthorPlaceholder}

	if name, ok := g.value(ctx, projectDir, "user.name"); ok {
		id.Name = norm.NFC.String(name)
	}
	if email, ok := g.value(ctx, projectDir, "user.email"); ok {
		id.Email = email
	}
	return id
}

// value returns a trimmed, non-empty config value or false.
func (g *GitIdentity) value(ctx context.Context, dir, key string) (string, bool) {
	raw, err := g.lookup(ctx, dir, key)
	if err != nil {
		g.logger.Debug("vcs identity lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		g.logger.Debug("vcs identity value empty", zap.String("key", key))
		return "", false
	}
	return value, true
}

// StaticIdentity is a fixed identity, used for configured overrides and tests.
// An empty Name resolves to AuthorPlaceholder.
type StaticIdentity Identity

// ResolveIdentity implements IdentityResolver.
func (s StaticIdentity) ResolveIdentity(_ context.Context, _ string) Identity {
	id := Identity{Name: strings.TrimSpace(s.Name), Email: strings.TrimSpace(s.Email)}
	if id.Name == "" {
		id.Name = AuthorPlaceholder
	}
	return id
}

// OverrideIdentity prefers configured values and falls back to another
// resolver for anything left unset.
type OverrideIdentity struct {
	Override Identity
	Fallback IdentityResolver
}

// ResolveIdentity implements IdentityResolver.
func (o OverrideIdentity) ResolveIdentity(ctx context.Context, projectDir string) Identity {
	name := strings.TrimSpace(o.Override.Name)
	email := strings.TrimSpace(o.Override.Email)
	if name != "" && email != "" {
		return Identity{Name: name, Email: email}
	}

	id := Identity{Name: AuthorPlaceholder}
	if o.Fallback != nil {
		id = o.Fallback.ResolveIdentity(ctx, projectDir)
	}
	if name != "" {
		id.Name = name
	}
	if email != "" {
		id.Email = email
	}
	return id
}
