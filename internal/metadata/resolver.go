package metadata

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Manifest is a project descriptor proact knows how to read fields from.
type Manifest struct {
	// Name is the file name relative to the project root.
	Name    string
	Extract FieldExtractor
}

// DefaultManifests is the candidate order for license and repository lookup.
var DefaultManifests = []Manifest{
	{Name: "Cargo.toml", Extract: ExtractTOMLField},
	{Name: "package.json", Extract: ExtractJSONField},
}

// Resolver builds ProjectMetadata for a project directory.
type Resolver struct {
	identity  IdentityResolver
	manifests []Manifest
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithManifests replaces the manifest candidate list.
func WithManifests(manifests ...Manifest) Option {
	return func(r *Resolver) { r.manifests = manifests }
}

// WithClock replaces the wall clock used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver using identity for authorship.
// A nil identity resolves every author to AuthorPlaceholder.
func NewResolver(identity IdentityResolver, opts ...Option) *Resolver {
	if identity == nil {
		identity = StaticIdentity{}
	}
	r := &Resolver{
		identity:  identity,
		manifests: DefaultManifests,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve gathers metadata for the project rooted at root.
// It only reads manifest files and queries the identity resolver.
func (r *Resolver) Resolve(ctx context.Context, root string) ProjectMetadata {
	id := r.identity.ResolveIdentity(ctx, root)

	meta := ProjectMetadata{
		CurrentYear: r.now().Local().Format("2006"),
		AuthorName:  id.Name,
		AuthorEmail: id.Email,
		License:     LicensePlaceholder,
	}
	if meta.AuthorName == "" {
		meta.AuthorName = AuthorPlaceholder
	}

	if license, ok := r.resolveField(root, "license"); ok {
		meta.License = license
	}
	if repo, ok := r.resolveField(root, "repository"); ok {
		meta.Repository = repo
	}

	r.logger.Debug("resolved project metadata",
		zap.String("root", root),
		zap.String("author", meta.AuthorName),
		zap.Bool("has_email", meta.HasAuthorEmail()),
		zap.String("license", meta.License),
		zap.String("repository", meta.Repository),
	)
	return meta
}

// resolveField returns the value from the first manifest that yields field.
// Missing and unreadable manifests are skipped.
func (r *Resolver) resolveField(root, field string) (string, bool) {
	for _, m := range r.manifests {
		path := filepath.Join(root, m.Name)
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				r.logger.Debug("skipping unreadable manifest", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		if value, ok := m.Extract(string(data), field); ok {
			r.logger.Debug("manifest field found",
				zap.String("manifest", m.Name), zap.String("field", field), zap.String("value", value))
			return value, true
		}
	}
	r.logger.Debug("manifest field not found", zap.String("field", field))
	return "", false
}
