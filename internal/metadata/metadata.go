// Package metadata resolves the project facts proact stamps into generated
// documents: copyright year, author identity, license and repository.
//
// Resolution never fails. Each fact degrades to a documented fallback when it
// cannot be determined: author and license fall back to placeholder tokens a
// human is expected to replace, email and repository are simply left unknown.
package metadata

import "fmt"

// Placeholder tokens substituted when a required fact cannot be resolved.
const (
	AuthorPlaceholder  = "<author>"
	LicensePlaceholder = "<license>"
)

// ProjectMetadata is the consolidated set of facts for one run.
// It is built once by a Resolver and treated as read-only afterwards.
type ProjectMetadata struct {
	CurrentYear string `json:"current_year"`
	AuthorName  string `json:"author_name"`
	// AuthorEmail is empty when the VCS identity has no email.
	AuthorEmail string `json:"author_email,omitempty"`
	License     string `json:"license"`
	// Repository is empty when no manifest declares one.
	Repository string `json:"repository,omitempty"`
}

// HasAuthorEmail reports whether an email was resolved.
func (m ProjectMetadata) HasAuthorEmail() bool {
	return m.AuthorEmail != ""
}

// HasRepository reports whether a repository was resolved.
func (m ProjectMetadata) HasRepository() bool {
	return m.Repository != ""
}

// Copyright returns the copyright line, e.g. "Copyright (c) 2026 Jane Doe".
func (m ProjectMetadata) Copyright() string {
	return fmt.Sprintf("Copyright (c) %s %s", m.CurrentYear, m.AuthorName)
}

// AuthorWithEmail returns "Name <email>", or just the name without an email.
func (m ProjectMetadata) AuthorWithEmail() string {
	if !m.HasAuthorEmail() {
		return m.AuthorName
	}
	return fmt.Sprintf("%s <%s>", m.AuthorName, m.AuthorEmail)
}

// UsesPlaceholders lists the fields that still hold placeholder tokens.
func (m ProjectMetadata) UsesPlaceholders() []string {
	var fields []string
	if m.AuthorName == AuthorPlaceholder {
		fields = append(fields, "author_name")
	}
	if m.License == LicensePlaceholder {
		fields = append(fields, "license")
	}
	return fields
}
