package writer

import "fmt"

// Decision is how a single artifact will be written.
type Decision int

const (
	// Create writes a new file; the target did not exist.
	Create Decision = iota
	// AppendWithSeparator extends an existing file behind a timestamped separator.
	AppendWithSeparator
	// Overwrite replaces an existing file wholesale.
	Overwrite
)

// String returns the short verb used in reports.
func (d Decision) String() string {
	switch d {
	case Create:
		return "create"
	case AppendWithSeparator:
		return "append"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// MarshalText encodes the decision as its verb for JSON reports.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Mode is the policy an artifact uses when its target already exists.
type Mode int

const (
	// ModeOverwrite regenerates the file from scratch on every run.
	ModeOverwrite Mode = iota
	// ModeAppend preserves prior content and appends the new content.
	ModeAppend
)

// ParseMode converts a template's "mode" value. Empty means overwrite.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "overwrite":
		return ModeOverwrite, nil
	case "append":
		return ModeAppend, nil
	default:
		return ModeOverwrite, fmt.Errorf("unknown write mode %q: must be overwrite or append", s)
	}
}

// Result describes one artifact write, or the write that would happen under
// dry-run.
type Result struct {
	Path     string   `json:"path"`
	Decision Decision `json:"decision"`
	// ExistingBytes is the size of the target before the write.
	ExistingBytes int64 `json:"existing_bytes"`
	// NewBytes is the size of the generated content.
	NewBytes int64 `json:"new_bytes"`
	// FinalBytes is the size of the target after the write.
	FinalBytes int64 `json:"final_bytes"`
	DryRun     bool  `json:"dry_run"`
	Written    bool  `json:"written"`
}
