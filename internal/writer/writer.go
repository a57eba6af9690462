// Package writer decides how each generated artifact lands on disk and
// performs the write.
//
// A single existence probe per target decides between creating the file,
// overwriting it, or appending to it behind a timestamped separator.
// Appends are strictly additive: existing bytes are kept as an unmodified
// prefix. In dry-run mode the same decision and size figures are computed
// but nothing on disk changes.
package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"
)

// ErrReadExisting marks a failure to read an existing target before appending.
// The artifact is abandoned rather than treated as new, so prior content is
// never discarded.
var ErrReadExisting = errors.New("failed to read existing file")

// ErrProbe marks a failure to determine whether a target exists.
var ErrProbe = errors.New("failed to inspect target")

// ErrNotDir marks an output directory path occupied by a non-directory.
var ErrNotDir = errors.New("exists and is not a directory")

// TimestampLayout is the sortable, second-precision separator timestamp.
const TimestampLayout = "20060102T150405"

// Separator returns the marker inserted between existing and appended content.
func Separator(t time.Time) string {
	return "\n\n---- Added " + t.Format(TimestampLayout) + " ----\n\n"
}

// Merge returns existing followed by the separator for t and then content.
func Merge(existing, content []byte, t time.Time) []byte {
	sep := Separator(t)
	out := make([]byte, 0, len(existing)+len(sep)+len(content))
	out = append(out, existing...)
	out = append(out, sep...)
	return append(out, content...)
}

// Writer applies merge-or-create decisions to the filesystem.
type Writer struct {
	dryRun bool
	now    func() time.Time
	logger *zap.Logger
	perm   fs.FileMode
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock replaces the clock used for separator timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Writer. With dryRun set, no file or directory is modified.
func New(dryRun bool, opts ...Option) *Writer {
	w := &Writer{
		dryRun: dryRun,
		now:    time.Now,
		logger: zap.NewNop(),
		perm:   0o644,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DryRun reports whether the writer suppresses filesystem changes.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Decide probes path once and returns the decision for mode along with the
// current size of the target (zero when it does not exist).
func (w *Writer) Decide(path string, mode Mode) (Decision, int64, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Create, 0, nil
	case err != nil:
		return Create, 0, fmt.Errorf("%w %s: %w", ErrProbe, path, err)
	}

	if mode == ModeAppend {
		return AppendWithSeparator, info.Size(), nil
	}
	return Overwrite, info.Size(), nil
}

// Write places content at path according to mode.
//
// Missing targets are created with content as their entire contents.
// Existing targets are replaced (ModeOverwrite) or extended with
// Separator(now) + content (ModeAppend). Under dry-run the returned Result
// carries the same decision and sizes but Written is false.
func (w *Writer) Write(path string, content []byte, mode Mode) (Result, error) {
	decision, existingSize, err := w.Decide(path, mode)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Path:          path,
		Decision:      decision,
		ExistingBytes: existingSize,
		NewBytes:      int64(len(content)),
		FinalBytes:    int64(len(content)),
		DryRun:        w.dryRun,
	}

	data := content
	if decision == AppendWithSeparator {
		stamp := w.now()
		// Read under dry-run too: an unreadable target fails the plan as well.
		existing, readErr := os.ReadFile(path)
		if readErr != nil {
			return res, fmt.Errorf("%w %s: %w", ErrReadExisting, path, readErr)
		}
		res.ExistingBytes = int64(len(existing))
		res.FinalBytes = int64(len(existing)) + int64(len(Separator(stamp))) + int64(len(content))
		data = Merge(existing, content, stamp)
	}

	w.logger.Debug("artifact decision",
		zap.String("path", path),
		zap.Stringer("decision", decision),
		zap.Int64("existing_bytes", res.ExistingBytes),
		zap.Int64("new_bytes", res.NewBytes),
		zap.Bool("dry_run", w.dryRun),
	)

	if w.dryRun {
		return res, nil
	}

	if err := os.WriteFile(path, data, w.perm); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Written = true
	return res, nil
}

// EnsureDir creates dir and any missing parents. It reports whether the
// directory was missing; under dry-run it is left missing.
func (w *Writer) EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%s %w", dir, ErrNotDir)
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("%w %s: %w", ErrProbe, dir, err)
	}

	w.logger.Debug("creating directory", zap.String("dir", dir), zap.Bool("dry_run", w.dryRun))
	if w.dryRun {
		return true, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return true, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return true, nil
}
