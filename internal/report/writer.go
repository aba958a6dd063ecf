package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"plexmissing/internal/collections"
	"plexmissing/internal/logging"
	"plexmissing/internal/services"
	"plexmissing/internal/textutil"
)

const (
	markComplete   = "✓"
	markIncomplete = "✗"
	markSkipped    = "⚠"
)

// FileName returns the report file name for a library title.
func FileName(libraryTitle string) string {
	return "missing_" + textutil.SanitizeFileName(libraryTitle) + ".txt"
}

// Writer creates one report per library inside an output directory.
type Writer struct {
	dir     string
	dryRun  bool
	console *Console
	logger  *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithDryRun disables every file operation. Console output is unchanged.
func WithDryRun(dryRun bool) Option {
	return func(w *Writer) { w.dryRun = dryRun }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string, console *Console, opts ...Option) *Writer {
	if dir == "" {
		dir = "."
	}
	w := &Writer{
		dir:     dir,
		console: console,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "report")
	return w
}

// DryRun reports whether file output is disabled.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Path returns the report path for a library title.
func (w *Writer) Path(libraryTitle string) string {
	return filepath.Join(w.dir, FileName(libraryTitle))
}

// Begin truncates the library report and writes its header line.
func (w *Writer) Begin(libraryTitle string) (*LibraryReport, error) {
	r := &LibraryReport{
		path:    w.Path(libraryTitle),
		dryRun:  w.dryRun,
		console: w.console,
	}
	if w.dryRun {
		w.logger.Debug("dry run, report not written", logging.String("path", r.path))
		return r, nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "report", "create output dir", "Unable to create output directory", err)
	}
	header := fmt.Sprintf("Missing Movies from %s Collections.\n", libraryTitle)
	if err := os.WriteFile(r.path, []byte(header), 0o644); err != nil {
		return nil, services.Wrap(services.ErrExternal, "report", "create report", "Unable to create report file", err)
	}
	w.logger.Debug("report started", logging.String("path", r.path))
	return r, nil
}

// LibraryReport receives the per-collection results of one library.
type LibraryReport struct {
	path    string
	dryRun  bool
	console *Console
}

// Path returns the report file path, even in dry-run mode.
func (r *LibraryReport) Path() string {
	return r.path
}

// Write prints the result and appends the same lines to the report file.
func (r *LibraryReport) Write(result collections.Result) error {
	progress := fmt.Sprintf("[%d/%d]", result.Index, result.Total)
	switch result.Status {
	case collections.StatusComplete:
		return r.line(ToneSuccess, fmt.Sprintf("%s %s %s", markComplete, result.Title, progress))
	case collections.StatusIncomplete:
		if err := r.line(ToneFailure, fmt.Sprintf("%s %s %s", markIncomplete, result.Title, progress)); err != nil {
			return err
		}
		for _, part := range result.Missing {
			if err := r.line(ToneFailure, partLine(part.Title, part.ReleaseDate)); err != nil {
				return err
			}
		}
		return nil
	default:
		return r.line(ToneWarning, fmt.Sprintf("%s %s %s skipped: %s", markSkipped, result.Title, progress, result.Reason))
	}
}

func partLine(title, releaseDate string) string {
	year := releaseDate
	if len(year) > 4 {
		year = year[:4]
	}
	return fmt.Sprintf("  - %s (%s)", title, year)
}

func (r *LibraryReport) line(tone Tone, text string) error {
	r.console.Println(tone, text)
	if r.dryRun {
		return nil
	}
	return appendLine(r.path, text)
}

func appendLine(path, text string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return services.Wrap(services.ErrExternal, "report", "append", "Unable to open report file", err)
	}
	if _, err := file.WriteString(text + "\n"); err != nil {
		_ = file.Close()
		return services.Wrap(services.ErrExternal, "report", "append", "Unable to write report file", err)
	}
	if err := file.Close(); err != nil {
		return services.Wrap(services.ErrExternal, "report", "append", "Unable to close report file", err)
	}
	return nil
}
