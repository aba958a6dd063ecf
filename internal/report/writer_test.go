package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexmissing/internal/collections"
	"plexmissing/internal/identification/tmdb"
)

func sampleResults() []collections.Result {
	return []collections.Result{
		{Title: "Alien", Index: 1, Total: 3, Status: collections.StatusComplete},
		{Title: "Predator", Index: 2, Total: 3, Status: collections.StatusIncomplete, Missing: []tmdb.Part{
			{ID: 169, Title: "Predator 2", ReleaseDate: "1990-11-20"},
		}},
		{Title: "Mystery", Index: 3, Total: 3, Status: collections.StatusSkipped, Reason: "no supported guid"},
	}
}

func writeLibrary(t *testing.T, w *Writer, title string) *LibraryReport {
	t.Helper()
	r, err := w.Begin(title)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for _, result := range sampleResults() {
		if err := r.Write(result); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	return r
}

func TestFileName(t *testing.T) {
	if got := FileName("4K Movies"); got != "missing_4K_Movies.txt" {
		t.Fatalf("FileName = %q", got)
	}
	if got := FileName("Movies/Old"); got != "missing_Movies_Old.txt" {
		t.Fatalf("FileName = %q", got)
	}
	if got := FileName(" Movies "); got != "missing__Movies_.txt" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestWriterProducesReportFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	w := NewWriter(dir, NewConsole(&out))

	r := writeLibrary(t, w, "My Movies")
	if r.Path() != filepath.Join(dir, "missing_My_Movies.txt") {
		t.Fatalf("unexpected path %q", r.Path())
	}

	data, err := os.ReadFile(r.Path())
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	want := strings.Join([]string{
		"Missing Movies from My Movies Collections.",
		"✓ Alien [1/3]",
		"✗ Predator [2/3]",
		"  - Predator 2 (1990)",
		"⚠ Mystery [3/3] skipped: no supported guid",
		"",
	}, "\n")
	if string(data) != want {
		t.Fatalf("report mismatch\n got: %q\nwant: %q", string(data), want)
	}

	console := out.String()
	if strings.Contains(console, "Missing Movies from") {
		t.Fatalf("header should only go to the file, console: %q", console)
	}
	if !strings.Contains(console, "✗ Predator [2/3]\n  - Predator 2 (1990)\n") {
		t.Fatalf("console missing incomplete block: %q", console)
	}
}

func TestWriterTruncatesOnRerun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, NewConsole(&bytes.Buffer{}))

	first := writeLibrary(t, w, "Movies")
	firstData, err := os.ReadFile(first.Path())
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	second := writeLibrary(t, w, "Movies")
	secondData, err := os.ReadFile(second.Path())
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Equal(firstData, secondData) {
		t.Fatalf("expected identical reports across runs\nfirst:  %q\nsecond: %q", firstData, secondData)
	}
}

func TestDryRunWritesNothingAndMatchesConsole(t *testing.T) {
	realDir := t.TempDir()
	var realOut bytes.Buffer
	writeLibrary(t, NewWriter(realDir, NewConsole(&realOut)), "Movies")

	dryDir := t.TempDir()
	var dryOut bytes.Buffer
	dry := NewWriter(dryDir, NewConsole(&dryOut), WithDryRun(true))
	if !dry.DryRun() {
		t.Fatal("expected dry-run writer")
	}
	writeLibrary(t, dry, "Movies")

	entries, err := os.ReadDir(dryDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run created %d entries", len(entries))
	}
	if realOut.String() != dryOut.String() {
		t.Fatalf("console output differs\nreal: %q\ndry:  %q", realOut.String(), dryOut.String())
	}
}

func TestDryRunLeavesExistingReportUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName("Movies"))
	if err := os.WriteFile(path, []byte("previous\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	writeLibrary(t, NewWriter(dir, NewConsole(&bytes.Buffer{}), WithDryRun(true)), "Movies")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "previous\n" {
		t.Fatalf("dry run modified report: %q", data)
	}
}

func TestBeginCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	r, err := NewWriter(dir, NewConsole(&bytes.Buffer{})).Begin("Movies")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := os.Stat(r.Path()); err != nil {
		t.Fatalf("expected report file: %v", err)
	}
}

func TestConsoleColorizesOnlyWhenEnabled(t *testing.T) {
	var plain bytes.Buffer
	NewConsole(&plain).Println(ToneSuccess, "✓ Alien [1/1]")
	if plain.String() != "✓ Alien [1/1]\n" {
		t.Fatalf("expected uncoloured output for buffers, got %q", plain.String())
	}

	var colored bytes.Buffer
	c := newConsole(&colored, true)
	if !c.Colorized() {
		t.Fatal("expected colorized console")
	}
	c.Println(ToneFailure, "✗ Predator [1/1]")
	if !strings.Contains(colored.String(), "\x1b[31m") {
		t.Fatalf("expected red escape code, got %q", colored.String())
	}
}

func TestLockIsExclusive(t *testing.T) {
	dir := t.TempDir()
	first, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	if _, err := AcquireLock(dir); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("expected lock after release: %v", err)
	}
	_ = again.Release()
}
