package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexmissing/internal/config"
	"plexmissing/internal/services"
	"plexmissing/internal/services/plex"
)

type stubPlex struct {
	libraries []plex.Library
	err       error
}

func (s stubPlex) Libraries(context.Context) ([]plex.Library, error) {
	return s.libraries, s.err
}

type stubTMDB struct{ err error }

func (s stubTMDB) Ping(context.Context) error { return s.err }

func TestCheckOutputDirectory_OK(t *testing.T) {
	result := CheckOutputDirectory("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckOutputDirectory_CreatableWhenMissing(t *testing.T) {
	result := CheckOutputDirectory("test", filepath.Join(t.TempDir(), "a", "b"))
	if !result.Passed {
		t.Fatalf("expected missing dir under writable parent to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckOutputDirectory_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckOutputDirectory("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckPlexCountsMovieLibraries(t *testing.T) {
	result := CheckPlex(context.Background(), stubPlex{libraries: []plex.Library{
		{Key: 1, Type: "movie"},
		{Key: 2, Type: "show"},
	}})
	if !result.Passed || result.Detail != "reachable, 1 movie library" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckPlexRejectedToken(t *testing.T) {
	err := fmt.Errorf("%w: plex: server rejected plex_token", services.ErrConfiguration)
	result := CheckPlex(context.Background(), stubPlex{err: err})
	if result.Passed || !strings.HasPrefix(result.Detail, "credentials rejected") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckTMDB(t *testing.T) {
	if result := CheckTMDB(context.Background(), stubTMDB{}); !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	result := CheckTMDB(context.Background(), stubTMDB{err: context.DeadlineExceeded})
	if result.Passed || !strings.Contains(result.Detail, "timed out") {
		t.Fatalf("unexpected result %+v", result)
	}
	if result := CheckTMDB(context.Background(), nil); result.Passed {
		t.Fatal("expected nil client to fail")
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()

	results := RunAll(context.Background(), &cfg, stubPlex{}, stubTMDB{err: errors.New("boom")})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !Failed(results) {
		t.Fatal("expected failure from tmdb check")
	}
	if results[2].Name != "TMDB" || results[2].Detail != "boom" {
		t.Fatalf("unexpected tmdb result %+v", results[2])
	}
	if RunAll(context.Background(), nil, nil, nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
