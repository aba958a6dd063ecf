package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	testPlexToken = "plex-secret"
	testTMDBKey   = "tmdb-secret"
)

type cliTestEnv struct {
	configPath string
	outputDir  string
	plexURL    string
	tmdbURL    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("PLEX_URL", "")
	t.Setenv("PLEX_TOKEN", "")
	t.Setenv("TMDB_API_KEY", "")
	t.Chdir(base)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.yaml"),
		outputDir:  filepath.Join(base, "reports"),
		plexURL:    newFakePlex(t).URL,
		tmdbURL:    newFakeTMDB(t).URL,
	}
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T) {
	t.Helper()
	content := fmt.Sprintf(
		"plex_url: %s\nplex_token: %s\ntmdb_key: %s\ntmdb_base_url: %s\ntmdb_requests_per_second: 1000\noutput_dir: %s\n",
		e.plexURL, testPlexToken, testTMDBKey, e.tmdbURL, e.outputDir,
	)
	if err := os.WriteFile(e.configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func appendConfig(t *testing.T, path, content string) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open config: %v", err)
	}
	defer file.Close()
	if _, err := file.WriteString(content); err != nil {
		t.Fatalf("append config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func newFakePlex(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/library/sections": `<MediaContainer>
  <Directory key="1" type="movie" title="Movies" language="en"/>
  <Directory key="2" type="show" title="TV Shows" language="en"/>
  <Directory key="3" type="movie" title="Kids Movies" language="de"/>
</MediaContainer>`,
		"/library/sections/1/collections": `<MediaContainer>
  <Directory ratingKey="10" title="Alien" childCount="2"/>
  <Directory ratingKey="20" title="Predator" childCount="1"/>
  <Directory ratingKey="30" title="Home Videos" childCount="1"/>
</MediaContainer>`,
		"/library/sections/3/collections": `<MediaContainer/>`,
		"/library/collections/10/children": `<MediaContainer>
  <Video ratingKey="101" title="Alien" guid="com.plexapp.agents.imdb://tt0078748?lang=en"/>
  <Video ratingKey="102" title="Aliens" guid="com.plexapp.agents.themoviedb://679?lang=en"/>
</MediaContainer>`,
		"/library/collections/20/children": `<MediaContainer>
  <Video ratingKey="201" title="Predator" guid="com.plexapp.agents.themoviedb://106?lang=en"/>
</MediaContainer>`,
		"/library/collections/30/children": `<MediaContainer>
  <Video ratingKey="301" title="Birthday" guid="local://301"/>
</MediaContainer>`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Plex-Token") != testPlexToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newFakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	alien := map[string]any{"id": 8091, "name": "Alien Collection"}
	predator := map[string]any{"id": 399, "name": "Predator Collection"}
	routes := map[string]any{
		"/configuration":  map[string]any{"images": map[string]any{}},
		"/find/tt0078748": map[string]any{"movie_results": []any{map[string]any{"id": 348}}},
		"/movie/348":      map[string]any{"id": 348, "title": "Alien", "belongs_to_collection": alien},
		"/movie/679":      map[string]any{"id": 679, "title": "Aliens", "belongs_to_collection": alien},
		"/movie/106":      map[string]any{"id": 106, "title": "Predator", "belongs_to_collection": predator},
		"/collection/8091": map[string]any{"id": 8091, "name": "Alien Collection", "parts": []any{
			map[string]any{"id": 348, "title": "Alien", "release_date": "1979-05-25"},
			map[string]any{"id": 679, "title": "Aliens", "release_date": "1986-07-18"},
		}},
		"/collection/399": map[string]any{"id": 399, "name": "Predator Collection", "parts": []any{
			map[string]any{"id": 106, "title": "Predator", "release_date": "1987-06-12"},
			map[string]any{"id": 169, "title": "Predator 2", "release_date": "1990-11-20"},
			map[string]any{"id": 9998, "title": "Predator: Untitled", "release_date": ""},
			map[string]any{"id": 9999, "title": "Predator: Far Future", "release_date": "2999-01-01"},
		}},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != testTMDBKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		payload, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
