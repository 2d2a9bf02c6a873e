package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cvforge/cvforge/internal/filter"
	"github.com/cvforge/cvforge/internal/resume"
)

const sampleYAML = `
name: Ada Lovelace
email: ada@example.com
experience:
  - company: Analytical Engines Ltd
    title: Senior Engineer
    dates: 2020-2024
    bullets:
      - text: Built a billing pipeline in Go
        tags: [go, aws]
      - text: Maintained legacy reporting jobs
        tags: legacy
projects:
  - name: cvforge
    dates: "2024"
    bullets:
      - text: Wrote a resume renderer
        tags: [go]
`

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func newTestServer(t *testing.T, source string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(Deps{Source: source, DefaultMode: filter.ModeAny}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, writeSource(t, sampleYAML))

	resp, body := get(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, `"ok"`) {
		t.Errorf("body = %q", body)
	}
}

func TestRender_Unfiltered(t *testing.T) {
	srv := newTestServer(t, writeSource(t, sampleYAML))

	resp, body := get(t, srv.URL+"/resume.md")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("content type = %q", ct)
	}
	for _, want := range []string{"# Ada Lovelace", "Built a billing pipeline", "Maintained legacy reporting jobs", "Wrote a resume renderer"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in body:\n%s", want, body)
		}
	}
}

func TestRender_Filtered(t *testing.T) {
	srv := newTestServer(t, writeSource(t, sampleYAML))

	_, body := get(t, srv.URL+"/resume.md?include=go&exclude=legacy")
	if !strings.Contains(body, "Built a billing pipeline") {
		t.Errorf("included bullet missing:\n%s", body)
	}
	if strings.Contains(body, "Maintained legacy reporting jobs") {
		t.Errorf("excluded bullet present:\n%s", body)
	}
}

func TestRender_AllMode(t *testing.T) {
	srv := newTestServer(t, writeSource(t, sampleYAML))

	_, body := get(t, srv.URL+"/resume.md?include=go,aws&mode=all")
	if !strings.Contains(body, "Built a billing pipeline") {
		t.Errorf("fully-covered bullet missing:\n%s", body)
	}
	if strings.Contains(body, "Wrote a resume renderer") {
		t.Errorf("partially-covered bullet present:\n%s", body)
	}
}

func TestRender_InvalidMode(t *testing.T) {
	srv := newTestServer(t, writeSource(t, sampleYAML))

	resp, body := get(t, srv.URL+"/resume.md?mode=sometimes")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "unknown mode") {
		t.Errorf("body = %q, want it to mention 'unknown mode'", body)
	}
}

func TestRender_SourceUnreadable(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing.yaml"))

	resp, _ := get(t, srv.URL+"/resume.md")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestRender_PicksUpEdits(t *testing.T) {
	source := writeSource(t, sampleYAML)
	srv := newTestServer(t, source)

	if _, body := get(t, srv.URL+"/resume.md"); !strings.Contains(body, "Ada Lovelace") {
		t.Fatalf("unexpected initial body:\n%s", body)
	}

	if err := os.WriteFile(source, []byte("name: Grace Hopper\n"), 0o644); err != nil {
		t.Fatalf("rewriting source: %v", err)
	}

	_, body := get(t, srv.URL+"/resume.md")
	if !strings.Contains(body, "Grace Hopper") {
		t.Errorf("edit not picked up:\n%s", body)
	}
}

func TestTags(t *testing.T) {
	srv := newTestServer(t, writeSource(t, sampleYAML))

	resp, body := get(t, srv.URL+"/tags")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var inventory []resume.TagCount
	if err := json.Unmarshal([]byte(body), &inventory); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	want := []resume.TagCount{
		{Tag: "aws", Count: 1},
		{Tag: "go", Count: 2},
		{Tag: "legacy", Count: 1},
	}
	if len(inventory) != len(want) {
		t.Fatalf("inventory = %+v, want %+v", inventory, want)
	}
	for i := range want {
		if inventory[i] != want[i] {
			t.Errorf("inventory[%d] = %+v, want %+v", i, inventory[i], want[i])
		}
	}
}

func TestTags_EmptyDocument(t *testing.T) {
	srv := newTestServer(t, writeSource(t, "name: Ada\n"))

	_, body := get(t, srv.URL+"/tags")
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}
