package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/graphset/pkg/types"
)

func testConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "graphset-test/0.1",
	}
}

func TestDownloadWritesFile(t *testing.T) {
	const body = "archive-bytes"
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(body))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "ml-100k.zip")
	n, err := Download(ts.Client(), ts.URL, dest, testConfig())
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if n != int64(len(body)) {
		t.Errorf("Download returned %d bytes, want %d", n, len(body))
	}
	if gotUA != "graphset-test/0.1" {
		t.Errorf("User-Agent = %q, want graphset-test/0.1", gotUA)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if string(data) != body {
		t.Errorf("destination contents = %q, want %q", data, body)
	}
}

func TestDownloadNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "missing.zip")
	_, err := Download(ts.Client(), ts.URL, dest, testConfig())
	if err == nil {
		t.Fatal("Download succeeded on 404, want error")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("error = %v, want mention of HTTP 404", err)
	}
	assertNoLeftovers(t, dir)
}

func TestDownloadUnreachableServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "x.zip")
	if _, err := Download(&http.Client{Timeout: time.Second}, url, dest, testConfig()); err == nil {
		t.Fatal("Download succeeded against closed server, want error")
	}
	assertNoLeftovers(t, dir)
}

// assertNoLeftovers verifies neither the destination nor any temp file remains.
func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		t.Errorf("unexpected leftover file %s", e.Name())
	}
}
