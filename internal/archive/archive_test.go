// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/graphset/pkg/types"
)

// buildZip returns zip archive bytes holding the given name->content entries.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header %s: %v", name, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("tar write %s: %v", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestExtractZip(t *testing.T) {
	data := buildZip(t, map[string]string{
		"ml-100k/u.data": "1\t1\t5\t874965758\n",
		"ml-100k/README": "MovieLens 100K\n",
	})
	archivePath := writeTemp(t, "ml-100k.zip", data)
	dest := t.TempDir()

	if err := Extract(types.ArchiveZip, archivePath, dest, ""); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "ml-100k", "u.data"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(got) != "1\t1\t5\t874965758\n" {
		t.Errorf("extracted content = %q", got)
	}
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	data := buildZip(t, map[string]string{"../escape.txt": "nope"})
	archivePath := writeTemp(t, "evil.zip", data)
	dest := t.TempDir()

	if err := Extract(types.ArchiveZip, archivePath, dest, ""); err == nil {
		t.Fatal("Extract accepted a traversal entry, want error")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt")); err == nil {
		t.Error("traversal entry was written outside the destination")
	}
}

func TestExtractTarGz(t *testing.T) {
	data := buildTarGz(t, map[string]string{"ml/ratings.dat": "1::2::3::4\n"})
	archivePath := writeTemp(t, "ml.tar.gz", data)
	dest := t.TempDir()

	if err := Extract(types.ArchiveTarGz, archivePath, dest, ""); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dest, "ml", "ratings.dat"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(got) != "1::2::3::4\n" {
		t.Errorf("extracted content = %q", got)
	}
}

func TestExtractGz(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("review data\n"))
	gz.Close()
	archivePath := writeTemp(t, "reviews.txt.gz", buf.Bytes())
	dest := t.TempDir()

	if err := Extract(types.ArchiveGz, archivePath, dest, "reviews.txt"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dest, "reviews.txt"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(got) != "review data\n" {
		t.Errorf("extracted content = %q", got)
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	archivePath := writeTemp(t, "corrupt.zip", []byte("not a zip"))
	if err := Extract(types.ArchiveZip, archivePath, t.TempDir(), ""); err == nil {
		t.Fatal("Extract accepted a corrupt zip, want error")
	}
}

func TestKindFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    types.ArchiveKind
		wantErr bool
	}{
		{"http://files.grouplens.org/datasets/movielens/ml-1m.zip", types.ArchiveZip, false},
		{"https://example.com/data.tar.gz", types.ArchiveTarGz, false},
		{"https://example.com/data.tgz", types.ArchiveTarGz, false},
		{"https://snap.stanford.edu/data/web-BeerAdvocate.txt.gz", types.ArchiveGz, false},
		{"https://example.com/data.rar", "", true},
	}
	for _, tt := range tests {
		got, err := KindFromURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("KindFromURL(%q) succeeded, want error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("KindFromURL(%q): %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("KindFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
