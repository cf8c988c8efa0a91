// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive unpacks dataset archives: zip, tar.gz, or a single
// gzip-compressed file.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/graphset/pkg/types"
)

// Extract unpacks the archive at archivePath into destDir according to kind.
// For gz archives, name is the output filename inside destDir; container
// archives ignore it. Entry paths are validated so no file is written
// outside destDir.
func Extract(kind types.ArchiveKind, archivePath, destDir, name string) error {
	switch kind {
	case types.ArchiveZip:
		return extractZip(archivePath, destDir)
	case types.ArchiveTarGz:
		return extractTarGz(archivePath, destDir)
	case types.ArchiveGz:
		return extractGz(archivePath, filepath.Join(destDir, name))
	default:
		return fmt.Errorf("unsupported archive kind %q", kind)
	}
}

// KindFromURL guesses the archive kind from a URL or filename suffix.
func KindFromURL(url string) (types.ArchiveKind, error) {
	switch {
	case strings.HasSuffix(url, ".zip"):
		return types.ArchiveZip, nil
	case strings.HasSuffix(url, ".tar.gz"), strings.HasSuffix(url, ".tgz"):
		return types.ArchiveTarGz, nil
	case strings.HasSuffix(url, ".gz"):
		return types.ArchiveGz, nil
	}
	return "", fmt.Errorf("cannot infer archive kind from %q", url)
}

// securePath joins name under destDir, rejecting absolute paths and any
// path that escapes destDir.
func securePath(destDir, entryName string) (string, error) {
	if filepath.IsAbs(entryName) {
		return "", fmt.Errorf("archive entry %q has an absolute path", entryName)
	}
	path := filepath.Join(destDir, entryName)
	if path != destDir && !strings.HasPrefix(path, destDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the extraction directory", entryName)
	}
	return path, nil
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip %s: %w", archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		path, err := securePath(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		err = writeFile(path, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archivePath, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar %s: %w", archivePath, err)
		}
		path, err := securePath(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", path, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", path, err)
			}
			if err := writeFile(path, tr); err != nil {
				return fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
		default:
			// Symlinks and specials are dropped: dataset archives are
			// plain file trees.
		}
	}
}

func extractGz(archivePath, destPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archivePath, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip %s: %w", archivePath, err)
	}
	defer gz.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", destPath, err)
	}
	if err := writeFile(destPath, gz); err != nil {
		return fmt.Errorf("extracting %s: %w", archivePath, err)
	}
	return nil
}

func writeFile(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, r)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
