// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pdiddy/graphset/pkg/eigraph"
	"github.com/pdiddy/graphset/pkg/types"
)

// runner abstracts command execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(dir, name string, args ...string) error
}

// osRunner is the production runner backed by os/exec. Converter output
// goes to the process stderr so conversion diagnostics remain visible.
type osRunner struct{}

func (o *osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osRunner) Run(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ExternalConverter runs a user-configured converter command inside the
// extracted directory, passing the dataset size identifier as the single
// positional argument. The command's contract is opaque: it must write
// <dataset>.dat into the extracted directory, and nothing beyond that
// naming convention is assumed. Counts come from the produced file's header.
type ExternalConverter struct {
	command string
	ds      types.Dataset
	exec    runner
}

// NewExternalConverter builds the external backend for ds.
func NewExternalConverter(command string, ds types.Dataset) *ExternalConverter {
	return &ExternalConverter{command: command, ds: ds, exec: &osRunner{}}
}

// Convert runs the external command and moves its output to outPath.
func (c *ExternalConverter) Convert(extractedDir, outPath string) (eigraph.Stats, error) {
	if _, err := c.exec.LookPath(c.command); err != nil {
		return eigraph.Stats{}, fmt.Errorf("external converter %q not found: %w", c.command, err)
	}

	if err := c.exec.Run(extractedDir, c.command, c.ds.SizeID); err != nil {
		return eigraph.Stats{}, fmt.Errorf("running %s %s: %w", c.command, c.ds.SizeID, err)
	}

	produced := filepath.Join(extractedDir, c.ds.OutputName())
	if _, err := os.Stat(produced); err != nil {
		return eigraph.Stats{}, fmt.Errorf("external converter did not produce %s: %w", c.ds.OutputName(), err)
	}

	st, err := eigraph.ReadStats(produced)
	if err != nil {
		return eigraph.Stats{}, fmt.Errorf("inspecting converter output: %w", err)
	}

	if err := moveFile(produced, outPath); err != nil {
		return eigraph.Stats{}, fmt.Errorf("moving converter output: %w", err)
	}
	return st, nil
}

// renameFile is swapped in tests to exercise the copy fallback.
var renameFile = os.Rename

// moveFile moves src to dst, falling back to copy-and-remove when rename
// fails. The extracted directory is user-supplied in the standalone convert
// path and can sit on a different filesystem than the datasets directory.
func moveFile(src, dst string) error {
	if err := renameFile(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(dst)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(dst)
		return closeErr
	}
	return os.Remove(src)
}
