// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the dataset setup sequence: download the archive,
// extract it, convert the raw files to a .dat edge list, publish the output
// into the datasets directory, and clean up every intermediate artifact.
package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/graphset/internal/archive"
	"github.com/pdiddy/graphset/internal/convert"
	"github.com/pdiddy/graphset/internal/fetch"
	"github.com/pdiddy/graphset/pkg/types"
)

// Recorder receives the fetch record of a successful run. The catalog
// implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(rec types.FetchRecord) error
}

// Pipeline executes dataset setup runs. All steps are sequential; a failed
// step aborts the run and the staging directory is removed, so a failed run
// leaves no derived output and no intermediates behind. The process working
// directory is never changed.
type Pipeline struct {
	client  *http.Client
	cfg     types.PipelineConfig
	catalog Recorder
	out     io.Writer
}

// New builds a pipeline. catalog may be nil.
func New(client *http.Client, cfg types.PipelineConfig, catalog Recorder, out io.Writer) *Pipeline {
	return &Pipeline{client: client, cfg: cfg, catalog: catalog, out: out}
}

// Run performs the setup sequence for one dataset. If the derived output
// already exists and Force is unset, the run is skipped without network I/O.
// The skipped return value reports that case.
func (p *Pipeline) Run(ds types.Dataset) (rec types.FetchRecord, skipped bool, err error) {
	datasetsDir := p.cfg.Fetch.DatasetsDir
	if err := os.MkdirAll(datasetsDir, 0o755); err != nil {
		return rec, false, fmt.Errorf("creating datasets directory: %w", err)
	}

	outPath := filepath.Join(datasetsDir, ds.OutputName())
	if _, statErr := os.Stat(outPath); statErr == nil && !p.cfg.Fetch.Force {
		fmt.Fprintf(p.out, "skipped: %s (already exists)\n", ds.Name)
		return types.FetchRecord{Name: ds.Name, Output: outPath}, true, nil
	}

	// Every intermediate lives in a staging directory under the datasets
	// directory; removing it is the whole cleanup story, success or not.
	staging, err := os.MkdirTemp(datasetsDir, ".staging-"+ds.Name+"-")
	if err != nil {
		return rec, false, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	archiveName := path.Base(ds.URL)
	if archiveName == "." || archiveName == "/" {
		archiveName = "archive"
	}
	archivePath := filepath.Join(staging, archiveName)

	fmt.Fprintf(p.out, "downloading: %s (%s)\n", ds.Name, ds.URL)
	if _, err := fetch.Download(p.client, ds.URL, archivePath, p.cfg.Fetch.HTTPConfig); err != nil {
		return rec, false, fmt.Errorf("downloading %s: %w", ds.Name, err)
	}

	fmt.Fprintf(p.out, "extracting: %s\n", archiveName)
	if err := archive.Extract(ds.Archive, archivePath, staging, ds.ExtractedName); err != nil {
		return rec, false, fmt.Errorf("extracting %s: %w", ds.Name, err)
	}

	// The archive is consumed; drop it before conversion.
	if err := os.Remove(archivePath); err != nil {
		return rec, false, fmt.Errorf("removing archive: %w", err)
	}

	extractedDir, err := p.extractedDir(staging, ds)
	if err != nil {
		return rec, false, err
	}

	conv, err := convert.ForDataset(ds, p.cfg.Convert)
	if err != nil {
		return rec, false, err
	}

	fmt.Fprintf(p.out, "converting: %s (%s)\n", ds.Name, ds.Backend)
	stagedOut := filepath.Join(staging, ds.OutputName())
	stats, err := conv.Convert(extractedDir, stagedOut)
	if err != nil {
		return rec, false, fmt.Errorf("converting %s: %w", ds.Name, err)
	}

	rec = types.FetchRecord{
		Name:      ds.Name,
		SourceURL: ds.URL,
		SizeID:    ds.SizeID,
		Output:    outPath,
		Entities:  stats.Entities,
		Items:     stats.Items,
		Edges:     stats.Edges,
		FetchedAt: time.Now().UTC(),
	}

	stagedMeta := stagedOut + ".meta.yaml"
	if err := writeSidecar(stagedMeta, rec); err != nil {
		return rec, false, err
	}

	if err := p.publish(stagedOut, stagedMeta, outPath); err != nil {
		return rec, false, fmt.Errorf("publishing %s: %w", ds.Name, err)
	}

	if p.catalog != nil {
		if err := p.catalog.Record(rec); err != nil {
			fmt.Fprintf(p.out, "  warning: catalog update failed: %v\n", err)
		}
	}

	fmt.Fprintf(p.out, "fetched: %s (%d entities, %d items, %d edges)\n",
		ds.Name, stats.Entities, stats.Items, stats.Edges)
	return rec, false, nil
}

// extractedDir resolves the directory converters read from. For gz archives
// the extracted name is a single file, so conversion runs against staging.
func (p *Pipeline) extractedDir(staging string, ds types.Dataset) (string, error) {
	extracted := filepath.Join(staging, ds.ExtractedName)
	info, err := os.Stat(extracted)
	if err != nil {
		return "", fmt.Errorf("archive of %s did not produce %s: %w", ds.Name, ds.ExtractedName, err)
	}
	if info.IsDir() {
		return extracted, nil
	}
	return staging, nil
}

// publish moves the derived output and its sidecar into the datasets
// directory. The .dat moves first; if the sidecar move fails the .dat is
// removed again so a half-published pair never survives.
func (p *Pipeline) publish(stagedOut, stagedMeta, outPath string) error {
	if err := os.Rename(stagedOut, outPath); err != nil {
		return err
	}
	if err := os.Rename(stagedMeta, outPath+".meta.yaml"); err != nil {
		os.Remove(outPath)
		return err
	}
	return nil
}

func writeSidecar(path string, rec types.FetchRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// ReadSidecar loads the provenance record written next to a .dat output.
func ReadSidecar(datPath string) (types.FetchRecord, error) {
	data, err := os.ReadFile(datPath + ".meta.yaml")
	if err != nil {
		return types.FetchRecord{}, err
	}
	var rec types.FetchRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return types.FetchRecord{}, fmt.Errorf("parsing %s.meta.yaml: %w", datPath, err)
	}
	return rec, nil
}

// BatchResult holds the outcome of a batch of runs.
type BatchResult struct {
	Fetched int
	Skipped int
	Failed  int
	Records []types.FetchRecord
}

// Total returns the total number of datasets processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Skipped + r.Failed
}

// HasFailures reports whether any run failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// RunBatch processes datasets in order, printing per-dataset status and a
// summary. It continues after individual failures.
func (p *Pipeline) RunBatch(datasets []types.Dataset) BatchResult {
	var result BatchResult
	for _, ds := range datasets {
		rec, wasSkipped, err := p.Run(ds)
		if err != nil {
			fmt.Fprintf(p.out, "failed:  %s (%v)\n", ds.Name, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Fetched++
		}
		result.Records = append(result.Records, rec)
	}
	fmt.Fprintf(p.out, "\nBatch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		result.Fetched, result.Skipped, result.Failed, result.Total())
	return result
}
