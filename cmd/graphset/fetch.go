package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/graphset/internal/catalog"
	"github.com/pdiddy/graphset/internal/dataset"
	"github.com/pdiddy/graphset/internal/pipeline"
	"github.com/pdiddy/graphset/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "graphset/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [datasets...]",
	Short: "Download and prepare datasets",
	Long: `Fetch runs the full setup sequence for each named dataset: download
the archive, extract it, convert the raw files into a .dat edge list, and
publish the result into the datasets directory. Datasets whose output
already exists are skipped.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Bool("force", false, "re-fetch even when the output already exists")
	fetchCmd.Flags().Bool("all", false, "fetch every registered dataset")
	fetchCmd.Flags().String("manifest", "", "dataset manifest file (default \"datasets.yaml\")")
	fetchCmd.Flags().String("converter", "", "external converter command for datasets with the external backend")
	fetchCmd.Flags().Bool("no-catalog", false, "do not record fetches in the catalog")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if len(args) == 0 && !all {
		return fmt.Errorf("name one or more datasets, or pass --all (see `graphset list`)")
	}

	registry, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	var datasets []types.Dataset
	if all {
		datasets = registry.All()
	} else {
		for _, name := range args {
			ds, err := registry.Get(name)
			if err != nil {
				return err
			}
			datasets = append(datasets, ds)
		}
	}

	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	var recorder pipeline.Recorder
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")
	if !noCatalog && viper.GetBool("catalog.enabled") {
		store, err := catalog.Open(cfg.Fetch.DatasetsDir)
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	p := pipeline.New(client, cfg, recorder, os.Stdout)

	result := p.RunBatch(datasets)
	if result.HasFailures() {
		return fmt.Errorf("%d dataset(s) failed", result.Failed)
	}
	return nil
}

// loadRegistry builds the dataset registry from the built-ins plus the
// manifest named by flag or config.
func loadRegistry(cmd *cobra.Command) (*dataset.Registry, error) {
	manifest, _ := cmd.Flags().GetString("manifest")
	if manifest == "" {
		manifest = viper.GetString("manifest")
	}
	return dataset.LoadRegistry(manifest)
}

// pipelineConfig assembles the pipeline configuration from flags and config.
func pipelineConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	force, _ := cmd.Flags().GetBool("force")

	converter, _ := cmd.Flags().GetString("converter")
	if converter == "" {
		converter = viper.GetString("convert.external_command")
	}

	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: userAgent,
			},
			DatasetsDir: datasetsDir(),
			Force:       force,
		},
		Convert: types.ConvertConfig{ExternalCommand: converter},
		Catalog: types.CatalogConfig{Enabled: viper.GetBool("catalog.enabled")},
	}, nil
}
