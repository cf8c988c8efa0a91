package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/graphset/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <extracted-dir>",
	Short: "Convert an already-extracted dataset directory",
	Long: `Convert runs only the conversion step against a directory of raw
dataset files, writing <name>.dat into the datasets directory. Useful when
an archive was unpacked by hand or a conversion needs re-running.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("dataset", "", "registered dataset whose backend and layout to use (required)")
	convertCmd.Flags().String("manifest", "", "dataset manifest file (default \"datasets.yaml\")")
	convertCmd.Flags().String("converter", "", "external converter command for datasets with the external backend")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("dataset")
	if name == "" {
		return fmt.Errorf("--dataset is required (see `graphset list`)")
	}

	registry, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	ds, err := registry.Get(name)
	if err != nil {
		return err
	}

	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	conv, err := convert.ForDataset(ds, cfg.Convert)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Fetch.DatasetsDir, 0o755); err != nil {
		return fmt.Errorf("creating datasets directory: %w", err)
	}

	outPath := filepath.Join(cfg.Fetch.DatasetsDir, ds.OutputName())
	stats, err := conv.Convert(args[0], outPath)
	if err != nil {
		return fmt.Errorf("converting %s: %w", ds.Name, err)
	}

	fmt.Printf("converted: %s (%d entities, %d items, %d edges) -> %s\n",
		ds.Name, stats.Entities, stats.Items, stats.Edges, outPath)
	return nil
}
