package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered datasets",
	Long: `List prints every dataset graphset knows how to fetch: the built-in
registry plus any entries from the manifest. A trailing marker shows which
datasets already have a derived output in the datasets directory.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("manifest", "", "dataset manifest file (default \"datasets.yaml\")")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	dir := datasetsDir()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tSIZE\tFETCHED\tDESCRIPTION")
	for _, ds := range registry.All() {
		fetched := ""
		if _, err := os.Stat(filepath.Join(dir, ds.OutputName())); err == nil {
			fetched = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ds.Name, ds.Backend, ds.SizeID, fetched, ds.Description)
	}
	return w.Flush()
}
