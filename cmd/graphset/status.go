package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/graphset/internal/catalog"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the fetch catalog",
	Long: `Status lists every dataset recorded in the catalog: when it was
fetched, where its output lives, and the graph sizes.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(datasetsDir())
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No datasets fetched yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENTITIES\tITEMS\tEDGES\tFETCHED AT\tOUTPUT")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			rec.Name, rec.Entities, rec.Items, rec.Edges,
			rec.FetchedAt.Format(time.RFC3339), rec.Output)
	}
	return w.Flush()
}
