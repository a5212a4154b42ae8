package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"powerrank/internal/storage"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [-n 20]",
	Short: "Shows recent ingestion runs.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(historyLimit)
		must(err)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"When", "Trace", "Source", "URL", "Parsed", "Dropped", "Appended", "Outcome"})
		for _, r := range runs {
			t.AppendRow(table.Row{r.CreatedAt, shortTrace(r.TraceID), r.Source, r.URL, r.Parsed, r.Dropped, r.Appended, r.Outcome})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		last, err := db.GetMetadata(storage.MetaLastPromotion)
		must(err)
		if last != nil {
			fmt.Printf("last promotion: %s\n", *last)
		}
	},
}

func shortTrace(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
