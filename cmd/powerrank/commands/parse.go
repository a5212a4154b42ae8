package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"powerrank/internal"
	"powerrank/internal/pipeline"
	"powerrank/internal/sources"
)

var (
	parseFile string
	parseURL  string
)

func init() {
	parseCmd.Flags().StringVar(&parseFile, "file", "", "Saved article HTML.")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "Article URL, used to pick the adapter and fill the url column.")
	_ = parseCmd.MarkFlagRequired("file")
	_ = parseCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse --file page.html --url <article url>",
	Short: "Parses a saved article page and prints the records without writing anything.",
	Run: func(cmd *cobra.Command, args []string) {
		normalizer := pipeline.NewNormalizer(mustResolver(), log.Named("normalize"))
		res, err := pipeline.ParseFile(parseFile, parseURL, sources.Default(), normalizer)
		if skipUnsupported(os.Stdout, parseURL, err) {
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Entryname", "Author", "Date", "Team", "Rank"})
		for _, r := range res.Records {
			t.AppendRow(table.Row{r.Entryname, r.Author, r.Date, r.Team.Name, r.Rank})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		for _, d := range res.Dropped {
			fmt.Fprintf(os.Stderr, "dropped %q rank %q: %s\n", d.Entry.TeamText, d.Entry.RankText, d.Reason)
		}
		must(err)
	},
}

// skipUnsupported reports a recognized source without an adapter as a no-op.
func skipUnsupported(w io.Writer, url string, err error) bool {
	if !internal.Is(err, internal.ErrSourceNotSupported) {
		return false
	}
	fmt.Fprintf(w, "skipped %s: %v\n", url, err)
	return true
}
