package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"powerrank/internal/pipeline"
	"powerrank/internal/sources"
	"powerrank/internal/storage"
)

var (
	ingestFromFile string
	ingestPromote  bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestFromFile, "from-file", "", "Read article URLs from a file, one per line.")
	ingestCmd.Flags().BoolVar(&ingestPromote, "promote", false, "Promote the newest generation to the latest dataset after merging.")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <url>... [--from-file urls.txt] [--promote] [--yes]",
	Short: "Fetches ranking articles and merges them into today's generation.",
	Run: func(cmd *cobra.Command, args []string) {
		urls := append([]string{}, args...)
		if ingestFromFile != "" {
			fromFile, err := readURLFile(ingestFromFile)
			must(err)
			urls = append(urls, fromFile...)
		}
		if len(urls) == 0 {
			must(fmt.Errorf("no urls given"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := pipeline.NewProcessingService(
			newFetcher(),
			sources.Default(),
			pipeline.NewNormalizer(mustResolver(), log.Named("normalize")),
			newEngine(),
			db,
			log.Named("ingest"),
		)

		promoteTo := ""
		if ingestPromote {
			promoteTo = cfg.LatestPath
		}
		batch, err := svc.ProcessURLs(cmd.Context(), urls, promoteTo)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"URL", "Source", "Parsed", "Dropped", "Appended", "Outcome", "Error"})
		for _, r := range batch.URLs {
			errText := ""
			if r.Err != nil {
				errText = r.Err.Error()
			}
			t.AppendRow(table.Row{r.URL, r.Source, r.Parsed, len(r.Dropped), r.Merge.Appended, r.Outcome, errText})
		}
		t.AppendFooter(table.Row{"", "", "", "", batch.Appended(), "", ""})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if batch.Promotion != nil {
			p := batch.Promotion
			fmt.Printf("promotion %s: %s (%d rows) -> %s (%d rows before)\n", p.Outcome, p.Candidate, p.CandidateRows, p.Latest, p.LatestRows)
		}
		must(err)
	},
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
