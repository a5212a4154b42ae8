package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"powerrank/internal/dataset"
	"powerrank/internal/pipeline"
	"powerrank/internal/storage"
)

var (
	promoteCandidate string
	exportIn         string
	exportOut        string
)

func init() {
	promoteCmd.Flags().StringVar(&promoteCandidate, "candidate", "", "Generation file to publish. Defaults to the newest one.")
	exportCmd.Flags().StringVar(&exportIn, "in", "", "Dataset CSV. Defaults to the latest dataset.")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output xlsx path. Defaults to <output dir>/<input name>.xlsx.")
	rootCmd.AddCommand(rotateCmd, promoteCmd, exportCmd)
}

var rotateCmd = &cobra.Command{
	Use:   "rotate [--yes]",
	Short: "Creates today's generation from the newest existing one.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := newEngine().Rotate(cmd.Context())
		must(err)
		fmt.Printf("rotate %s: %s (from %s)\n", res.Outcome, res.Path, res.From)
	},
}

var promoteCmd = &cobra.Command{
	Use:   "promote [--candidate path] [--yes]",
	Short: "Replaces the latest dataset with a generation that has more rows.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := pipeline.NewProcessingService(nil, nil, nil, newEngine(), db, log.Named("promote"))
		res, err := svc.Promote(cmd.Context(), promoteCandidate, cfg.LatestPath)
		must(err)
		fmt.Printf("promote %s: candidate=%s rows=%d latest=%s rows=%d\n",
			res.Outcome, res.Candidate, res.CandidateRows, res.Latest, res.RowsAfter)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [--in dataset.csv] [--out rankings.xlsx]",
	Short: "Writes a dataset CSV to an xlsx workbook.",
	Run: func(cmd *cobra.Command, args []string) {
		in := exportIn
		if in == "" {
			in = cfg.LatestPath
		}
		out := exportOut
		if out == "" {
			out = filepath.Join(cfg.OutputDir, strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+".xlsx")
		}
		n, err := dataset.ExportXLSX(in, out)
		must(err)
		fmt.Printf("exported %d rows to %s\n", n, out)
	},
}
