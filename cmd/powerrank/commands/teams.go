package commands

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"powerrank/internal/teams"
)

func init() {
	rootCmd.AddCommand(teamsCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams [query]",
	Short: "Lists the team registry, or shows how a piece of text resolves.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := teams.Open(cfg.TeamsCSV)
		must(err)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)

		if len(args) == 1 {
			m, err := teams.NewResolver(reg).Match(args[0])
			must(err)
			t.AppendHeader(table.Row{"Query", "Team", "Abbrev", "Tier", "Score"})
			t.AppendRow(table.Row{args[0], m.Team.Name, m.Team.Abbreviation, m.Tier, m.Score})
			t.Render()
			return
		}

		t.AppendHeader(table.Row{"Team", "Abbrev", "Conference", "Division", "Aliases"})
		for _, team := range reg.Teams() {
			t.AppendRow(table.Row{team.Name, team.Abbreviation, team.Conference, team.Division, strings.Join(team.Aliases, ", ")})
		}
		t.Render()
	},
}
