// Package teams holds the NBA team reference table and resolves free-text
// team mentions to a canonical identity.
package teams

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"powerrank/internal"
)

//go:embed data/nba_teams.csv
var defaultTeamsCSV []byte

var requiredColumns = []string{"teamname", "abbrev", "conference", "division", "aliases"}

// Registry is a read-only team table. Build one per process and pass it to
// whatever needs to resolve team names.
type Registry struct {
	teams []internal.TeamIdentity
	index *Index
}

// Default returns the registry shipped with the binary.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(defaultTeamsCSV))
}

// Open loads the registry from path, or the embedded default when path is empty.
func Open(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Registry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read team registry: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("team registry is empty")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("team registry missing column %q", name)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	out := make([]internal.TeamIdentity, 0, len(rows)-1)
	for i, row := range rows[1:] {
		name := cell(row, "teamname")
		abbrev := strings.ToUpper(cell(row, "abbrev"))
		if name == "" || abbrev == "" {
			return nil, fmt.Errorf("team registry row %d: teamname and abbrev are required", i+2)
		}
		team := internal.TeamIdentity{
			Name:         name,
			Abbreviation: abbrev,
			Location:     cell(row, "location"),
			Conference:   cell(row, "conference"),
			Division:     cell(row, "division"),
			Aliases:      splitAliases(cell(row, "aliases")),
			Colors:       [3]string{cell(row, "color_1"), cell(row, "color_2"), cell(row, "color_3")},
		}
		out = append(out, team)
	}

	return &Registry{teams: out, index: BuildIndex(out)}, nil
}

func splitAliases(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Teams returns a copy of the table in registry order.
func (r *Registry) Teams() []internal.TeamIdentity {
	out := make([]internal.TeamIdentity, len(r.teams))
	copy(out, r.teams)
	return out
}

func (r *Registry) Len() int {
	return len(r.teams)
}

func (r *Registry) ByAbbreviation(abbrev string) (internal.TeamIdentity, bool) {
	idx, ok := r.index.ByAbbrev[strings.ToLower(strings.TrimSpace(abbrev))]
	if !ok {
		return internal.TeamIdentity{}, false
	}
	return r.teams[idx], true
}
