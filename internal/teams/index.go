package teams

import (
	"powerrank/internal"
	"powerrank/internal/util"
)

// Index holds normalized lookup keys for each team, by position in the registry.
type Index struct {
	ByName   map[string]int
	ByAbbrev map[string]int
	ByAlias  map[string][]int
	Keys     [][]string
}

func BuildIndex(teams []internal.TeamIdentity) *Index {
	idx := &Index{
		ByName:   map[string]int{},
		ByAbbrev: map[string]int{},
		ByAlias:  map[string][]int{},
		Keys:     make([][]string, len(teams)),
	}

	for i, t := range teams {
		name := util.NormalizeTeamText(t.Name)
		abbrev := util.NormalizeTeamText(t.Abbreviation)
		if _, ok := idx.ByName[name]; !ok {
			idx.ByName[name] = i
		}
		if _, ok := idx.ByAbbrev[abbrev]; !ok {
			idx.ByAbbrev[abbrev] = i
		}

		keys := []string{name, abbrev}
		for _, alias := range t.Aliases {
			norm := util.NormalizeTeamText(alias)
			if norm == "" {
				continue
			}
			idx.ByAlias[norm] = append(idx.ByAlias[norm], i)
			keys = append(keys, norm)
		}
		idx.Keys[i] = keys
	}

	return idx
}
