package pipeline

import (
	"powerrank/internal"
	"powerrank/internal/logging"
	"powerrank/internal/util"
)

type TeamResolver interface {
	Resolve(text string) (internal.TeamIdentity, error)
}

// Normalizer turns raw adapter entries into dataset records. Entries that
// cannot be resolved are dropped and reported; the rest of the batch goes on.
type Normalizer struct {
	resolver TeamResolver
	log      *logging.Logger
}

func NewNormalizer(resolver TeamResolver, log *logging.Logger) *Normalizer {
	if log == nil {
		log = logging.Default()
	}
	return &Normalizer{resolver: resolver, log: log}
}

type NormalizeResult struct {
	Records []internal.RankingRecord
	Dropped []internal.DroppedEntry
}

func (n *Normalizer) Normalize(source, url string, entries []internal.RawEntry) NormalizeResult {
	res := NormalizeResult{Records: make([]internal.RankingRecord, 0, len(entries))}
	dates := map[string]string{}

	drop := func(e internal.RawEntry, reason string) {
		res.Dropped = append(res.Dropped, internal.DroppedEntry{Entry: e, Reason: reason})
		n.log.Warn("dropped entry", "source", source, "team", e.TeamText, "rank", e.RankText, "reason", reason)
	}

	for _, e := range entries {
		date, ok := dates[e.DateText]
		if !ok {
			canonical, err := util.CanonicalDate(e.DateText)
			if err != nil {
				drop(e, err.Error())
				continue
			}
			dates[e.DateText] = canonical
			date = canonical
		}

		rank, err := util.ParseRank(e.RankText)
		if err != nil {
			drop(e, err.Error())
			continue
		}

		team, err := n.resolver.Resolve(e.TeamText)
		if err != nil {
			drop(e, err.Error())
			continue
		}

		res.Records = append(res.Records, internal.RankingRecord{
			Entryname: internal.MakeEntryname(source, date, team.Abbreviation),
			Source:    source,
			Author:    util.NormalizeSpaces(e.Author),
			Date:      date,
			URL:       url,
			Team:      team,
			Rank:      rank,
		})
	}

	return res
}
