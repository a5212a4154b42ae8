package teams

import (
	"strings"

	"github.com/antzucaro/matchr"

	"powerrank/internal"
	"powerrank/internal/util"
)

type MatchTier string

const (
	TierName      MatchTier = "NAME"
	TierAbbrev    MatchTier = "ABBREV"
	TierAlias     MatchTier = "ALIAS"
	TierWord      MatchTier = "WORD"
	TierSubstring MatchTier = "SUBSTRING"
)

// minSubstringLen keeps two-letter aliases ("NO", "SA") out of raw substring
// matching, where they hit inside unrelated words.
const minSubstringLen = 3

type Match struct {
	Team  internal.TeamIdentity
	Tier  MatchTier
	Score float64
}

type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

func (r *Resolver) Resolve(text string) (internal.TeamIdentity, error) {
	m, err := r.Match(text)
	if err != nil {
		return internal.TeamIdentity{}, err
	}
	return m.Team, nil
}

// Match resolves text in priority order: exact full name, exact abbreviation,
// exact alias, whole-word containment, then raw substring containment in
// either direction. Several candidates in one tier are ranked by Jaro-Winkler
// similarity to the team's full name, registry order breaking ties.
func (r *Resolver) Match(text string) (Match, error) {
	query := util.NormalizeTeamText(text)
	if query == "" {
		return Match{}, internal.Mark(internal.ErrUnresolvedTeam, nil, "empty team text %q", text)
	}
	idx := r.registry.index

	if i, ok := idx.ByName[query]; ok {
		return Match{Team: r.registry.teams[i], Tier: TierName, Score: 1}, nil
	}
	if i, ok := idx.ByAbbrev[query]; ok {
		return Match{Team: r.registry.teams[i], Tier: TierAbbrev, Score: 1}, nil
	}
	if hits := idx.ByAlias[query]; len(hits) > 0 {
		return r.best(query, hits, TierAlias), nil
	}

	if hits := r.scan(query, wordContains); len(hits) > 0 {
		return r.best(query, hits, TierWord), nil
	}
	if hits := r.scan(query, rawContains); len(hits) > 0 {
		return r.best(query, hits, TierSubstring), nil
	}

	return Match{}, internal.Mark(internal.ErrUnresolvedTeam, nil, "no team matches %q", text)
}

func (r *Resolver) scan(query string, contains func(a, b string) bool) []int {
	var hits []int
	for i, keys := range r.registry.index.Keys {
		for _, key := range keys {
			if contains(query, key) || contains(key, query) {
				hits = append(hits, i)
				break
			}
		}
	}
	return hits
}

func (r *Resolver) best(query string, hits []int, tier MatchTier) Match {
	bestIdx := hits[0]
	bestScore := -1.0
	for _, i := range hits {
		score := matchr.JaroWinkler(query, util.NormalizeTeamText(r.registry.teams[i].Name), false)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return Match{Team: r.registry.teams[bestIdx], Tier: tier, Score: bestScore}
}

func wordContains(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

func rawContains(haystack, needle string) bool {
	return len(needle) >= minSubstringLen && strings.Contains(haystack, needle)
}
