package teams

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"powerrank/internal"
)

func mustDefault(t *testing.T) *Registry {
	t.Helper()
	reg, err := Default()
	require.NoError(t, err)
	return reg
}

func TestDefaultRegistry(t *testing.T) {
	reg := mustDefault(t)
	require.Equal(t, 30, reg.Len())

	phi, ok := reg.ByAbbreviation("phi")
	require.True(t, ok)
	require.Equal(t, "Philadelphia 76ers", phi.Name)
	require.Equal(t, "Eastern", phi.Conference)
	require.Equal(t, "Atlantic", phi.Division)
	require.Contains(t, phi.Aliases, "Sixers")
	require.Equal(t, "#006BB6", phi.Colors[0])
}

func TestResolveStableUnderVariation(t *testing.T) {
	resolver := NewResolver(mustDefault(t))

	for _, text := range []string{"76ers", "Philadelphia", "PHI", "Philadelphia 76ers (+500)", "Philly", "sixers"} {
		team, err := resolver.Resolve(text)
		require.NoError(t, err, text)
		require.Equal(t, "Philadelphia 76ers", team.Name, text)
		require.Equal(t, "PHI", team.Abbreviation, text)
	}
}

func TestResolveTiers(t *testing.T) {
	resolver := NewResolver(mustDefault(t))

	cases := []struct {
		text string
		team string
		tier MatchTier
	}{
		{text: "Boston Celtics (14-2)", team: "Boston Celtics", tier: TierName},
		{text: "UTA", team: "Utah Jazz", tier: TierAbbrev},
		{text: "Jazz", team: "Utah Jazz", tier: TierAlias},
		{text: "L.A. Clippers", team: "LA Clippers", tier: TierName},
		{text: "Cleveland Cavaliers Record: 15-1", team: "Cleveland Cavaliers", tier: TierWord},
		{text: "Timberwolve", team: "Minnesota Timberwolves", tier: TierSubstring},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			m, err := resolver.Match(tc.text)
			require.NoError(t, err)
			require.Equal(t, tc.team, m.Team.Name)
			require.Equal(t, tc.tier, m.Tier)
		})
	}
}

func TestResolveShortAliasDoesNotLeakIntoWords(t *testing.T) {
	resolver := NewResolver(mustDefault(t))

	m, err := resolver.Match("Sacramento's Kings")
	require.NoError(t, err)
	require.Equal(t, "Sacramento Kings", m.Team.Name)
	require.Equal(t, TierWord, m.Tier)
}

func TestResolveUnresolved(t *testing.T) {
	resolver := NewResolver(mustDefault(t))

	_, err := resolver.Resolve("Seattle SuperSonics")
	require.Error(t, err)
	require.True(t, internal.Is(err, internal.ErrUnresolvedTeam))

	_, err = resolver.Resolve("(12-3)")
	require.True(t, internal.Is(err, internal.ErrUnresolvedTeam))
}

func TestLoadValidatesColumns(t *testing.T) {
	_, err := Load(strings.NewReader("teamname,abbrev\nBoston Celtics,BOS\n"))
	require.ErrorContains(t, err, "missing column")

	_, err = Load(strings.NewReader("teamname,abbrev,conference,division,aliases\n,BOS,Eastern,Atlantic,\n"))
	require.ErrorContains(t, err, "row 2")

	reg, err := Load(strings.NewReader("teamname,abbrev,conference,division,aliases\nSeattle SuperSonics,sea,Western,Pacific,Sonics|Seattle\n"))
	require.NoError(t, err)
	team, err := NewResolver(reg).Resolve("Sonics")
	require.NoError(t, err)
	require.Equal(t, "SEA", team.Abbreviation)
}
