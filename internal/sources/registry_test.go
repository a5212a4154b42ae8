package sources

import (
	"testing"

	"github.com/stretchr/testify/require"

	"powerrank/internal"
)

func TestDomainLabel(t *testing.T) {
	cases := map[string]string{
		"https://www.espn.com/nba/story/_/id/1/power-rankings": "espn",
		"https://bleacherreport.com/articles/10139887":         "bleacherreport",
		"https://www.cbssports.com/nba/powerrankings/":         "cbssports",
		"https://WWW.NBA.COM/news/power-rankings-2024-25":      "nba",
		"www.espn.com/nba/story/_/id/1/power-rankings":         "espn",
		"thescore.com/nba/news/3089134":                        "thescore",
	}
	for raw, want := range cases {
		got, err := DomainLabel(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := DomainLabel("not a url")
	require.True(t, internal.Is(err, internal.ErrUnsupportedSource))
}

func TestRegistryLookupWithoutScheme(t *testing.T) {
	adapter, err := Default().Lookup("www.espn.com/nba/story/_/id/41585464/nba-power-rankings")
	require.NoError(t, err)
	require.Equal(t, "ESPN", adapter.Source())
}

func TestRegistryLookup(t *testing.T) {
	reg := Default()

	adapter, err := reg.Lookup("https://www.foxsports.com/stories/nba/nba-power-rankings")
	require.NoError(t, err)
	require.Equal(t, "Fox", adapter.Source())

	adapter, err = reg.Lookup("https://www.thescore.com/nba/news/3089134")
	require.NoError(t, err)
	require.Equal(t, "Score", adapter.Source())

	_, err = reg.Lookup("https://www.si.com/nba/power-rankings")
	require.True(t, internal.Is(err, internal.ErrSourceNotSupported))
	require.False(t, internal.Is(err, internal.ErrUnsupportedSource))

	_, err = reg.Lookup("https://www.example.com/rankings")
	require.True(t, internal.Is(err, internal.ErrUnsupportedSource))

	require.Equal(t, []string{"bleacherreport", "cbssports", "espn", "foxsports", "nba", "thescore"}, reg.Labels())
}

func TestRegistryRegisterOverrides(t *testing.T) {
	reg := NewRegistry()
	reg.Recognize("yahoo", "Yahoo Sports")
	reg.Register("yahoo", Fox())

	adapter, err := reg.Lookup("https://sports.yahoo.com/nba/")
	require.NoError(t, err)
	require.Equal(t, "Fox", adapter.Source())
}
