package sources

import (
	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
	"powerrank/internal/util"
)

// NBA reads nba.com's ranking cards. Ranks are the card order.
func NBA() Adapter {
	return adapterFunc{source: "NBA", parse: parseNBA}
}

func parseNBA(doc *goquery.Document) ([]internal.RawEntry, error) {
	author, err := requireText(doc, "NBA", "author", `p[class*="_authorName"]`)
	if err != nil {
		return nil, err
	}
	date, err := requireText(doc, "NBA", "date", "time")
	if err != nil {
		return nil, err
	}

	var teams []string
	doc.Find(`div[class*="ArticlePowerRankings_pr_"]`).Each(func(_ int, card *goquery.Selection) {
		link := card.Find(`a[class*="ArticlePowerRankings_prTeam"]`).First()
		if link.Length() == 0 {
			return
		}
		if team := util.NormalizeSpaces(link.Text()); team != "" {
			teams = append(teams, team)
		}
	})
	return requireEntries("NBA", positional(teams, author, date))
}
