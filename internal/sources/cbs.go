package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
	"powerrank/internal/util"
)

// CBS reads the power-rankings table.
func CBS() Adapter {
	return adapterFunc{source: "CBS", parse: parseCBSTable}
}

// CBSList reads articles that publish the ranking as a numbered list.
func CBSList() Adapter {
	return adapterFunc{source: "CBS", parse: parseCBSList}
}

func parseCBSTable(doc *goquery.Document) ([]internal.RawEntry, error) {
	table := doc.Find("table.table-power-rankings").First()
	if table.Length() == 0 {
		return nil, internal.ParseError(nil, "CBS: missing rankings table")
	}
	author, err := requireText(doc, "CBS", "author", "a.ArticleAuthor-name--link")
	if err != nil {
		return nil, err
	}
	date, err := requireText(doc, "CBS", "date", "time")
	if err != nil {
		return nil, err
	}

	var entries []internal.RawEntry
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		team := util.NormalizeSpaces(row.Find("span.team-name").First().Text())
		rank := util.NormalizeSpaces(row.Find("span.rank").First().Text())
		if team == "" || rank == "" {
			return
		}
		entries = append(entries, internal.RawEntry{
			TeamText: util.StripAnnotations(team),
			RankText: rank,
			Author:   author,
			DateText: date,
		})
	})
	return requireEntries("CBS", entries)
}

func parseCBSList(doc *goquery.Document) ([]internal.RawEntry, error) {
	content := doc.Find("div.Article-content").First()
	if content.Length() == 0 {
		return nil, internal.ParseError(nil, "CBS: missing article content")
	}
	date, err := requireText(doc, "CBS", "date", "time")
	if err != nil {
		return nil, err
	}
	date = strings.TrimSpace(strings.TrimSuffix(date, "ET"))
	author, _ := firstText(doc, "a.ArticleAuthor-name--link")

	return requireEntries("CBS", numbered(texts(content.Find("li")), author, date))
}
