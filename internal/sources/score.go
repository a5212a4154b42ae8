package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
)

const scoreAuthor = "Staff"

func TheScore() Adapter {
	return adapterFunc{source: "Score", parse: parseScore}
}

func parseScore(doc *goquery.Document) ([]internal.RawEntry, error) {
	date, ok := doc.Find("time[datetime]").First().Attr("datetime")
	if !ok || strings.TrimSpace(date) == "" {
		return nil, internal.ParseError(nil, "Score: missing time[datetime]")
	}
	return requireEntries("Score", numbered(texts(doc.Find("h3")), scoreAuthor, strings.TrimSpace(date)))
}
