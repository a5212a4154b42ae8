package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
	"powerrank/internal/util"
)

const foxListHeading = "NBA POWER RANKINGS"

// Fox reads the first ordered list after the rankings heading. Ranks are the
// list order.
func Fox() Adapter {
	return adapterFunc{source: "Fox", parse: parseFox}
}

func parseFox(doc *goquery.Document) ([]internal.RawEntry, error) {
	author, err := requireText(doc, "Fox", "author", "div.contributor-name")
	if err != nil {
		return nil, err
	}
	dateSpan := doc.Find("div.info-text span").Eq(1)
	date := util.NormalizeSpaces(dateSpan.Text())
	if date == "" {
		return nil, internal.ParseError(nil, "Fox: missing date in div.info-text")
	}

	list := foxRankingList(doc)
	if list == nil {
		return nil, internal.ParseError(nil, "Fox: no list after %q", foxListHeading)
	}
	return requireEntries("Fox", positional(texts(list.Find("li")), author, date))
}

func foxRankingList(doc *goquery.Document) *goquery.Selection {
	var list *goquery.Selection
	found := false
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !found {
			found = strings.EqualFold(ownText(s), foxListHeading)
			return true
		}
		if goquery.NodeName(s) == "ol" {
			list = s
			return false
		}
		return true
	})
	return list
}
