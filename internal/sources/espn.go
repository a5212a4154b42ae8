package sources

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
	"powerrank/internal/util"
)

const espnAuthor = "Staff"

// ESPN articles put each team in a paragraph: "1. Boston Celtics".
func ESPN() Adapter {
	return adapterFunc{source: "ESPN", parse: parseESPN}
}

func parseESPN(doc *goquery.Document) ([]internal.RawEntry, error) {
	var date string
	doc.Find("span.timestamp").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := util.NormalizeSpaces(s.Text())
		if strings.Contains(text, "ET") {
			date = text
			return false
		}
		return true
	})
	if date == "" {
		return nil, internal.ParseError(nil, "ESPN: missing timestamp")
	}

	var lines []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := util.NormalizeSpaces(s.Text())
		if espnRankLine(text) {
			lines = append(lines, text)
		}
	})
	return requireEntries("ESPN", numbered(lines, espnAuthor, date))
}

func espnRankLine(text string) bool {
	fields := strings.Fields(text)
	if len(fields) < 2 || !unicode.IsDigit(rune(fields[0][0])) {
		return false
	}
	for _, r := range fields[1] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
