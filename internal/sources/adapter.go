package sources

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
	"powerrank/internal/util"
)

// Adapter converts one site's article document into raw ranking entries.
type Adapter interface {
	// Source is the label written to the dataset's source column.
	Source() string
	Parse(doc *goquery.Document) ([]internal.RawEntry, error)
}

type adapterFunc struct {
	source string
	parse  func(doc *goquery.Document) ([]internal.RawEntry, error)
}

func (a adapterFunc) Source() string { return a.source }

func (a adapterFunc) Parse(doc *goquery.Document) ([]internal.RawEntry, error) {
	return a.parse(doc)
}

// withFallback tries primary and, on a parse failure only, secondary. Both
// must describe the same source.
type withFallback struct {
	primary   Adapter
	secondary Adapter
}

func WithFallback(primary, secondary Adapter) Adapter {
	return withFallback{primary: primary, secondary: secondary}
}

func (w withFallback) Source() string { return w.primary.Source() }

func (w withFallback) Parse(doc *goquery.Document) ([]internal.RawEntry, error) {
	entries, err := w.primary.Parse(doc)
	if err == nil {
		return entries, nil
	}
	if !internal.Is(err, internal.ErrParse) {
		return nil, err
	}

	entries, fallbackErr := w.secondary.Parse(doc)
	if fallbackErr != nil {
		return nil, internal.ParseError(fallbackErr, "%s: primary format failed (%v); fallback format", w.Source(), err)
	}
	return entries, nil
}

// numbered collects "N. Team" strings into raw entries, skipping anything
// without a numeric prefix.
func numbered(texts []string, author, date string) []internal.RawEntry {
	out := make([]internal.RawEntry, 0, len(texts))
	for _, text := range texts {
		rank, team, ok := util.SplitRankPrefix(text)
		if !ok || team == "" {
			continue
		}
		out = append(out, internal.RawEntry{
			TeamText: util.StripAnnotations(team),
			RankText: rank,
			Author:   author,
			DateText: date,
		})
	}
	return out
}

// positional ranks team texts by their order in the document, 1 first.
func positional(texts []string, author, date string) []internal.RawEntry {
	out := make([]internal.RawEntry, 0, len(texts))
	for _, text := range texts {
		team := util.StripAnnotations(text)
		if team == "" {
			continue
		}
		out = append(out, internal.RawEntry{
			TeamText: team,
			RankText: strconv.Itoa(len(out) + 1),
			Author:   author,
			DateText: date,
		})
	}
	return out
}

func texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, util.NormalizeSpaces(s.Text()))
	})
	return out
}

func firstText(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	text := util.NormalizeSpaces(sel.Text())
	return text, text != ""
}

// requireText returns the first match's text or a parse error naming what is missing.
func requireText(doc *goquery.Document, source, what, selector string) (string, error) {
	text, ok := firstText(doc, selector)
	if !ok {
		return "", internal.ParseError(nil, "%s: missing %s (%s)", source, what, selector)
	}
	return text, nil
}

func requireEntries(source string, entries []internal.RawEntry) ([]internal.RawEntry, error) {
	if len(entries) == 0 {
		return nil, internal.ParseError(nil, "%s: no ranking entries found", source)
	}
	return entries, nil
}

func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return util.NormalizeSpaces(b.String())
}
