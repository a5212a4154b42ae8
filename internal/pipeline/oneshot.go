package pipeline

import (
	"os"

	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
	"powerrank/internal/sources"
)

// ParseFile runs a saved article page through the adapter chosen by url.
// Nothing is fetched and nothing is written.
func ParseFile(path, url string, registry *sources.Registry, normalizer *Normalizer) (NormalizeResult, error) {
	adapter, err := registry.Lookup(url)
	if err != nil {
		return NormalizeResult{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return NormalizeResult{}, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return NormalizeResult{}, internal.ParseError(err, "read %s", path)
	}

	res, _, err := parseDocument(adapter, normalizer, url, doc)
	return res, err
}

// parseDocument applies adapter and normalizer. A document with no usable
// records is a parse error.
func parseDocument(adapter sources.Adapter, normalizer *Normalizer, url string, doc *goquery.Document) (NormalizeResult, int, error) {
	entries, err := adapter.Parse(doc)
	if err != nil {
		return NormalizeResult{}, 0, err
	}
	res := normalizer.Normalize(adapter.Source(), url, entries)
	if len(res.Records) == 0 {
		return res, len(entries), internal.ParseError(nil, "%s: all %d entries dropped", adapter.Source(), len(entries))
	}
	return res, len(entries), nil
}
