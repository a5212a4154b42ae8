package sources

import (
	"github.com/PuerkitoBio/goquery"

	"powerrank/internal"
)

// BleacherReport reads the slideshow layout: one h2 per team after the
// article title.
func BleacherReport() Adapter {
	return adapterFunc{source: "BR", parse: parseBleacherSlides}
}

// BleacherReportCompact reads the single-page layout used for shorter
// rankings articles.
func BleacherReportCompact() Adapter {
	return adapterFunc{source: "BR", parse: parseBleacherCompact}
}

func parseBleacherSlides(doc *goquery.Document) ([]internal.RawEntry, error) {
	author, err := requireText(doc, "BR", "author", "span.name")
	if err != nil {
		return nil, err
	}
	date, err := requireText(doc, "BR", "date", `span[class*="date"]`)
	if err != nil {
		return nil, err
	}

	headings := doc.Find("h2")
	if headings.Length() < 2 {
		return nil, internal.ParseError(nil, "BR: no ranking headings")
	}
	return requireEntries("BR", numbered(texts(headings.Slice(1, headings.Length())), author, date))
}

func parseBleacherCompact(doc *goquery.Document) ([]internal.RawEntry, error) {
	author, err := requireText(doc, "BR", "author", `span[id="id/article/header/author"]`)
	if err != nil {
		return nil, err
	}
	date, err := requireText(doc, "BR", "date", `span[id="id/article/header/post_date"]`)
	if err != nil {
		return nil, err
	}

	titles := doc.Find(`span[class*="small__headings__title__large"]`)
	return requireEntries("BR", numbered(texts(titles), author, date))
}
