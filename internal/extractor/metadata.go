package extractor

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"blogpipe/pkg/utils"
)

// pageMetadata is what the page head says about itself.
type pageMetadata struct {
	Title  string
	Author string
	Date   *time.Time

	// Heading is the first <h1> in the body. Readability demotes h1 to h2,
	// so the converted markdown never carries it.
	Heading string
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func readMetadata(doc *goquery.Document) pageMetadata {
	s := utils.NewStringHelper()

	var meta pageMetadata

	meta.Title = s.NormalizeWhitespace(firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		metaContent(doc, `meta[name="twitter:title"]`),
		doc.Find("head title").First().Text(),
	))

	meta.Heading = s.NormalizeWhitespace(doc.Find("body h1").First().Text())

	meta.Author = s.NormalizeWhitespace(firstNonEmpty(
		metaContent(doc, `meta[name="author"]`),
		metaContent(doc, `meta[property="article:author"]`),
	))

	rawDate := firstNonEmpty(
		metaContent(doc, `meta[property="article:published_time"]`),
		attr(doc.Find("time[datetime]").First(), "datetime"),
	)
	if rawDate != "" {
		meta.Date = parseDate(rawDate)
	}

	return meta
}

func parseDate(raw string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return &t
		}
	}

	return nil
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc.Find(selector).First(), "content")
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)

	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
