package pageinsight

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

// ExtractMeta reads the on-page SEO metadata from doc. Missing or blank
// values are reported as nil.
func ExtractMeta(doc *goquery.Document) model.SeoMeta {
	title := nonEmpty(doc.Find("title").First().Text())
	description := trimmedAttr(doc.Find(`meta[name="description"]`), "content")

	return model.SeoMeta{
		Title:           textValue(title),
		MetaDescription: textValue(description),
		Robots:          trimmedAttr(doc.Find(`meta[name="robots"]`), "content"),
		Canonical:       trimmedAttr(doc.Find(`link[rel="canonical"]`), "href"),
		OpenGraph:       collectMeta(doc, "property", "og:"),
		TwitterCard:     collectMeta(doc, "name", "twitter:"),
	}
}

func textValue(v *string) model.TextValue {
	if v == nil {
		return model.TextValue{}
	}
	return model.TextValue{Value: v, Length: charCount(*v)}
}

// collectMeta gathers every <meta> whose key attribute starts with prefix,
// keyed by the full attribute value. Later tags overwrite earlier ones.
func collectMeta(doc *goquery.Document, keyAttr, prefix string) map[string]string {
	out := make(map[string]string)

	doc.Find(`meta[` + keyAttr + `^="` + prefix + `"]`).Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(keyAttr)
		content, _ := s.Attr("content")
		if key == "" || content == "" {
			return
		}
		out[key] = strings.TrimSpace(content)
	})

	return out
}
