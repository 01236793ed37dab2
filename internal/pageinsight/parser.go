package pageinsight

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseDocument builds a queryable DOM from fetched HTML. The HTML5 parsing
// algorithm recovers from any malformed markup, so an error here means the
// input could not be read at all; callers fall back to an empty document.
func ParseDocument(src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// trimmedAttr returns the whitespace-trimmed attribute of the first element
// in s, or nil when the attribute is absent or blank.
func trimmedAttr(s *goquery.Selection, name string) *string {
	v, ok := s.Attr(name)
	if !ok {
		return nil
	}
	return nonEmpty(v)
}

func nonEmpty(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// charCount counts characters, not bytes.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

// truncateChars keeps the first n characters of s.
func truncateChars(s string, n int) string {
	if charCount(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// lastChars keeps the last n characters of s.
func lastChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
