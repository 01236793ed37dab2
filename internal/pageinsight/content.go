package pageinsight

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

const (
	maxHeadingChars = 80
	emptyHeading    = "(empty heading)"
	inlineImageSrc  = "Inline image (data URI)"
)

var (
	fileExtPattern = regexp.MustCompile(`(?i)\.[a-z]{2,4}$`)
	displayBase    = &url.URL{Scheme: "https", Host: "placeholder.com", Path: "/"}
)

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// ExtractContent inventories headings, images, and links in doc. Relative
// links are resolved against pageURL; if pageURL is not an absolute URL the
// link inventory is left empty.
func ExtractContent(doc *goquery.Document, pageURL string) model.ContentStructure {
	return model.ContentStructure{
		Headings: extractHeadings(doc),
		Images:   extractImages(doc),
		Links:    extractLinks(doc, pageURL),
	}
}

type flatHeading struct {
	level int
	text  string
}

func extractHeadings(doc *goquery.Document) model.HeadingSummary {
	var flat []flatHeading
	h1Count, emptyCount := 0, 0

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, ok := headingLevels[s.Nodes[0].DataAtom]
		if !ok {
			return
		}

		text := strings.TrimSpace(s.Text())
		if charCount(text) > maxHeadingChars {
			text = truncateChars(text, maxHeadingChars) + "..."
		}
		if text == "" {
			text = emptyHeading
		}

		if level == 1 {
			h1Count++
		}
		if text == emptyHeading {
			emptyCount++
		}
		flat = append(flat, flatHeading{level: level, text: text})
	})

	forest := buildHeadingForest(flat)

	issues := []string{}
	switch {
	case h1Count == 0:
		issues = append(issues, "No H1 heading found")
	case h1Count > 1:
		issues = append(issues, fmt.Sprintf("Multiple H1 headings found (%d)", h1Count))
	}
	if emptyCount > 0 {
		issues = append(issues, fmt.Sprintf("%d empty heading%s found", emptyCount, plural(emptyCount)))
	}
	issues = appendSkippedLevels(issues, forest, 0)

	return model.HeadingSummary{
		Hierarchy:  forest,
		H1Count:    h1Count,
		HasH1:      h1Count > 0,
		TotalCount: len(flat),
		Issues:     issues,
	}
}

// buildHeadingForest nests headings in document order. The stack holds the
// current ancestry; a heading pops every entry at its level or deeper, then
// becomes a child of whatever remains on top, or a new root.
func buildHeadingForest(flat []flatHeading) []*model.HeadingNode {
	roots := []*model.HeadingNode{}
	var stack []*model.HeadingNode

	for _, h := range flat {
		node := &model.HeadingNode{Level: h.level, Text: h.text, Children: []*model.HeadingNode{}}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)
	}

	return roots
}

// appendSkippedLevels reports every node deeper than parentLevel+1, naming
// the levels in between. Depth is bounded by the six heading levels.
func appendSkippedLevels(issues []string, nodes []*model.HeadingNode, parentLevel int) []string {
	for _, node := range nodes {
		expected := parentLevel + 1
		if node.Level > expected {
			skipped := make([]string, 0, node.Level-expected)
			for l := expected; l < node.Level; l++ {
				skipped = append(skipped, fmt.Sprintf("H%d", l))
			}
			issues = append(issues, fmt.Sprintf(`H%d found without %s (in "%s")`,
				node.Level, strings.Join(skipped, ", "), node.Text))
		}
		issues = appendSkippedLevels(issues, node.Children, node.Level)
	}
	return issues
}

func extractImages(doc *goquery.Document) model.ImageSummary {
	summary := model.ImageSummary{MissingAltImages: []model.MissingAlt{}}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		summary.Total++

		alt, hasAlt := s.Attr("alt")
		if hasAlt && strings.TrimSpace(alt) != "" {
			summary.WithAlt++
			return
		}

		src, _ := s.Attr("src")
		summary.MissingAltImages = append(summary.MissingAltImages, model.MissingAlt{
			Src:   displayImageSrc(src),
			Index: i + 1,
		})
	})

	summary.WithoutAlt = len(summary.MissingAltImages)
	return summary
}

// displayImageSrc shortens an image src for reports: data URIs collapse to a
// marker, URLs ending in a file extension show just the file name, and long
// values are cut to 40 characters.
func displayImageSrc(src string) string {
	if strings.HasPrefix(src, "data:") {
		return inlineImageSrc
	}

	ref, err := url.Parse(src)
	if err != nil {
		if charCount(src) > 40 {
			return truncateChars(src, 37) + "..."
		}
		return src
	}

	path := displayBase.ResolveReference(ref).EscapedPath()
	filename := path[strings.LastIndex(path, "/")+1:]
	if filename != "" && fileExtPattern.MatchString(filename) {
		return filename
	}

	if charCount(src) > 40 {
		return "..." + lastChars(src, 37)
	}
	return src
}

// extractLinks classifies every <a href>. Fragment-only and javascript: hrefs
// are ignored. Absolute http(s) links are internal when their host matches
// the page host; everything else is resolved against the page and counted
// internal, keeping the raw href if it cannot be resolved.
func extractLinks(doc *goquery.Document, pageURL string) model.LinkSummary {
	summary := model.LinkSummary{InternalLinks: []string{}, ExternalLinks: []string{}}

	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return summary
	}
	pageHost := strings.ToLower(base.Hostname())

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")

		switch {
		case strings.HasPrefix(href, "#"), strings.HasPrefix(href, "javascript:"):
			return

		case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
			if host, ok := hostOf(href); ok && host == pageHost {
				summary.InternalLinks = append(summary.InternalLinks, href)
			} else {
				summary.ExternalLinks = append(summary.ExternalLinks, href)
			}

		default:
			// Covers "/", "./", "../" and bare relative paths alike.
			summary.InternalLinks = append(summary.InternalLinks, resolveOrRaw(base, href))
		}
	})

	summary.Internal = len(summary.InternalLinks)
	summary.External = len(summary.ExternalLinks)
	summary.Total = summary.Internal + summary.External
	return summary
}

func hostOf(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}

func resolveOrRaw(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
