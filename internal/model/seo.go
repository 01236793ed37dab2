package model

// TextValue is a trimmed value with its length in characters. Value is nil
// when the source element is missing or blank.
type TextValue struct {
	Value  *string `json:"value"`
	Length int     `json:"length"`
}

// SeoMeta is the on-page metadata relevant to search and social previews.
type SeoMeta struct {
	Title           TextValue         `json:"title"`
	MetaDescription TextValue         `json:"metaDescription"`
	Robots          *string           `json:"robots"`
	Canonical       *string           `json:"canonical"`
	OpenGraph       map[string]string `json:"og"`
	TwitterCard     map[string]string `json:"twitter"`
}

// HeadingNode is one heading and the deeper headings nested under it.
type HeadingNode struct {
	Level    int            `json:"level"`
	Text     string         `json:"text"`
	Children []*HeadingNode `json:"children"`
}

// ContentStructure is the structural inventory of a page body.
type ContentStructure struct {
	Headings HeadingSummary `json:"headings"`
	Images   ImageSummary   `json:"images"`
	Links    LinkSummary    `json:"links"`
}

// HeadingSummary is the heading forest plus the issues found in it.
type HeadingSummary struct {
	Hierarchy  []*HeadingNode `json:"hierarchy"`
	H1Count    int            `json:"h1Count"`
	HasH1      bool           `json:"hasH1"`
	TotalCount int            `json:"totalCount"`
	Issues     []string       `json:"issues"`
}

// ImageSummary counts images and lists the ones lacking alt text.
type ImageSummary struct {
	Total            int          `json:"total"`
	WithAlt          int          `json:"withAlt"`
	WithoutAlt       int          `json:"withoutAlt"`
	MissingAltImages []MissingAlt `json:"missingAltImages"`
}

// MissingAlt identifies an image without alt text by its 1-based position
// among all images on the page.
type MissingAlt struct {
	Src   string `json:"src"`
	Index int    `json:"index"`
}

// LinkSummary breaks down the links found on a page.
type LinkSummary struct {
	Total         int      `json:"total"`
	Internal      int      `json:"internal"`
	External      int      `json:"external"`
	InternalLinks []string `json:"internalLinks"`
	ExternalLinks []string `json:"externalLinks"`
}

// Discovery is what robots.txt and the first declared sitemap revealed.
type Discovery struct {
	Robots  RobotsInfo  `json:"robots"`
	Sitemap SitemapInfo `json:"sitemap"`
}

// RobotsInfo describes the site's robots.txt.
type RobotsInfo struct {
	Reachable   bool     `json:"reachable"`
	SitemapURLs []string `json:"sitemapUrls"`
	// AllowsPage is nil when robots.txt could not be read.
	AllowsPage *bool `json:"allowsPage"`
}

// SitemapInfo describes the first declared sitemap. URLCount is nil unless
// the sitemap was fetched.
type SitemapInfo struct {
	Fetched  bool `json:"fetched"`
	URLCount *int `json:"urlCount"`
}
