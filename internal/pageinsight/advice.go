package pageinsight

import "github.com/Bahjat/seo-insight-tool/internal/model"

type advice struct {
	title    string
	reason   string
	howToFix []string
}

// adviceByCheck covers metadata and discovery checks only. Structural
// content checks have no entry and never produce a recommendation.
var adviceByCheck = map[string]advice{
	"title-exists": {
		title:  "Add a title tag to the page",
		reason: "The title tag is one of the strongest on-page SEO signals and is used as the main headline in search results.",
		howToFix: []string{
			"Add a <title> tag inside the <head> section.",
			"Keep the title descriptive and relevant to the page content.",
			"Aim for 10–60 characters.",
		},
	},
	"title-length": {
		title:  "Optimize title length",
		reason: "Titles that are too short or too long may be truncated or less effective in search results.",
		howToFix: []string{
			"Ensure the title length is between 10 and 60 characters.",
			"Place important keywords near the beginning of the title.",
		},
	},
	"meta-desc-exists": {
		title:  "Add a meta description",
		reason: "Meta descriptions help search engines and users understand the page content and can improve click-through rate.",
		howToFix: []string{
			"Add a meta description tag in the <head> section.",
			"Write a clear and compelling summary of the page.",
		},
	},
	"meta-desc-length": {
		title:  "Optimize meta description length",
		reason: "Meta descriptions that are too short or too long may be truncated in search results.",
		howToFix: []string{
			"Keep the meta description between 70 and 160 characters.",
			"Focus on summarizing the page content clearly.",
		},
	},
	"canonical-exists": {
		title:  "Add a canonical URL",
		reason: "Canonical URLs help prevent duplicate content issues by specifying the preferred version of a page.",
		howToFix: []string{
			"Add a <link rel='canonical'> tag in the <head> section.",
			"Use an absolute URL pointing to the preferred page.",
		},
	},
	"canonical-host-match": {
		title:  "Fix canonical URL host mismatch",
		reason: "A canonical URL pointing to a different host may cause search engines to index the wrong domain.",
		howToFix: []string{
			"Ensure the canonical URL points to the same domain as the page.",
			"Avoid pointing canonical URLs to unrelated domains.",
		},
	},
	"meta-robots-noindex": {
		title:  "Remove noindex directive",
		reason: "Pages marked with noindex cannot appear in search results, which blocks organic visibility.",
		howToFix: []string{
			"Remove 'noindex' from the meta robots tag.",
			"Ensure the page is intended to be indexable.",
		},
	},
	"og-title": {
		title:  "Add Open Graph title",
		reason: "Open Graph titles control how your page appears when shared on social platforms.",
		howToFix: []string{
			"Add an og:title meta tag.",
			"Use a clear and descriptive title.",
		},
	},
	"og-description": {
		title:  "Add Open Graph description",
		reason: "Open Graph descriptions improve the appearance and clarity of shared links.",
		howToFix: []string{
			"Add an og:description meta tag.",
			"Keep it concise and informative.",
		},
	},
	"og-image": {
		title:  "Add Open Graph image",
		reason: "Pages without an Open Graph image may appear less engaging when shared.",
		howToFix: []string{
			"Add an og:image meta tag.",
			"Use an image with recommended dimensions (1200×630).",
		},
	},
	"twitter-card": {
		title:  "Define Twitter card type",
		reason: "Twitter cards improve how links are displayed when shared on Twitter.",
		howToFix: []string{
			"Add a twitter:card meta tag.",
			"Use 'summary_large_image' for better visibility.",
		},
	},
	"robots-reachable": {
		title:  "Ensure robots.txt is accessible",
		reason: "If robots.txt is unreachable, search engines may have difficulty crawling your site.",
		howToFix: []string{
			"Ensure robots.txt is available at /robots.txt.",
			"Check server configuration and permissions.",
		},
	},
	"sitemap-declared": {
		title:  "Declare sitemap in robots.txt",
		reason: "Declaring a sitemap helps search engines discover your pages more efficiently.",
		howToFix: []string{
			"Add a Sitemap directive to robots.txt.",
			"Ensure the sitemap URL is correct and accessible.",
		},
	},
	"sitemap-fetchable": {
		title:  "Fix sitemap accessibility",
		reason: "A sitemap that cannot be fetched prevents search engines from discovering pages efficiently.",
		howToFix: []string{
			"Ensure the sitemap URL returns a valid XML response.",
			"Fix server errors or incorrect paths.",
		},
	},
}

// Recommend returns one recommendation per non-passing check that has
// advice, in check order.
func Recommend(checks []model.CheckResult) []model.Recommendation {
	recs := []model.Recommendation{}

	for _, c := range checks {
		if c.Status == model.StatusPass {
			continue
		}
		a, ok := adviceByCheck[c.ID]
		if !ok {
			continue
		}
		recs = append(recs, model.Recommendation{
			ID:             "rec-" + c.ID,
			Title:          a.title,
			Category:       c.Category,
			Severity:       c.Severity,
			Reason:         a.reason,
			HowToFix:       append([]string(nil), a.howToFix...),
			RelatedCheckID: c.ID,
		})
	}

	return recs
}
