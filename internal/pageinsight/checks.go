package pageinsight

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

// CheckInput is everything the rule table looks at.
type CheckInput struct {
	SEO       model.SeoMeta
	Content   model.ContentStructure
	Discovery model.Discovery
}

// verdict is the outcome of one rule. A rule that does not apply to the
// page is skipped and produces no CheckResult.
type verdict struct {
	status   model.Status
	evidence string
	skip     bool
}

type rule struct {
	id       string
	label    string
	category model.Category
	severity model.Severity
	eval     func(in CheckInput) verdict
}

// rules is evaluated top to bottom; the order is the report order.
var rules = []rule{
	{
		id:       "title-exists",
		label:    "Title tag exists",
		category: model.CategoryOnPage,
		severity: model.SeverityHigh,
		eval: func(in CheckInput) verdict {
			if in.SEO.Title.Value == nil {
				return verdict{status: model.StatusFail, evidence: "No <title> tag found"}
			}
			return verdict{status: model.StatusPass, evidence: *in.SEO.Title.Value}
		},
	},
	{
		id:       "title-length",
		label:    "Title length is optimal",
		category: model.CategoryOnPage,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			n := in.SEO.Title.Length
			return verdict{
				status:   passOr(n >= 10 && n <= 60, model.StatusWarn),
				evidence: fmt.Sprintf("%d characters", n),
			}
		},
	},
	{
		id:       "meta-desc-exists",
		label:    "Meta description exists",
		category: model.CategoryOnPage,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			if in.SEO.MetaDescription.Value == nil {
				return verdict{status: model.StatusWarn, evidence: "No meta description found"}
			}
			return verdict{status: model.StatusPass, evidence: *in.SEO.MetaDescription.Value}
		},
	},
	{
		id:       "meta-desc-length",
		label:    "Meta description length is optimal",
		category: model.CategoryOnPage,
		severity: model.SeverityLow,
		eval: func(in CheckInput) verdict {
			if in.SEO.MetaDescription.Value == nil {
				return verdict{skip: true}
			}
			n := in.SEO.MetaDescription.Length
			return verdict{
				status:   passOr(n >= 70 && n <= 160, model.StatusWarn),
				evidence: fmt.Sprintf("%d characters", n),
			}
		},
	},
	{
		id:       "canonical-exists",
		label:    "Canonical URL exists",
		category: model.CategoryOnPage,
		severity: model.SeverityHigh,
		eval: func(in CheckInput) verdict {
			if in.SEO.Canonical == nil {
				return verdict{status: model.StatusWarn, evidence: "No canonical link found"}
			}
			return verdict{status: model.StatusPass, evidence: *in.SEO.Canonical}
		},
	},
	{
		id:       "canonical-host-match",
		label:    "Canonical points to same host",
		category: model.CategoryOnPage,
		severity: model.SeverityHigh,
		eval:     canonicalHostMatch,
	},
	{
		id:       "meta-robots-noindex",
		label:    "Page is indexable",
		category: model.CategoryOnPage,
		severity: model.SeverityHigh,
		eval: func(in CheckInput) verdict {
			if in.SEO.Robots == nil {
				return verdict{status: model.StatusPass}
			}
			noindex := strings.Contains(strings.ToLower(*in.SEO.Robots), "noindex")
			return verdict{status: passOr(!noindex, model.StatusFail), evidence: *in.SEO.Robots}
		},
	},
	tagPresent("og-title", "Open Graph title exists", model.CategorySocial, model.SeverityMedium, ogTag("og:title")),
	tagPresent("og-description", "Open Graph description exists", model.CategorySocial, model.SeverityMedium, ogTag("og:description")),
	tagPresent("og-image", "Open Graph image exists", model.CategorySocial, model.SeverityMedium, ogTag("og:image")),
	tagPresent("twitter-card", "Twitter card type defined", model.CategorySocial, model.SeverityLow, twitterTag("twitter:card")),
	tagPresent("twitter-title", "Twitter title exists", model.CategorySocial, model.SeverityLow, twitterTag("twitter:title")),
	tagPresent("twitter-image", "Twitter image exists", model.CategorySocial, model.SeverityLow, twitterTag("twitter:image")),
	{
		id:       "robots-reachable",
		label:    "robots.txt is reachable",
		category: model.CategoryDiscovery,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			return verdict{status: passOr(in.Discovery.Robots.Reachable, model.StatusWarn)}
		},
	},
	{
		id:       "sitemap-declared",
		label:    "Sitemap declared in robots.txt",
		category: model.CategoryDiscovery,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			sitemaps := in.Discovery.Robots.SitemapURLs
			if len(sitemaps) == 0 {
				return verdict{status: model.StatusWarn}
			}
			return verdict{status: model.StatusPass, evidence: sitemaps[0]}
		},
	},
	{
		id:       "sitemap-fetchable",
		label:    "Sitemap is fetchable",
		category: model.CategoryDiscovery,
		severity: model.SeverityLow,
		eval: func(in CheckInput) verdict {
			if len(in.Discovery.Robots.SitemapURLs) == 0 {
				return verdict{skip: true}
			}
			sitemap := in.Discovery.Sitemap
			if !sitemap.Fetched {
				return verdict{status: model.StatusWarn, evidence: "Failed to fetch sitemap"}
			}
			count := 0
			if sitemap.URLCount != nil {
				count = *sitemap.URLCount
			}
			return verdict{status: model.StatusPass, evidence: fmt.Sprintf("%d URLs found", count)}
		},
	},
	{
		id:       "h1-exists",
		label:    "H1 heading exists",
		category: model.CategoryContent,
		severity: model.SeverityHigh,
		eval: func(in CheckInput) verdict {
			h := in.Content.Headings
			if !h.HasH1 {
				return verdict{status: model.StatusFail, evidence: "No H1 heading found"}
			}
			return verdict{status: model.StatusPass, evidence: fmt.Sprintf("Found %d H1", h.H1Count)}
		},
	},
	{
		id:       "h1-single",
		label:    "Only one H1 heading",
		category: model.CategoryContent,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			n := in.Content.Headings.H1Count
			if n <= 1 {
				return verdict{skip: true}
			}
			return verdict{
				status:   model.StatusWarn,
				evidence: fmt.Sprintf("Found %d H1 headings - should only have one", n),
			}
		},
	},
	{
		id:       "heading-hierarchy",
		label:    "Heading hierarchy is logical",
		category: model.CategoryContent,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			h := in.Content.Headings
			if len(h.Issues) > 0 {
				return verdict{status: model.StatusWarn, evidence: strings.Join(h.Issues, "; ")}
			}
			return verdict{
				status:   model.StatusPass,
				evidence: fmt.Sprintf("%d headings with proper hierarchy", h.TotalCount),
			}
		},
	},
	{
		id:       "images-alt",
		label:    "Images have alt text",
		category: model.CategoryContent,
		severity: model.SeverityMedium,
		eval: func(in CheckInput) verdict {
			img := in.Content.Images
			if img.Total == 0 {
				return verdict{skip: true}
			}
			pct := int(math.Round(float64(img.WithAlt) / float64(img.Total) * 100))
			return verdict{
				status:   passOr(img.WithoutAlt == 0, model.StatusWarn),
				evidence: fmt.Sprintf("%d/%d images have alt text (%d%%)", img.WithAlt, img.Total, pct),
			}
		},
	},
	{
		id:       "internal-links",
		label:    "Internal links present",
		category: model.CategoryContent,
		severity: model.SeverityLow,
		eval: func(in CheckInput) verdict {
			n := in.Content.Links.Internal
			return verdict{
				status:   passOr(n > 0, model.StatusWarn),
				evidence: fmt.Sprintf("%d internal link%s found", n, plural(n)),
			}
		},
	},
}

// RunChecks evaluates every applicable rule in report order.
func RunChecks(in CheckInput) []model.CheckResult {
	results := make([]model.CheckResult, 0, len(rules))

	for _, r := range rules {
		v := r.eval(in)
		if v.skip {
			continue
		}
		results = append(results, model.CheckResult{
			ID:       r.id,
			Label:    r.label,
			Category: r.category,
			Status:   v.status,
			Severity: r.severity,
			Evidence: v.evidence,
		})
	}

	return results
}

// canonicalHostMatch compares the canonical host with the host of the first
// declared sitemap, which stands in for the site's declared identity. With no
// sitemap declared, any absolute canonical passes.
func canonicalHostMatch(in CheckInput) verdict {
	if in.SEO.Canonical == nil {
		return verdict{skip: true}
	}
	canonical := *in.SEO.Canonical
	invalid := verdict{status: model.StatusWarn, evidence: "Canonical URL is not a valid absolute URL"}

	cu, ok := absoluteURL(canonical)
	if !ok {
		return invalid
	}

	sitemaps := in.Discovery.Robots.SitemapURLs
	if len(sitemaps) == 0 {
		return verdict{status: model.StatusPass, evidence: canonical}
	}

	su, ok := absoluteURL(sitemaps[0])
	if !ok {
		return invalid
	}
	if host := siteHost(cu); !strings.EqualFold(host, siteHost(su)) {
		return verdict{
			status:   model.StatusWarn,
			evidence: "Canonical points to different host: " + host,
		}
	}
	return verdict{status: model.StatusPass, evidence: canonical}
}

func absoluteURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, false
	}
	return u, true
}

// siteHost is u.Host without a port that merely restates the scheme default,
// so https://a.com:443 and https://a.com name the same host.
func siteHost(u *url.URL) string {
	port := u.Port()
	if (port == "443" && strings.EqualFold(u.Scheme, "https")) || (port == "80" && strings.EqualFold(u.Scheme, "http")) {
		return strings.TrimSuffix(u.Host, ":"+port)
	}
	return u.Host
}

func tagPresent(id, label string, category model.Category, severity model.Severity, value func(CheckInput) string) rule {
	return rule{
		id:       id,
		label:    label,
		category: category,
		severity: severity,
		eval: func(in CheckInput) verdict {
			v := value(in)
			return verdict{status: passOr(v != "", model.StatusWarn), evidence: v}
		},
	}
}

func ogTag(key string) func(CheckInput) string {
	return func(in CheckInput) string { return in.SEO.OpenGraph[key] }
}

func twitterTag(key string) func(CheckInput) string {
	return func(in CheckInput) string { return in.SEO.TwitterCard[key] }
}

func passOr(ok bool, otherwise model.Status) model.Status {
	if ok {
		return model.StatusPass
	}
	return otherwise
}
