package pageinsight

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

const (
	robotsAgent     = "SEOAnalyzerBot"
	maxRobotsBytes  = 512 * 1024
	maxSitemapBytes = 10 * 1024 * 1024
)

// DiscoveryProber reports what a site's robots.txt and first declared
// sitemap reveal. It never fails; problems are reported as negative values.
type DiscoveryProber interface {
	Probe(ctx context.Context, page *url.URL) model.Discovery
}

// Discoverer implements DiscoveryProber over HTTP.
type Discoverer struct {
	client  *http.Client
	timeout time.Duration
}

// NewDiscoverer returns a Discoverer that bounds each robots.txt and sitemap
// request by timeout.
func NewDiscoverer(transport http.RoundTripper, timeout time.Duration) *Discoverer {
	return &Discoverer{
		client: &http.Client{
			Transport:     transport,
			CheckRedirect: safeRedirectPolicy,
		},
		timeout: timeout,
	}
}

// Probe reads robots.txt at the page's origin and, if it declares any
// sitemaps, fetches the first one. Later sitemaps are never requested.
func (d *Discoverer) Probe(ctx context.Context, page *url.URL) model.Discovery {
	robots := d.FetchRobots(ctx, page)

	sitemap := model.SitemapInfo{}
	if len(robots.SitemapURLs) > 0 {
		sitemap = d.FetchSitemap(ctx, robots.SitemapURLs[0])
	}

	return model.Discovery{Robots: robots, Sitemap: sitemap}
}

// FetchRobots fetches /robots.txt on the origin of page and lists its
// Sitemap directives in file order.
func (d *Discoverer) FetchRobots(ctx context.Context, page *url.URL) model.RobotsInfo {
	unreachable := model.RobotsInfo{SitemapURLs: []string{}}

	robotsURL := &url.URL{Scheme: page.Scheme, Host: page.Host, Path: "/robots.txt"}
	body, _, err := d.get(ctx, robotsURL.String(), "text/plain", maxRobotsBytes)
	if err != nil {
		return unreachable
	}

	info := model.RobotsInfo{
		Reachable:   true,
		SitemapURLs: sitemapDirectives(body),
	}

	if robots, err := robotstxt.FromBytes(body); err == nil {
		allowed := robots.TestAgent(page.RequestURI(), robotsAgent)
		info.AllowsPage = &allowed
	}

	return info
}

// sitemapDirectives returns the value of every "Sitemap:" line. Only the
// first colon separates the key, so URLs keep their own colons.
func sitemapDirectives(body []byte) []string {
	urls := []string{}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), maxRobotsBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len("sitemap:") || !strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			continue
		}
		if value := strings.TrimSpace(line[len("sitemap:"):]); value != "" {
			urls = append(urls, value)
		}
	}

	return urls
}

// sitemapDocument matches both <urlset> and <sitemapindex> roots.
type sitemapDocument struct {
	XMLName  xml.Name
	URLs     []struct{} `xml:"url"`
	Sitemaps []struct{} `xml:"sitemap"`
}

// FetchSitemap fetches the sitemap at rawURL and counts its entries: page
// URLs for a urlset, child sitemaps for a sitemap index, zero otherwise.
func (d *Discoverer) FetchSitemap(ctx context.Context, rawURL string) model.SitemapInfo {
	failed := model.SitemapInfo{}

	body, contentType, err := d.get(ctx, rawURL, "application/xml,text/xml", maxSitemapBytes)
	if err != nil {
		return failed
	}

	if isGzipSitemap(rawURL, contentType, body) {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return failed
		}
		body, err = readLimited(zr, maxSitemapBytes)
		if err != nil {
			return failed
		}
	}

	count, err := countSitemapEntries(body)
	if err != nil {
		return failed
	}
	return model.SitemapInfo{Fetched: true, URLCount: &count}
}

func countSitemapEntries(body []byte) (int, error) {
	var doc sitemapDocument

	// Raw '&' in query strings and HTML entities such as &nbsp; are tolerated.
	// A truncated document still fails with unexpected EOF.
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode sitemap: %w", err)
	}

	switch {
	case doc.XMLName.Local == "urlset" && len(doc.URLs) > 0:
		return len(doc.URLs), nil
	case doc.XMLName.Local == "sitemapindex" && len(doc.Sitemaps) > 0:
		return len(doc.Sitemaps), nil
	default:
		return 0, nil
	}
}

// isGzipSitemap reports whether a sitemap body is still gzip-compressed,
// as with sitemap.xml.gz files served without Content-Encoding.
func isGzipSitemap(rawURL, contentType string, body []byte) bool {
	if !bytes.HasPrefix(body, []byte{0x1f, 0x8b}) {
		return false
	}
	if strings.Contains(contentType, "gzip") {
		return true
	}
	if u, err := url.Parse(rawURL); err == nil {
		return strings.HasSuffix(strings.ToLower(u.Path), ".gz")
	}
	return false
}

// get performs one bounded discovery request, returning the decoded body and
// content type of a 2xx response.
func (d *Discoverer) get(ctx context.Context, rawURL, accept string, limit int64) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", statusError(resp.StatusCode)
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = body.Close() }()

	data, err := readLimited(body, limit)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
