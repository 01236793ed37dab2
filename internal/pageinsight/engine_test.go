package pageinsight

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/Bahjat/seo-insight-tool/internal/model"
	"github.com/Bahjat/seo-insight-tool/internal/platform/errs"
)

// mockFetcher implements PageFetcher for testing.
type mockFetcher struct {
	html   string
	err    error
	called bool
	gotURL string
	wait   <-chan struct{}
}

func (m *mockFetcher) Fetch(ctx context.Context, target *url.URL) (*FetchResult, error) {
	m.called = true
	m.gotURL = target.String()

	if m.wait != nil {
		select {
		case <-m.wait:
		case <-time.After(2 * time.Second):
			return nil, errors.New("discovery never started")
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &FetchResult{
		Info: model.FetchInfo{
			Status:      200,
			FinalURL:    target.String(),
			ContentType: "text/html",
			Size:        len(m.html),
		},
		HTML: m.html,
	}, nil
}

// mockProber implements DiscoveryProber for testing.
type mockProber struct {
	discovery   model.Discovery
	called      bool
	started     chan struct{}
	waitForDone bool
	canceled    bool
}

func (m *mockProber) Probe(ctx context.Context, _ *url.URL) model.Discovery {
	m.called = true
	if m.started != nil {
		close(m.started)
	}
	if m.waitForDone {
		select {
		case <-ctx.Done():
			m.canceled = true
		case <-time.After(2 * time.Second):
		}
	}
	return m.discovery
}

const enginePage = `<!DOCTYPE html><html><head>
<title>Example Domain Home</title>
<meta name="description" content="Short">
<link rel="canonical" href="https://example.com/">
<meta property="og:title" content="Example">
</head><body>
<h1>Welcome</h1>
<h3>Skipped</h3>
<img src="/a.png">
<a href="/about">About</a>
<a href="https://other.com/">Other</a>
</body></html>`

func TestEngine_Analyze_Success(t *testing.T) {
	fetcher := &mockFetcher{html: enginePage}
	prober := &mockProber{discovery: model.Discovery{
		Robots:  model.RobotsInfo{Reachable: true, SitemapURLs: []string{"https://example.com/sitemap.xml"}},
		Sitemap: model.SitemapInfo{Fetched: true, URLCount: intp(3)},
	}}

	engine := NewEngine(fetcher, prober)
	engine.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("CET", 3600))
	}

	report, err := engine.Analyze(context.Background(), "  Example.com#intro ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Status != "ok" {
		t.Errorf("Status = %q, want ok", report.Status)
	}
	if report.Input.Raw != "  Example.com#intro " {
		t.Errorf("Input.Raw = %q", report.Input.Raw)
	}
	if report.Input.Normalized != "https://example.com/" {
		t.Errorf("Input.Normalized = %q", report.Input.Normalized)
	}
	if report.Input.Timestamp != "2026-01-02T02:04:05.006Z" {
		t.Errorf("Input.Timestamp = %q", report.Input.Timestamp)
	}
	if fetcher.gotURL != "https://example.com/" {
		t.Errorf("fetched %q", fetcher.gotURL)
	}
	if !prober.called {
		t.Error("discovery was not probed")
	}

	if got := derefOr(report.SEO.Title.Value, ""); got != "Example Domain Home" {
		t.Errorf("SEO.Title = %q", got)
	}
	if report.Content.Links.Internal != 1 || report.Content.Links.External != 1 {
		t.Errorf("links = %+v", report.Content.Links)
	}
	if report.Content.Images.WithoutAlt != 1 {
		t.Errorf("images = %+v", report.Content.Images)
	}
	if report.Discovery.Sitemap.URLCount == nil || *report.Discovery.Sitemap.URLCount != 3 {
		t.Errorf("discovery = %+v", report.Discovery)
	}

	if c, ok := findCheck(report.Checks, "heading-hierarchy"); !ok || c.Status != model.StatusWarn {
		t.Errorf("heading-hierarchy = %+v, want warn", c)
	}
	if c, ok := findCheck(report.Checks, "meta-desc-length"); !ok || c.Status != model.StatusWarn {
		t.Errorf("meta-desc-length = %+v, want warn", c)
	}
	if report.Score != Score(report.Checks) {
		t.Errorf("Score = %+v, want %+v", report.Score, Score(report.Checks))
	}
	if report.Score.Score <= 0 || report.Score.Score >= 100 {
		t.Errorf("Score = %d, want strictly between 0 and 100", report.Score.Score)
	}

	related := map[string]bool{}
	for _, r := range report.Recommendations {
		related[r.RelatedCheckID] = true
	}
	for _, id := range []string{"meta-desc-length", "og-description", "og-image", "twitter-card"} {
		if !related[id] {
			t.Errorf("missing recommendation for %s", id)
		}
	}
	if related["heading-hierarchy"] {
		t.Error("structural checks should not produce recommendations")
	}
}

func TestEngine_Analyze_URLErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind errs.Kind
		wantMsg  string
	}{
		{name: "unparseable", raw: "http://[::1", wantKind: errs.InvalidURL, wantMsg: "Invalid URL"},
		{name: "empty host", raw: "https://", wantKind: errs.InvalidURL, wantMsg: "Invalid URL"},
		{name: "localhost", raw: "http://localhost:3000/", wantKind: errs.BlockedURL, wantMsg: "Blocked URL (private or local address)"},
		{name: "private ip", raw: "192.168.1.1", wantKind: errs.BlockedURL, wantMsg: "Blocked URL (private or local address)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher, prober := &mockFetcher{}, &mockProber{}

			_, err := NewEngine(fetcher, prober).Analyze(context.Background(), tt.raw)
			appErr := appErrorOf(t, err)

			if appErr.Kind != tt.wantKind || appErr.Message != tt.wantMsg {
				t.Errorf("got %v %q, want %v %q", appErr.Kind, appErr.Message, tt.wantKind, tt.wantMsg)
			}
			if fetcher.called || prober.called {
				t.Error("no network work should happen for a rejected URL")
			}
		})
	}
}

func TestEngine_Analyze_FetchError(t *testing.T) {
	fetchErr := &errs.AppError{Kind: errs.NotFound, UpstreamStatus: 404, Message: "Page not found (404)"}
	prober := &mockProber{waitForDone: true}

	_, err := NewEngine(&mockFetcher{err: fetchErr}, prober).Analyze(context.Background(), "https://example.com")
	if !errors.Is(err, fetchErr) {
		t.Fatalf("err = %v, want the fetch error", err)
	}
	if !prober.canceled {
		t.Error("discovery context was not canceled after the fetch failed")
	}
}

func TestEngine_Analyze_DiscoveryRunsAlongsideFetch(t *testing.T) {
	started := make(chan struct{})
	fetcher := &mockFetcher{html: enginePage, wait: started}
	prober := &mockProber{started: started}

	if _, err := NewEngine(fetcher, prober).Analyze(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEngine_Analyze_EmptyDocument(t *testing.T) {
	prober := &mockProber{discovery: model.Discovery{Robots: model.RobotsInfo{SitemapURLs: []string{}}}}

	report, err := NewEngine(&mockFetcher{html: "<p>hi</p>"}, prober).Analyze(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c, _ := findCheck(report.Checks, "title-exists"); c.Status != model.StatusFail {
		t.Errorf("title-exists = %s, want fail", c.Status)
	}
	if c, _ := findCheck(report.Checks, "h1-exists"); c.Status != model.StatusFail {
		t.Errorf("h1-exists = %s, want fail", c.Status)
	}
	if _, ok := findCheck(report.Checks, "sitemap-fetchable"); ok {
		t.Error("sitemap-fetchable emitted without a declared sitemap")
	}
	if report.Recommendations == nil || report.Checks == nil {
		t.Error("lists must never be nil")
	}
}
