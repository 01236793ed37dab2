package pageinsight

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Engine runs the full analysis pipeline for one URL.
type Engine struct {
	fetcher PageFetcher
	prober  DiscoveryProber
	now     func() time.Time
}

// NewEngine returns an Engine backed by the given page fetcher and discovery
// prober.
func NewEngine(fetcher PageFetcher, prober DiscoveryProber) *Engine {
	return &Engine{
		fetcher: fetcher,
		prober:  prober,
		now:     time.Now,
	}
}

// Analyze normalizes and vets raw, then fetches the page while robots.txt and
// the sitemap are probed. Only URL and page fetch errors are returned;
// discovery problems show up as negative values in the report.
func (e *Engine) Analyze(ctx context.Context, raw string) (*model.Report, error) {
	target, err := NormalizeURL(raw)
	if err != nil {
		return nil, err
	}
	if err := AssertSafe(target); err != nil {
		return nil, err
	}

	input := model.Input{
		Raw:        raw,
		Normalized: target.String(),
		Timestamp:  e.now().UTC().Format(timestampLayout),
	}

	var (
		page      *FetchResult
		discovery model.Discovery
	)

	// A failed page fetch cancels gctx, which cuts discovery short.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := e.fetcher.Fetch(gctx, target)
		if err != nil {
			return err
		}
		page = res
		return nil
	})
	g.Go(func() error {
		discovery = e.prober.Probe(gctx, target)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := ParseDocument(page.HTML)
	seo := ExtractMeta(doc)
	content := ExtractContent(doc, input.Normalized)

	checks := RunChecks(CheckInput{SEO: seo, Content: content, Discovery: discovery})

	return &model.Report{
		Input:           input,
		Fetch:           page.Info,
		SEO:             seo,
		Content:         content,
		Discovery:       discovery,
		Checks:          checks,
		Score:           Score(checks),
		Recommendations: Recommend(checks),
		Status:          "ok",
	}, nil
}
