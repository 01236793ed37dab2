package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bahjat/seo-insight-tool/internal/analyzer"
	"github.com/Bahjat/seo-insight-tool/internal/pageinsight"
)

type analyzeDeps struct {
	logger   *slog.Logger
	out      io.Writer
	provider analyzer.ReportProvider
}

type analyzeOptions struct {
	asJSON           bool
	timeout          time.Duration
	discoveryTimeout time.Duration
	allowPrivate     bool
}

func newAnalyzeCommand(deps func() *analyzeDeps) *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze one page and print its checks, score and recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			if d.provider == nil {
				transport := pageinsight.NewTransport(!opts.allowPrivate)
				d.provider = pageinsight.NewEngine(
					pageinsight.NewHTTPClient(transport),
					pageinsight.NewDiscoverer(transport, opts.discoveryTimeout),
				)
			}
			return runAnalyze(cmd.Context(), d, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall time limit for the analysis")
	cmd.Flags().DurationVar(&opts.discoveryTimeout, "discovery-timeout", 5*time.Second, "time limit for each robots.txt and sitemap request")
	cmd.Flags().BoolVar(&opts.allowPrivate, "allow-private-dial", false, "permit connections to private addresses after DNS resolution")

	return cmd
}

func runAnalyze(ctx context.Context, d *analyzeDeps, opts analyzeOptions, rawURL string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	report, err := analyzer.NewService(d.provider, d.logger).Analyze(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", rawURL, err)
	}

	if opts.asJSON {
		enc := json.NewEncoder(d.out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderReport(d.out, report)
	return nil
}
