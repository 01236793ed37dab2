package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Bahjat/seo-insight-tool/internal/model"
	"github.com/Bahjat/seo-insight-tool/internal/platform/errs"
	"github.com/Bahjat/seo-insight-tool/internal/platform/metrics"
	"github.com/Bahjat/seo-insight-tool/internal/platform/requestid"
)

// Service orchestrates a ReportProvider, logging and recording metrics for
// every analysis.
type Service struct {
	provider ReportProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider ReportProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Analyze delegates to the provider and logs the outcome.
func (s *Service) Analyze(ctx context.Context, rawURL string) (*model.Report, error) {
	logger := s.logger.With("url", rawURL, "request_id", requestid.FromContext(ctx))
	start := time.Now()

	report, err := s.provider.Analyze(ctx, rawURL)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && errs.KindOf(err) != errs.Timeout {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Analysis timed out. The target URL may be slow to respond.",
				Cause:   err,
			}
		}

		s.recordFailure(logger, err)
		return nil, err
	}

	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.Score.Observe(float64(report.Score.Score))
	fails, warns := 0, 0
	for _, c := range report.Checks {
		metrics.CheckResults.WithLabelValues(c.ID, string(c.Status)).Inc()
		switch c.Status {
		case model.StatusFail:
			fails++
		case model.StatusWarn:
			warns++
		}
	}

	logger.Info("analysis complete",
		"final_url", report.Fetch.FinalURL,
		"status", report.Fetch.Status,
		"score", report.Score.Score,
		"checks", len(report.Checks),
		"failed_checks", fails,
		"warned_checks", warns,
		"recommendations", len(report.Recommendations),
		"fetch_ms", report.Fetch.TimingMs,
	)
	return report, nil
}

// Reject records a request refused before it reached the provider, such as
// a malformed body or a missing url.
func (s *Service) Reject(ctx context.Context, err error) {
	s.recordFailure(s.logger.With("request_id", requestid.FromContext(ctx)), err)
}

func (s *Service) recordFailure(logger *slog.Logger, err error) {
	kind := errs.KindOf(err)
	metrics.AnalysesTotal.WithLabelValues(kind.String()).Inc()

	attrs := []any{"error", err, "kind", kind.String()}
	var appErr *errs.AppError
	if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
		attrs = append(attrs, "target_status", appErr.UpstreamStatus)
	}
	if kind.IsFetch() || kind == errs.Unknown {
		logger.Error("analysis failed", attrs...)
	} else {
		logger.Warn("analysis rejected", attrs...)
	}
}
