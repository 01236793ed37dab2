package analyzer

import (
	"context"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

// ReportProvider defines the contract for any analysis engine.
type ReportProvider interface {
	Analyze(ctx context.Context, rawURL string) (*model.Report, error)
}
