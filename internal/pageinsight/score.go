package pageinsight

import (
	"math"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

// warnCredit is the share of a check's weight earned by a warning.
const warnCredit = 0.6

// weights lists the checks that count toward the score. Content checks
// such as h1-exists are reported but deliberately left unscored.
var weights = map[string]int{
	"title-exists":     15,
	"title-length":     5,
	"meta-desc-exists": 15,
	"meta-desc-length": 5,
	"canonical-exists": 15,

	"og-title":       5,
	"og-description": 5,
	"og-image":       10,
	"twitter-card":   3,
	"twitter-title":  3,
	"twitter-image":  4,

	"robots-reachable":  10,
	"sitemap-declared":  5,
	"sitemap-fetchable": 5,

	"canonical-host-match": 5,
	"meta-robots-noindex":  15,
}

// Score normalizes the weighted results of the scored checks present in
// checks to 0-100. Conditional checks that were skipped add nothing to the
// maximum.
func Score(checks []model.CheckResult) model.ScoreResult {
	maxPoints := 0
	earned := 0.0

	for _, c := range checks {
		w, ok := weights[c.ID]
		if !ok {
			continue
		}
		maxPoints += w

		switch c.Status {
		case model.StatusPass:
			earned += float64(w)
		case model.StatusWarn:
			earned += float64(w) * warnCredit
		}
	}

	score := 0
	if maxPoints > 0 {
		score = int(math.Round(earned / float64(maxPoints) * 100))
	}

	return model.ScoreResult{
		Score:             score,
		MaxPossiblePoints: maxPoints,
		EarnedPoints:      int(math.Round(earned)),
	}
}
