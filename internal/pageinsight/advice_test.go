package pageinsight

import (
	"testing"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

func TestRecommend_FailingTitle(t *testing.T) {
	recs := Recommend([]model.CheckResult{{
		ID:       "title-exists",
		Category: model.CategoryOnPage,
		Status:   model.StatusFail,
		Severity: model.SeverityHigh,
	}})

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if rec.ID != "rec-title-exists" || rec.RelatedCheckID != "title-exists" {
		t.Errorf("ids = %q / %q", rec.ID, rec.RelatedCheckID)
	}
	if rec.Title != "Add a title tag to the page" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Category != model.CategoryOnPage || rec.Severity != model.SeverityHigh {
		t.Errorf("category/severity = %s/%s, want copied from check", rec.Category, rec.Severity)
	}
	if len(rec.HowToFix) != 3 {
		t.Errorf("HowToFix has %d steps, want 3", len(rec.HowToFix))
	}
}

func TestRecommend_SkipsPassingAndUnadvised(t *testing.T) {
	recs := Recommend([]model.CheckResult{
		{ID: "title-exists", Status: model.StatusPass},
		{ID: "h1-exists", Status: model.StatusFail},
		{ID: "images-alt", Status: model.StatusWarn},
		{ID: "twitter-title", Status: model.StatusWarn},
		{ID: "og-image", Status: model.StatusWarn},
		{ID: "robots-reachable", Status: model.StatusWarn},
	})

	if len(recs) != 2 || recs[0].RelatedCheckID != "og-image" || recs[1].RelatedCheckID != "robots-reachable" {
		t.Errorf("recommendations = %+v, want og-image then robots-reachable", recs)
	}
}

func TestRecommend_EmptyNotNil(t *testing.T) {
	recs := Recommend(nil)
	if recs == nil || len(recs) != 0 {
		t.Errorf("Recommend(nil) = %#v, want empty slice", recs)
	}
}

func TestRecommend_StepsNotShared(t *testing.T) {
	checks := []model.CheckResult{{ID: "og-title", Status: model.StatusWarn}}

	first := Recommend(checks)
	first[0].HowToFix[0] = "changed"

	if second := Recommend(checks); second[0].HowToFix[0] == "changed" {
		t.Error("remediation steps are shared between reports")
	}
}
