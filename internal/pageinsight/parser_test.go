package pageinsight

import "testing"

func TestParseDocument_MalformedMarkup(t *testing.T) {
	doc := ParseDocument(`<html><head><title>Broken</title><body><h1>Still here</h2><p>unclosed <b>bold`)

	if got := doc.Find("h1").Text(); got != "Still here" {
		t.Errorf("h1 = %q, want %q", got, "Still here")
	}
	if got := doc.Find("p b").Text(); got != "bold" {
		t.Errorf("p b = %q, want %q", got, "bold")
	}
}

func TestParseDocument_Empty(t *testing.T) {
	doc := ParseDocument("")
	if doc == nil || doc.Find("title").Length() != 0 {
		t.Error("empty input should give an empty document")
	}
}

func TestCharHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "truncate multibyte", got: truncateChars("héllo wörld", 4), want: "héll"},
		{name: "truncate short", got: truncateChars("abc", 10), want: "abc"},
		{name: "last multibyte", got: lastChars("héllo wörld", 3), want: "rld"},
		{name: "last short", got: lastChars("ab", 5), want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if nonEmpty("   ") != nil {
		t.Error("nonEmpty of blank should be nil")
	}
	if p := nonEmpty(" x "); p == nil || *p != "x" {
		t.Error("nonEmpty should trim")
	}
}
