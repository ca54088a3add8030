package internal

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		website string
		want    string
	}{
		{website: "facebook.com", want: "social"},
		{website: "www.facebook.com", want: "social"},
		{website: "github.com", want: "productivity"},
		{website: "www.youtube.com", want: "entertainment"},
		{website: "amazon.com", want: "shopping"},
		{website: "bbc.com", want: "news"},
		{website: "en.wikipedia.org", want: "education"},
		{website: "random-blog.net", want: "other"},
		{website: "", want: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.website, func(t *testing.T) {
			if got := Categorize(tt.website); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.website, got, tt.want)
			}
		})
	}
}

func TestCapitalizeCategory(t *testing.T) {
	if got := CapitalizeCategory("social"); got != "Social" {
		t.Errorf("CapitalizeCategory(social) = %q", got)
	}
	if got := CapitalizeCategory(""); got != "" {
		t.Errorf("CapitalizeCategory(empty) = %q", got)
	}
}
