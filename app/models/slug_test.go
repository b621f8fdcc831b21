package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Premium Yoga Plan", want: "premium-yoga-plan"},
		{in: "  Leading & Trailing  ", want: "leading-trailing"},
		{in: "Already-Slugged", want: "already-slugged"},
		{in: "Multiple   Spaces!!", want: "multiple-spaces"},
		{in: "2024 Summer Fest", want: "2024-summer-fest"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
