package probe

import (
	"strings"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "simple title",
			html: "<html><head><title>Login</title></head></html>",
			want: "Login",
		},
		{
			name: "whitespace collapsed",
			html: "<title>\n  Corporate\n\tIntranet  </title>",
			want: "Corporate Intranet",
		},
		{
			name: "no title element",
			html: "<html><body><h1>hello</h1></body></html>",
			want: "",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
		{
			name: "unclosed tag soup",
			html: "<html><title>Broken<body><div>",
			want: "Broken",
		},
		{
			name: "first title wins",
			html: "<title>First</title><title>Second</title>",
			want: "First",
		},
		{
			name: "long title capped",
			html: "<title>" + strings.Repeat("a", 400) + "</title>",
			want: strings.Repeat("a", 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTitle(strings.NewReader(tt.html))
			if got != tt.want {
				t.Errorf("ExtractTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
