package app

import "testing"

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"lofai.ng", "https://lofai.ng"},
		{"  lofai.ng  ", "https://lofai.ng"},
		{"http://lofai.ng", "http://lofai.ng"},
		{"https://lofai.ng/path", "https://lofai.ng/path"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeURL(tc.in); got != tc.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
