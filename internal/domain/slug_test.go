package domain

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Intro Call", "intro-call"},
		{"already slug", "intro-call", "intro-call"},
		{"punctuation collapses", "30min -- Coffee Chat!", "30min-coffee-chat"},
		{"leading and trailing junk", "  ++Deep Dive++  ", "deep-dive"},
		{"digits survive", "Q1 2026 Review", "q1-2026-review"},
		{"only junk", "!!!", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, in := range []string{"Intro Call", "a b c", "Ünïcode Name"} {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
