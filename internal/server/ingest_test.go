package server

import "testing"

func TestResolveSkipHidden(t *testing.T) {
	boolPtr := func(v bool) *bool { return &v }

	cases := []struct {
		name string
		in   *bool
		want bool
	}{
		{"unset defaults to true", nil, true},
		{"explicit false honored", boolPtr(false), false},
		{"explicit true", boolPtr(true), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveSkipHidden(tc.in); got != tc.want {
				t.Fatalf("resolveSkipHidden(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
