package utils

import "testing"

func TestGetEnvTrimmedOrDefault(t *testing.T) {
	t.Setenv("WAITLIST_TEST_VALUE", "  padded  ")

	if got := GetEnvTrimmedOrDefault("WAITLIST_TEST_VALUE", "fallback"); got != "padded" {
		t.Fatalf("expected trimmed value, got %q", got)
	}

	t.Setenv("WAITLIST_TEST_VALUE", "   ")
	if got := GetEnvTrimmedOrDefault("WAITLIST_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"2525", 2525},
		{"", 587},
		{"not-a-number", 587},
		{"-1", 587},
		{"0", 587},
	}

	for _, tc := range cases {
		t.Setenv("WAITLIST_TEST_PORT", tc.value)
		if got := GetEnvIntOrDefault("WAITLIST_TEST_PORT", 587); got != tc.want {
			t.Fatalf("value %q: expected %d, got %d", tc.value, tc.want, got)
		}
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"false", false},
		{"0", false},
		{"true", true},
		{"", true},
		{"banana", true},
	}

	for _, tc := range cases {
		t.Setenv("WAITLIST_TEST_FLAG", tc.value)
		if got := GetEnvBoolOrDefault("WAITLIST_TEST_FLAG", true); got != tc.want {
			t.Fatalf("value %q: expected %v, got %v", tc.value, tc.want, got)
		}
	}
}
