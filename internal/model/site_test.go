package model

import (
	"reflect"
	"testing"
)

// TestVisibilityRestricted tests the negative-is-restricted convention.
func TestVisibilityRestricted(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		visibility Visibility
		restricted bool
		label      string
	}{
		{VisibilityPublic, false, "public"},
		{VisibilityNoIndex, false, "noindex"},
		{VisibilityUsersOnly, true, "users"},
		{VisibilityMembersOnly, true, "members"},
		{VisibilityAdminsOnly, true, "admins"},
		{Visibility(-9), true, "restricted"},
		{Visibility(5), false, "public"},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()
			if got := tc.visibility.Restricted(); got != tc.restricted {
				t.Errorf("Restricted() = %v, expected %v", got, tc.restricted)
			}
			if got := tc.visibility.String(); got != tc.label {
				t.Errorf("String() = %q, expected %q", got, tc.label)
			}
		})
	}
}

// TestSiteIsRestricted tests Site.IsRestricted including the nil receiver.
func TestSiteIsRestricted(t *testing.T) {
	t.Parallel()

	var nilSite *Site
	if nilSite.IsRestricted() {
		t.Error("nil site should not be restricted")
	}

	site := &Site{Domain: "example.org", Path: "/", Public: VisibilityMembersOnly}
	if !site.IsRestricted() {
		t.Error("members-only site should be restricted")
	}

	site.Public = VisibilityNoIndex
	if site.IsRestricted() {
		t.Error("noindex site should not be restricted")
	}
}

// TestNormalizeDomain tests host normalization.
func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"Example.ORG":      "example.org",
		"example.org:8080": "example.org",
		"example.org.":     "example.org",
		" example.org ":    "example.org",
		"[::1]":            "[::1]",
		"":                 "",
	}

	for input, expected := range testCases {
		if got := NormalizeDomain(input); got != expected {
			t.Errorf("NormalizeDomain(%q) = %q, expected %q", input, got, expected)
		}
	}
}

// TestNormalizeSitePath tests path normalization.
func TestNormalizeSitePath(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"":          "/",
		"/":         "/",
		"blog":      "/blog/",
		"/blog":     "/blog/",
		"/blog/":    "/blog/",
		"//a/b//":   "/a/b/",
		" /class/ ": "/class/",
	}

	for input, expected := range testCases {
		if got := NormalizeSitePath(input); got != expected {
			t.Errorf("NormalizeSitePath(%q) = %q, expected %q", input, got, expected)
		}
	}
}

// TestLookupDomains tests domain candidates.
func TestLookupDomains(t *testing.T) {
	t.Parallel()

	t.Run("plain host", func(t *testing.T) {
		t.Parallel()
		got := LookupDomains("Example.org")
		if !reflect.DeepEqual(got, []string{"example.org"}) {
			t.Errorf("unexpected domains: %v", got)
		}
	})

	t.Run("www host", func(t *testing.T) {
		t.Parallel()
		got := LookupDomains("www.example.org")
		if !reflect.DeepEqual(got, []string{"www.example.org", "example.org"}) {
			t.Errorf("unexpected domains: %v", got)
		}
	})

	t.Run("empty host", func(t *testing.T) {
		t.Parallel()
		if got := LookupDomains(""); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

// TestLookupPaths tests path prefix candidates.
func TestLookupPaths(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path     string
		expected []string
	}{
		{"/blog/files/2024/x.jpg", []string{"/blog/files/2024/", "/blog/files/", "/blog/", "/"}},
		{"/blog/", []string{"/blog/", "/"}},
		{"/x.jpg", []string{"/"}},
		{"/", []string{"/"}},
		{"", []string{"/"}},
		{"x.jpg", []string{"/"}},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			got := LookupPaths(tc.path)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("LookupPaths(%q) = %v, expected %v", tc.path, got, tc.expected)
			}
		})
	}
}
