package model

import (
	"strings"
	"time"
)

// Visibility is the public flag of a network site.
//
// Non-negative values are publicly listed; negative values restrict the
// site to some audience, and media hosted there must not leak into email.
type Visibility int

const (
	// VisibilityAdminsOnly limits the site to network administrators.
	VisibilityAdminsOnly Visibility = -3

	// VisibilityMembersOnly limits the site to its members.
	VisibilityMembersOnly Visibility = -2

	// VisibilityUsersOnly limits the site to logged-in users.
	VisibilityUsersOnly Visibility = -1

	// VisibilityNoIndex is public but asks search engines not to index it.
	VisibilityNoIndex Visibility = 0

	// VisibilityPublic is a fully public site.
	VisibilityPublic Visibility = 1
)

// String returns a short label for the visibility code.
func (v Visibility) String() string {
	switch {
	case v == VisibilityPublic:
		return "public"
	case v == VisibilityNoIndex:
		return "noindex"
	case v == VisibilityUsersOnly:
		return "users"
	case v == VisibilityMembersOnly:
		return "members"
	case v == VisibilityAdminsOnly:
		return "admins"
	case v < 0:
		return "restricted"
	default:
		return "public"
	}
}

// Restricted reports whether the code denotes a non-public site.
func (v Visibility) Restricted() bool {
	return v < 0
}

// Site is a content container resolved from a media URL.
type Site struct {
	ID        int64      `json:"id,omitempty" yaml:"id,omitempty"`
	Domain    string     `json:"domain" yaml:"domain"`
	Path      string     `json:"path" yaml:"path"`
	Public    Visibility `json:"public" yaml:"public"`
	UpdatedAt time.Time  `json:"updated_at,omitempty" yaml:"-"`
}

// IsRestricted reports whether media hosted on the site must be redacted.
func (s *Site) IsRestricted() bool {
	return s != nil && s.Public.Restricted()
}

// NormalizeDomain lower-cases a host and strips any port and trailing dot.
func NormalizeDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}

// NormalizeSitePath returns path with exactly one leading and one trailing slash.
// An empty path becomes "/".
func NormalizeSitePath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return "/"
	}
	return "/" + path + "/"
}

// LookupDomains returns the domains to try for host: the host itself and,
// when it starts with "www.", the bare domain.
func LookupDomains(host string) []string {
	host = NormalizeDomain(host)
	if host == "" {
		return nil
	}
	domains := []string{host}
	if bare, ok := strings.CutPrefix(host, "www."); ok && bare != "" {
		domains = append(domains, bare)
	}
	return domains
}

// LookupPaths returns the directory prefixes of a URL path, longest first,
// always ending with "/". The last path segment is treated as a file name
// unless the path ends with a slash.
//
//	LookupPaths("/blog/files/x.jpg") == []string{"/blog/files/", "/blog/", "/"}
func LookupPaths(path string) []string {
	dir := path
	if !strings.HasSuffix(dir, "/") {
		if i := strings.LastIndex(dir, "/"); i >= 0 {
			dir = dir[:i+1]
		} else {
			dir = "/"
		}
	}

	segments := strings.FieldsFunc(dir, func(r rune) bool { return r == '/' })
	paths := make([]string, 0, len(segments)+1)
	for i := len(segments); i > 0; i-- {
		paths = append(paths, "/"+strings.Join(segments[:i], "/")+"/")
	}
	return append(paths, "/")
}
