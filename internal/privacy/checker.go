package privacy

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/mediaredact/internal/model"
	"github.com/nao1215/mediaredact/internal/redact"
)

// Resolver finds the site serving a host and path.
// It returns nil and no error when no site matches.
type Resolver interface {
	ResolveSite(ctx context.Context, host, path string) (*model.Site, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, host, path string) (*model.Site, error)

// ResolveSite calls f.
func (f ResolverFunc) ResolveSite(ctx context.Context, host, path string) (*model.Site, error) {
	return f(ctx, host, path)
}

// Checker answers whether media URLs are restricted.
type Checker struct {
	resolver Resolver
	logger   *slog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithLogger sets the logger used for resolver failures.
func WithLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker creates a Checker backed by resolver.
// A nil resolver resolves nothing, so every URL is public.
func NewChecker(resolver Resolver, opts ...CheckerOption) *Checker {
	c := &Checker{
		resolver: resolver,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsRestricted reports whether rawURL is served by a non-public site.
func (c *Checker) IsRestricted(ctx context.Context, rawURL string) bool {
	if c.resolver == nil {
		return false
	}

	host, path, ok := splitURL(rawURL)
	if !ok {
		return false
	}

	site, err := c.resolver.ResolveSite(ctx, host, path)
	if err != nil {
		c.logger.Warn("site lookup failed, treating media as public",
			"host", host,
			"path", path,
			"error", err,
		)
		return false
	}
	if site == nil {
		return false
	}

	restricted := site.IsRestricted()
	if restricted {
		c.logger.Debug("media hosted on restricted site",
			"host", host,
			"site", site.Domain+site.Path,
			"visibility", site.Public.String(),
		)
	}
	return restricted
}

// Predicate adapts the checker to the redactor by checking each element's src.
func (c *Checker) Predicate(ctx context.Context) redact.Predicate {
	return func(n *html.Node) bool {
		return c.IsRestricted(ctx, redact.Src(n))
	}
}

// splitURL extracts the host and path of an absolute or protocol-relative URL.
func splitURL(rawURL string) (host, path string, ok bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}
	host = u.Hostname()
	if host == "" {
		return "", "", false
	}
	path = u.Path
	if path == "" {
		path = "/"
	}
	return host, path, true
}
