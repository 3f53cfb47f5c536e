package privacy

import (
	"context"
	"errors"

	"github.com/nao1215/mediaredact/internal/model"
)

// Chain returns a Resolver that asks each resolver in turn and returns the
// first site found. Nil resolvers are skipped. Errors do not stop the
// search; when no resolver finds a site, the collected errors are returned.
func Chain(resolvers ...Resolver) Resolver {
	chain := make([]Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			chain = append(chain, r)
		}
	}
	return ResolverFunc(func(ctx context.Context, host, path string) (*model.Site, error) {
		var errs []error
		for _, r := range chain {
			site, err := r.ResolveSite(ctx, host, path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if site != nil {
				return site, nil
			}
		}
		return nil, errors.Join(errs...)
	})
}
