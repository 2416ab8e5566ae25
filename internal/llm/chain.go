package llm

import (
	"context"
	"strings"
)

// Chain tries its providers in order and returns the first successful
// response. No provider is attempted twice. When every attempt fails the
// failures are returned together as a *ChainError.
type Chain struct {
	providers []Provider
}

// NewChain builds a Chain. A single provider is returned as-is.
func NewChain(providers ...Provider) Provider {
	if len(providers) == 1 {
		return providers[0]
	}
	return &Chain{providers: providers}
}

func (c *Chain) Generate(ctx context.Context, req Request) (*Response, error) {
	var errs []error
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		resp, err := p.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	return nil, &ChainError{Errs: errs}
}

// ModelID lists the member models in attempt order.
func (c *Chain) ModelID() string {
	ids := make([]string, len(c.providers))
	for i, p := range c.providers {
		ids[i] = p.ModelID()
	}
	return strings.Join(ids, ",")
}
