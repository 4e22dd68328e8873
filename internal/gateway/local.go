package gateway

import (
	"context"
	"fmt"

	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// NewLocal returns a Client served by an in-process registry.
func NewLocal(reg *provider.Registry) Client {
	return &client{t: &localTransport{reg: reg}}
}

type localTransport struct {
	reg *provider.Registry
}

func (l *localTransport) pairs(ctx context.Context, ep provider.Endpoint, params provider.QueryParams) (*models.PairEnvelope, error) {
	res, err := l.reg.Fetch(ctx, ep, params)
	if err != nil {
		return nil, err
	}
	env, ok := res.Data.(*models.PairEnvelope)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", ep, res.Data)
	}
	return env, nil
}

func (l *localTransport) boosts(ctx context.Context, ep provider.Endpoint) ([]models.BoostedToken, error) {
	res, err := l.reg.Fetch(ctx, ep, provider.QueryParams{})
	if err != nil {
		return nil, err
	}
	tokens, ok := res.Data.([]models.BoostedToken)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", ep, res.Data)
	}
	return tokens, nil
}
