package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// ProxyPath is the relay route on a folyo server.
const ProxyPath = "/api/proxy"

// NewRemote returns a Client that calls the relay at baseURL. A nil hc uses
// a client with a 30s timeout.
func NewRemote(baseURL string, hc *http.Client) Client {
	c := infra.NewHTTPClient(30*time.Second, nil)
	if hc != nil {
		c = c.WithClient(hc)
	}
	return &client{t: &remoteTransport{base: provider.JoinURL(baseURL, ProxyPath), http: c}}
}

type remoteTransport struct {
	base string
	http *infra.HTTPClient
}

func (r *remoteTransport) pairs(ctx context.Context, ep provider.Endpoint, params provider.QueryParams) (*models.PairEnvelope, error) {
	var env models.PairEnvelope
	if err := r.get(ctx, ep, params, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *remoteTransport) boosts(ctx context.Context, ep provider.Endpoint) ([]models.BoostedToken, error) {
	var tokens []models.BoostedToken
	if err := r.get(ctx, ep, nil, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *remoteTransport) get(ctx context.Context, ep provider.Endpoint, params provider.QueryParams, v any) error {
	q := url.Values{}
	q.Set(provider.ParamEndpoint, string(ep))
	for k, val := range params {
		q.Set(k, val)
	}

	body, err := r.http.Get(ctx, "relay", string(ep), r.base+"?"+q.Encode(), nil)
	if err != nil {
		return relayError(ep, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &provider.GatewayError{
			Provider:   "relay",
			Endpoint:   ep,
			StatusCode: http.StatusOK,
			Message:    "malformed relay JSON: " + err.Error(),
			Err:        err,
		}
	}
	return nil
}

// relayError decodes the relay's {"error": "..."} body.
func relayError(ep provider.Endpoint, err error) error {
	ge := &provider.GatewayError{Provider: "relay", Endpoint: ep, Err: err}

	var statusErr *infra.HTTPStatusError
	if !errors.As(err, &statusErr) {
		ge.Message = "request failed: " + err.Error()
		return ge
	}
	if statusErr.StatusCode == http.StatusNotFound && ep == provider.EndpointScreenerPair {
		return provider.ErrNotFound
	}

	ge.StatusCode = statusErr.StatusCode
	ge.Body = statusErr.Body
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(statusErr.Body, &body) == nil && body.Error != "" {
		ge.Message = body.Error
	} else {
		ge.Message = http.StatusText(statusErr.StatusCode)
	}
	return ge
}
