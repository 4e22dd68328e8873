package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/provider"
)

// Relay error bodies use a bare {"error": "..."} object.
const (
	msgInvalidEndpoint = "Invalid endpoint"
	msgMissingKey      = "API key not configured"
	msgPairNotFound    = "Pair not found"
)

type relayError struct {
	Error string `json:"error"`
}

// handleProxy serves GET /api/proxy?endpoint=<name>&...
//
// Centralized endpoints relay the upstream body unchanged. DEX pair
// endpoints return the unified pair envelope and boost endpoints a JSON
// array of boosted tokens.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ep := provider.Endpoint(strings.TrimSpace(q.Get(provider.ParamEndpoint)))

	params := make(provider.QueryParams, len(q))
	for k := range q {
		if k == provider.ParamEndpoint {
			continue
		}
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			params[k] = v
		}
	}

	res, err := s.registry.Fetch(r.Context(), ep, params)
	if err != nil {
		s.writeRelayError(w, ep, err)
		return
	}

	if res.Cached {
		w.Header().Set("X-Cache", "HIT")
	}
	if raw, ok := res.Data.(json.RawMessage); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}
	writeJSON(w, http.StatusOK, res.Data)
}

// writeRelayError maps a fetch error onto the relay's status codes.
func (s *Server) writeRelayError(w http.ResponseWriter, ep provider.Endpoint, err error) {
	var (
		missing *provider.ErrMissingParam
		creds   *provider.ErrInvalidCredentials
		unsup   *provider.ErrEndpointNotSupported
		notReg  *provider.ErrProviderNotFound
		ge      *provider.GatewayError
	)

	switch {
	case errors.As(err, &missing):
		writeRelayJSON(w, http.StatusBadRequest, capitalize(missing.Error()))
	case errors.As(err, &unsup), errors.As(err, &notReg):
		writeRelayJSON(w, http.StatusBadRequest, msgInvalidEndpoint)
	case errors.As(err, &creds):
		s.logger.Error("relay credential error", zap.String("endpoint", string(ep)), zap.Error(err))
		writeRelayJSON(w, http.StatusInternalServerError, msgMissingKey)
	case errors.Is(err, provider.ErrNotFound):
		writeRelayJSON(w, http.StatusNotFound, msgPairNotFound)
	case errors.As(err, &ge):
		s.logger.Warn("upstream error", zap.String("endpoint", string(ep)), zap.Error(err))
		// Upstream error bodies are relayed as-is when they are JSON.
		if ge.StatusCode >= http.StatusBadRequest && len(ge.Body) > 0 && json.Valid(ge.Body) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(ge.StatusCode)
			_, _ = w.Write(ge.Body)
			return
		}
		status := ge.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		writeRelayJSON(w, status, ge.Error())
	default:
		s.logger.Error("relay failed", zap.String("endpoint", string(ep)), zap.Error(err))
		writeRelayJSON(w, http.StatusInternalServerError, "Request failed: "+err.Error())
	}
}

func writeRelayJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, relayError{Error: msg})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
