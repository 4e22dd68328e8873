package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/discovery"
	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// maxPageSize caps ?limit= on discovery routes.
const maxPageSize = 100

// handlePairs serves GET /api/v1/pairs?chain=&strategy=&limit=&scroll_id=.
// scroll_id is honoured by strategies with cursor pagination only.
func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	chain := q.Get("chain")
	if chain == "" {
		chain = s.cfg.Discovery.DefaultChain
	}
	chain = chains.Normalize(chain)

	name := q.Get("strategy")
	if name == "" {
		name = s.cfg.Discovery.Strategy
	}
	strategy, err := discovery.New(name, s.client, s.logger, s.metrics)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, err := parseLimit(q.Get("limit"), s.cfg.Discovery.PageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var pairs []models.Pair
	if pager, ok := strategy.(discovery.Pager); ok {
		pairs, err = pager.FetchPage(r.Context(), chain, limit, q.Get(provider.ParamScrollID))
	} else {
		pairs, err = strategy.FetchPairs(r.Context(), chain, limit)
	}
	if err != nil {
		s.writeFetchError(w, "discovery failed", err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: models.NewEnvelope(pairs)})
}

// handlePair serves GET /api/v1/pairs/{chain}/{address}.
func (s *Server) handlePair(w http.ResponseWriter, r *http.Request) {
	chain := chains.Normalize(chi.URLParam(r, "chain"))
	address := strings.TrimSpace(chi.URLParam(r, "address"))

	if chain == chains.All {
		writeError(w, http.StatusBadRequest, "a specific chain is required")
		return
	}
	if err := chains.ValidAddress(chain, address); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := s.client.Pair(r.Context(), chain, address)
	if err != nil {
		s.writeFetchError(w, "pair lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: models.NewEnvelope([]models.Pair{pair})})
}

// handleSearch serves GET /api/v1/search?q=. A blank query returns an empty
// envelope.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.client.Search(r.Context(), r.URL.Query().Get(provider.ParamQuery))
	if err != nil {
		s.writeFetchError(w, "search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: models.NewEnvelope(pairs)})
}

// handleNetworks serves GET /api/v1/networks.
func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: chains.Networks()})
}

// handleNetworksTop serves GET /api/v1/networks/top?n=&strategy=.
func (s *Server) handleNetworksTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	n := discovery.DefaultTopPerNetwork
	if v := q.Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	name := q.Get("strategy")
	if name == "" {
		name = s.cfg.Discovery.Strategy
	}
	strategy, err := discovery.New(name, s.client, s.logger, s.metrics)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	top := discovery.TopByNetwork(r.Context(), strategy, chains.Available(), n, s.logger)
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: top})
}

// writeFetchError maps gateway and discovery errors onto v1 responses.
func (s *Server) writeFetchError(w http.ResponseWriter, what string, err error) {
	var (
		creds *provider.ErrInvalidCredentials
		ge    *provider.GatewayError
	)
	switch {
	case errors.Is(err, provider.ErrNotFound):
		writeError(w, http.StatusNotFound, msgPairNotFound)
	case errors.As(err, &creds):
		writeError(w, http.StatusInternalServerError, msgMissingKey)
	case provider.IsConfigError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &ge):
		s.logger.Warn(what, zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error(what, zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseLimit(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > maxPageSize {
		n = maxPageSize
	}
	return n, nil
}
