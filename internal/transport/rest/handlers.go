package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/monitoring"
)

// errorResponse is the envelope for every non-2xx response, per spec §6.
type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, kind string) {
	s.writeJSON(w, status, errorResponse{Error: message, Kind: kind})
}

const serviceVersion = "v1"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     "dataforge-gateway",
		"version":     serviceVersion,
		"tools_count": len(s.registry.Names()),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "dataforge-gateway",
		"version": serviceVersion,
		"links": map[string]string{
			"health":   "/health",
			"tools":    "/tools",
			"registry": "/tools/registry",
		},
	})
}

func (s *Server) handleToolsList(w http.ResponseWriter, r *http.Request) {
	type minimalTool struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Endpoint    string `json:"endpoint"`
	}
	names := s.registry.Names()
	out := make([]minimalTool, 0, len(names))
	for _, name := range names {
		entry := s.registry.Get(name)
		out = append(out, minimalTool{Name: entry.Name, Description: entry.Description, Endpoint: entry.Endpoint})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"tools": out})
}

func (s *Server) handleToolsRegistry(w http.ResponseWriter, r *http.Request) {
	entries := make([]interface{}, 0, len(s.registry.Names()))
	for _, name := range s.registry.Names() {
		entries = append(entries, s.registry.Get(name))
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"tools": entries})
}

func (s *Server) handleToolDescribe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry := s.registry.Get(name)
	if entry == nil {
		s.writeError(w, http.StatusNotFound, "unknown tool: "+name, "not_found")
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// handleToolInvoke runs a tool against its JSON body and maps façade
// errors onto status codes: 422 for malformed input or an ambiguous
// symbol, 502 when every source failed, 503 for a disabled tool, 500
// for anything else unhandled. A
// partially successful envelope (some capabilities degraded to
// warnings) is still a 200, by design.
func (s *Server) handleToolInvoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.registry.Get(name) == nil && !s.registry.IsDisabled(name) {
		s.writeError(w, http.StatusNotFound, "unknown tool: "+name, "not_found")
		return
	}

	var input map[string]interface{}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err.Error() != "EOF" {
			s.writeError(w, http.StatusUnprocessableEntity, "malformed JSON body: "+err.Error(), "validation_error")
			return
		}
	}
	if input == nil {
		input = map[string]interface{}{}
	}

	envelope, err := s.registry.Invoke(r.Context(), name, input)
	if err != nil {
		s.mapInvokeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope)
}

func (s *Server) mapInvokeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := monitoring.RequestIDFromContext(r.Context())
	switch e := err.(type) {
	case *core.ValidationError:
		s.alerts.FlagInvalidRequest(requestID, e.Message, nil)
		s.writeError(w, http.StatusUnprocessableEntity, e.Message, "validation_error")
	case *core.AmbiguousSymbolError:
		s.writeError(w, http.StatusUnprocessableEntity, e.Error(), "ambiguous_symbol")
	case *core.AllSourcesFailedError:
		s.writeError(w, http.StatusBadGateway, e.Error(), "all_sources_failed")
	case *core.ConfigurationError:
		s.writeError(w, http.StatusServiceUnavailable, e.Error(), "configuration_error")
	default:
		s.writeError(w, http.StatusInternalServerError, "internal error", "internal_error")
	}
}
