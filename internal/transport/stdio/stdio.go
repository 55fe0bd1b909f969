// Package stdio implements the line-oriented tool protocol: one JSON
// message per line in, one JSON message per line out, per spec §6.1.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dataforge/gateway/internal/monitoring"
	"github.com/dataforge/gateway/internal/tools"
)

// request is one decoded line. Method is "list_tools" or "call_tool".
type request struct {
	Method    string                 `json:"method"`
	Name      string                 `json:"name,omitempty"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// contentBlock mirrors the tool-call content shape: a single text block
// carrying the envelope JSON, an "Error: ..." string, or an
// "Unknown tool: ..." string.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// Server reads requests from r and writes one JSON response per line
// to w until r is exhausted or ctx is cancelled.
type Server struct {
	registry *tools.Registry
	logger   *monitoring.Logger
}

// NewServer builds a stdio Server over a populated tool registry.
func NewServer(registry *tools.Registry, logger *monitoring.Logger) *Server {
	return &Server{registry: registry, logger: logger}
}

// Serve runs the read-eval-print loop until EOF or ctx cancellation.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode([]contentBlock{{Type: "text", Text: "Error: malformed request: " + err.Error()}}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := s.dispatch(ctx, req)
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, req request) interface{} {
	switch req.Method {
	case "list_tools":
		return s.listTools()
	case "call_tool":
		return s.callTool(ctx, req.Name, req.Arguments)
	default:
		return []contentBlock{{Type: "text", Text: fmt.Sprintf("Error: unknown method %q", req.Method)}}
	}
}

func (s *Server) listTools() []toolDescriptor {
	names := s.registry.Names()
	out := make([]toolDescriptor, 0, len(names))
	for _, name := range names {
		entry := s.registry.Get(name)
		out = append(out, toolDescriptor{
			Name:        entry.Name,
			Description: entry.Description,
			InputSchema: entry.InputSchema,
		})
	}
	return out
}

func (s *Server) callTool(ctx context.Context, name string, args map[string]interface{}) []contentBlock {
	if s.registry.Get(name) == nil {
		return []contentBlock{{Type: "text", Text: "Unknown tool: " + name}}
	}

	envelope, err := s.registry.Invoke(ctx, name, args)
	if err != nil {
		return []contentBlock{{Type: "text", Text: "Error: " + err.Error()}}
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error().Err(err).Str("tool", name).Msg("marshal envelope")
		return []contentBlock{{Type: "text", Text: "Error: failed to serialize result"}}
	}
	return []contentBlock{{Type: "text", Text: string(payload)}}
}
