// Package mcpserver serves read-only inspection of recorded histories over
// the Model Context Protocol.
//
// Tools:
//   - list_entities: names, modes and call counts of every registered entity
//   - calls: the full history of an entity or one of its methods
//   - last_call: the most recent call of an entity or method
//   - tail: the last n calls of an entity or method
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/scribe/registry"
	"github.com/jonwraymond/scribe/report"
	"github.com/jonwraymond/scribe/scribe"
)

// ErrMethodNotFound is returned for a method the entity has never had wrapped.
var ErrMethodNotFound = errors.New("method not found")

// Server exposes a registry through MCP tools.
type Server struct {
	reg    *registry.Registry
	server *mcp.Server
}

// New creates a server named by impl over reg.
func New(impl *mcp.Implementation, reg *registry.Registry) *Server {
	s := &Server{
		reg:    reg,
		server: mcp.NewServer(impl, nil),
	}
	s.addTools()
	return s
}

// MCP returns the underlying server, for callers that connect their own
// transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves on stdin and stdout until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Target selects an entity and optionally one of its methods.
type Target struct {
	Entity string `json:"entity" jsonschema:"name of the wrapped entity"`
	Method string `json:"method,omitempty" jsonschema:"method name; omit for the object-level history"`
}

// TailInput is the input of the tail tool.
type TailInput struct {
	Entity string `json:"entity" jsonschema:"name of the wrapped entity"`
	Method string `json:"method,omitempty" jsonschema:"method name; omit for the object-level history"`
	N      int    `json:"n" jsonschema:"number of calls; negative values count the same as positive ones"`
}

// EntitySummary describes one registered entity.
type EntitySummary struct {
	Name    string      `json:"name"`
	Mode    scribe.Mode `json:"mode"`
	Calls   int         `json:"calls"`
	Methods []string    `json:"methods"`
}

// ListOutput is the output of list_entities.
type ListOutput struct {
	Entities []EntitySummary `json:"entities"`
}

// CallsOutput is the output of calls and tail.
type CallsOutput struct {
	Calls []report.Call `json:"calls"`
}

// LastCallOutput is the output of last_call. Call is nil when the history
// is empty.
type LastCallOutput struct {
	Call *report.Call `json:"call,omitempty"`
}

func (s *Server) addTools() {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_entities",
		Description: "List every wrapped entity with its mode, call count and instrumented methods",
		Annotations: readOnly,
	}, s.listEntities)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calls",
		Description: "Return the full call history of an entity, or of one of its methods",
		Annotations: readOnly,
	}, s.calls)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "last_call",
		Description: "Return the most recent call of an entity, or of one of its methods",
		Annotations: readOnly,
	}, s.lastCall)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tail",
		Description: "Return the last n calls of an entity, or of one of its methods, oldest first",
		Annotations: readOnly,
	}, s.tail)
}

func (s *Server) listEntities(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ListOutput, error) {
	out := ListOutput{Entities: []EntitySummary{}}
	for _, e := range s.reg.List() {
		out.Entities = append(out.Entities, EntitySummary{
			Name:    e.Name,
			Mode:    e.Recorder.Mode(),
			Calls:   e.Recorder.Inspect().Len(),
			Methods: append([]string{}, e.Recorder.Methods()...),
		})
	}
	return nil, out, nil
}

func (s *Server) calls(_ context.Context, _ *mcp.CallToolRequest, in Target) (*mcp.CallToolResult, CallsOutput, error) {
	h, err := s.history(in)
	if err != nil {
		return nil, CallsOutput{}, err
	}
	return nil, CallsOutput{Calls: h.all()}, nil
}

func (s *Server) lastCall(_ context.Context, _ *mcp.CallToolRequest, in Target) (*mcp.CallToolResult, LastCallOutput, error) {
	h, err := s.history(in)
	if err != nil {
		return nil, LastCallOutput{}, err
	}
	c, ok := h.last()
	if !ok {
		return nil, LastCallOutput{}, nil
	}
	return nil, LastCallOutput{Call: &c}, nil
}

func (s *Server) tail(_ context.Context, _ *mcp.CallToolRequest, in TailInput) (*mcp.CallToolResult, CallsOutput, error) {
	h, err := s.history(Target{Entity: in.Entity, Method: in.Method})
	if err != nil {
		return nil, CallsOutput{}, err
	}
	return nil, CallsOutput{Calls: h.tail(in.N)}, nil
}

// view converts one of the two history levels to report calls.
type view struct {
	all  func() []report.Call
	last func() (report.Call, bool)
	tail func(n int) []report.Call
}

func (s *Server) history(t Target) (view, error) {
	rec, err := s.reg.Lookup(t.Entity)
	if err != nil {
		return view{}, err
	}

	if t.Method == "" {
		h := rec.Inspect()
		return view{
			all: func() []report.Call { return report.MethodCalls(h.Calls()) },
			last: func() (report.Call, bool) {
				c, ok := h.LastCall()
				if !ok {
					return report.Call{}, false
				}
				return report.MethodCall(c), true
			},
			tail: func(n int) []report.Call { return report.MethodCalls(h.Tail(n)) },
		}, nil
	}

	if !slices.Contains(rec.Methods(), t.Method) {
		return view{}, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, t.Entity, t.Method)
	}
	h := rec.Method(t.Method).Inspect()
	return view{
		all: func() []report.Call { return report.FunctionCalls(h.Calls()) },
		last: func() (report.Call, bool) {
			c, ok := h.LastCall()
			if !ok {
				return report.Call{}, false
			}
			return report.FunctionCall(c), true
		},
		tail: func(n int) []report.Call { return report.FunctionCalls(h.Tail(n)) },
	}, nil
}
