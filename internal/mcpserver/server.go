// Package mcpserver binds the buffer, shell and eval operations to an MCP
// tool surface.
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tliron/commonlog"

	"github.com/dannyob/mcp-servers/internal/buffers"
	"github.com/dannyob/mcp-servers/internal/emacs"
	"github.com/dannyob/mcp-servers/internal/journal"
	"github.com/dannyob/mcp-servers/internal/shell"
)

// Options configures a Server. Buffers and Emacs are nil for the shell-only
// server; Journal is nil when auditing is disabled.
type Options struct {
	Name    string
	Version string

	Buffers *buffers.Service
	Emacs   *emacs.Client
	Runner  *shell.Runner
	Journal *journal.DB
}

type Server struct {
	opts   Options
	server *mcp.Server
	log    commonlog.Logger
}

// New builds a server and registers every tool, prompt and resource the
// supplied options support.
func New(opts Options) *Server {
	s := &Server{
		opts: opts,
		log:  commonlog.GetLogger("mcpserver"),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    opts.Name,
		Version: opts.Version,
	}, nil)

	if opts.Buffers != nil {
		s.registerBufferTools()
	}
	if opts.Emacs != nil {
		s.registerEvalTool()
		s.registerBufferResource()
	}
	if opts.Runner != nil {
		s.registerShellTool()
		s.registerCommandPrompt()
	}
	return s
}

// RunStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.log.Noticef("serving %s over stdio", s.opts.Name)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr, with a health
// endpoint beside it.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/mcp", handler)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Noticef("serving %s on %s", s.opts.Name, addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// record writes an invocation to the journal when one is configured. A
// journal failure is logged and swallowed; auditing never blocks a call.
func (s *Server) record(tool string, input any, start time.Time, callErr error) {
	if s.opts.Journal == nil {
		return
	}
	args, err := json.Marshal(input)
	if err != nil {
		args = []byte("{}")
	}
	inv := journal.Invocation{
		Tool:     tool,
		Args:     string(args),
		OK:       callErr == nil,
		Duration: time.Since(start),
		Started:  start.Unix(),
	}
	if callErr != nil {
		inv.Error = callErr.Error()
	}
	if _, err := s.opts.Journal.Record(inv); err != nil {
		s.log.Errorf("failed to journal %s invocation: %v", tool, err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
