package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/fsm"
	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const automataURI = "fsm://automata"

// Catalog is the read side of the automaton registry.
type Catalog interface {
	Names() []string
	Get(name string) (*definition.Automaton, error)
}

// RunArgs are the arguments of the run_automaton tool.
type RunArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
	Trace bool   `json:"trace"`
}

// NameArgs are the arguments of the describe_automaton tool.
type NameArgs struct {
	Name string `json:"name"`
}

// Server exposes a Catalog as an MCP Server.
type Server struct {
	automata  Catalog
	runner    *runner.Runner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards logs.
func NewServer(automata Catalog, r *runner.Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		automata:  automata,
		runner:    r,
		logger:    logger,
		mcpServer: server.NewMCPServer("fsm-mcp", fsm.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of the registered automata."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.automata.Names())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("describe_automaton",
		mcp.WithDescription("Get the definition of an automaton: states, alphabet, accepting states and transitions."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithOutputSchema[definition.Definition](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("run_automaton",
		mcp.WithDescription("Feed an input string to an automaton and report whether it is accepted."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input text, split with the automaton's tokenizer")),
		mcp.WithBoolean("trace", mcp.Description("Include every visited state in the result")),
		mcp.WithOutputSchema[domain.Result](),
	), mcp.NewStructuredToolHandler(s.handleRun))
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args NameArgs) (definition.Definition, error) {
	a, err := s.automata.Get(args.Name)
	if err != nil {
		return definition.Definition{}, err
	}
	return *a.Definition(), nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (domain.Result, error) {
	a, err := s.automata.Get(args.Name)
	if err != nil {
		return domain.Result{}, err
	}

	var res *domain.Result
	if args.Trace {
		res, err = s.runner.Trace(ctx, a, args.Input)
	} else {
		res, err = s.runner.Evaluate(ctx, a, args.Input)
	}
	if err != nil {
		s.logger.Warn("MCP run rejected", "automaton", args.Name, "error", err)
		return domain.Result{}, err
	}
	return *res, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(automataURI, "Registered automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		defs := make([]*definition.Definition, 0)
		for _, name := range s.automata.Names() {
			a, err := s.automata.Get(name)
			if err != nil {
				continue
			}
			defs = append(defs, a.Definition())
		}
		jsonBytes, err := json.Marshal(defs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode automata: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      automataURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
