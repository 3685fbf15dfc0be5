package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MachinesURI lists the machines known to the loader.
const MachinesURI = "turing://machines"

// SimulateArgs are the arguments of the simulate tool.
type SimulateArgs struct {
	Machine    string `json:"machine,omitempty"`
	Definition string `json:"definition,omitempty"`
	Format     string `json:"format,omitempty"`
	Input      string `json:"input"`
	MaxSteps   int    `json:"max_steps,omitempty"`
}

// SimulateResponse aligns with the HTTP adapter's response body.
type SimulateResponse struct {
	RunID   string         `json:"run_id,omitempty" jsonschema_description:"ID of the recorded run, if recording is enabled"`
	Input   string         `json:"input" jsonschema_description:"The simulated input string"`
	Result  *domain.Result `json:"result,omitempty" jsonschema_description:"Verdict and final configuration"`
	Summary string         `json:"summary" jsonschema_description:"Human-readable verdict"`
}

// DescribeArgs are the arguments of the describe_machine tool.
type DescribeArgs struct {
	Machine string `json:"machine"`
}

// DescribeResponse summarizes one machine.
type DescribeResponse struct {
	Name     string   `json:"name"`
	Start    string   `json:"start"`
	Accept   string   `json:"accept"`
	Reject   string   `json:"reject"`
	Alphabet []string `json:"alphabet"`
	States   []string `json:"states"`
	Rules    []string `json:"rules"`
	Findings []string `json:"findings,omitempty"`
}

// Server exposes a runner.Service as an MCP server.
type Server struct {
	service   *runner.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc *runner.Service) *Server {
	s := &Server{
		service:   svc,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run a Turing machine on an input string and report whether it is accepted. Give either a machine name or an inline definition."),
		mcp.WithString("machine", mcp.Description("Name of a stored machine (see list_machines)")),
		mcp.WithString("definition", mcp.Description("Inline definition: start, accept and reject states, alphabet, then one from(read,write,L|R)to rule per line")),
		mcp.WithString("format", mcp.Description("Inline definition format: text (default), yaml or json")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; every symbol must be in the machine's alphabet")),
		mcp.WithNumber("max_steps", mcp.Description("Step ceiling for this run (optional)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the stored machines."),
	), s.handleListMachines)

	describeTool := mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe a stored machine: its states, alphabet, rules and lint findings."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[DescribeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))
}

func (s *Server) handleSimulate(ctx context.Context, _ mcp.CallToolRequest, args SimulateArgs) (SimulateResponse, error) {
	outcome, err := s.service.Simulate(ctx, runner.Request(args))
	if err != nil {
		slog.Warn("MCP simulate: request rejected", "error", err)
		return SimulateResponse{}, err
	}
	if outcome.Err != nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", outcome.Err)
	}
	return SimulateResponse{
		RunID:   outcome.RunID,
		Input:   outcome.Input,
		Result:  outcome.Result,
		Summary: runner.FormatOutcome(outcome),
	}, nil
}

func (s *Server) handleListMachines(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.machineNames(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) handleDescribe(ctx context.Context, _ mcp.CallToolRequest, args DescribeArgs) (DescribeResponse, error) {
	_, def, err := s.service.Resolve(ctx, runner.Request{Machine: args.Machine})
	if err != nil {
		return DescribeResponse{}, err
	}

	resp := DescribeResponse{
		Name:     args.Machine,
		Start:    def.Start,
		Accept:   def.Accept,
		Reject:   def.Reject,
		States:   def.States(),
		Rules:    make([]string, 0, len(def.Rules)),
		Alphabet: []string{},
	}
	for _, r := range def.Rules {
		resp.Rules = append(resp.Rules, r.String())
	}
	for _, sym := range def.Alphabet {
		resp.Alphabet = append(resp.Alphabet, sym.String())
	}
	for _, issue := range validator.Lint(def) {
		resp.Findings = append(resp.Findings, issue.String())
	}
	return resp, nil
}

func (s *Server) machineNames(ctx context.Context) ([]string, error) {
	if s.service.Loader == nil {
		return []string{}, nil
	}
	names, err := s.service.Loader.List(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachinesURI, "Stored Turing machines",
		mcp.WithMIMEType("application/json"),
	), s.readMachines)
}

func (s *Server) readMachines(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.machineNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MachinesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
