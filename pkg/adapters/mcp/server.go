package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fluxfee"
	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxExactFloat is the first magnitude at which float64 stops holding every integer.
const maxExactFloat = 1 << 53

// InputArgument carries the raw JSON input of an action, passed through untouched.
const InputArgument = "input"

const inputDescription = "The action input as a JSON string. When set, all other arguments are ignored " +
	"and the text reaches the action byte-for-byte."

// Server exposes every registered action as an MCP tool.
type Server struct {
	invoker   ports.Invoker
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(invoker ports.Invoker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		invoker:   invoker,
		mcpServer: server.NewMCPServer("fluxfee-mcp", strings.TrimSpace(fluxfee.Version)),
		logger:    logger.With("component", "mcp"),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	for _, info := range s.invoker.List() {
		raw, err := json.Marshal(toolSchema(info))
		if err != nil {
			s.logger.Error("Skipping tool with unencodable schema", "tool", info.Name, "error", err)
			continue
		}
		tool := mcp.NewToolWithRawSchema(info.Name, info.Description, raw)
		s.mcpServer.AddTool(tool, s.handleAction(info.Name))
	}
}

// toolSchema adds the raw input argument to the action parameters.
// Nothing is marked required, since either form of input is accepted.
func toolSchema(info domain.ActionInfo) map[string]any {
	props := map[string]any{
		InputArgument: map[string]any{"type": "string", "description": inputDescription},
	}
	if p, ok := info.Parameters["properties"].(map[string]any); ok {
		for k, v := range p {
			props[k] = v
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

func (s *Server) handleAction(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := toolInput(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		out, err := s.invoker.Invoke(ctx, name, input)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result := mcp.NewToolResultText(out)
		if r, err := domain.ParseResult(out); err == nil && !r.IsSuccess() {
			result.IsError = true
		}
		return result, nil
	}
}

// toolInput turns tool arguments back into action input text.
// A string "input" argument wins; otherwise the remaining arguments are re-encoded as an object.
func toolInput(args map[string]any) (string, error) {
	if raw, ok := args[InputArgument].(string); ok && strings.TrimSpace(raw) != "" {
		return raw, nil
	}

	fields := make(map[string]any, len(args))
	for k, v := range args {
		if k == InputArgument {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return "", nil
	}
	if err := checkExact(fields, ""); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// checkExact rejects numbers large enough that decoding them as float64 may have
// rounded them, so a fee is never submitted with a different value than was sent.
func checkExact(v any, path string) error {
	switch x := v.(type) {
	case float64:
		if math.Abs(x) >= maxExactFloat {
			return fmt.Errorf("%s: %.0f is too large to pass exactly as a structured argument; send the request as the %q string",
				path, x, InputArgument)
		}
	case map[string]any:
		for k, inner := range x {
			key := k
			if path != "" {
				key = path + "." + k
			}
			if err := checkExact(inner, key); err != nil {
				return err
			}
		}
	case []any:
		for i, inner := range x {
			if err := checkExact(inner, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("fluxfee://actions", "Available Fee Actions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.invoker.List())
		if err != nil {
			return nil, fmt.Errorf("failed to encode actions: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fluxfee://actions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
