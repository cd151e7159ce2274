// Package mcpserver exposes the plan generators as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/generators"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// Tool names offered to host agents.
const (
	ToolWorkoutPlanner    = "workout_planner"
	ToolLLMWorkoutPlanner = "llm_workout_planner"
	CatalogURI            = "planner://catalog"
)

var toolNames = map[string]string{
	generators.NameTemplate: ToolWorkoutPlanner,
	generators.NameLLM:      ToolLLMWorkoutPlanner,
}

// Server wraps the generator registry and exposes it as an MCP server.
type Server struct {
	registry  *generators.Registry
	catalog   *planner.Catalog
	log       zerolog.Logger
	mcpServer *server.MCPServer
}

// NewServer registers one tool per generator in reg. A generator is only offered when
// it is registered, so the llm tool disappears when no provider is configured.
func NewServer(reg *generators.Registry, catalog *planner.Catalog, version string, log zerolog.Logger) *Server {
	if catalog == nil {
		catalog = planner.DefaultCatalog()
	}
	s := &Server{
		registry: reg,
		catalog:  catalog,
		log:      log,
		mcpServer: server.NewMCPServer("workout-planner", version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr: addr,
		Handler: cors.New(cors.Options{
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}).Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", addr).Msg("mcp server listening (sse)")
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down mcp server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	for _, name := range s.registry.List() {
		gen, _ := s.registry.Get(name)
		toolName, ok := toolNames[name]
		if !ok {
			toolName = name + "_workout_planner"
		}
		s.mcpServer.AddTool(newTool(toolName, gen), s.handleGenerate(gen))
	}
}

func newTool(name string, gen generators.Generator) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(gen.Description()),
		mcp.WithString("fitness_level", mcp.Required(),
			mcp.Description("The user's current fitness level"),
			mcp.Enum("beginner", "intermediate", "advanced"),
		),
		mcp.WithString("goal", mcp.Required(),
			mcp.Description("The user's fitness goal (e.g., weight loss, muscle gain, endurance)"),
		),
		mcp.WithNumber("days_per_week", mcp.Required(),
			mcp.Description("Number of days per week the user can work out"),
			mcp.Min(1), mcp.Max(7),
		),
		mcp.WithString("equipment", mcp.Required(),
			mcp.Description("Available equipment"),
			mcp.Enum("full gym", "basic dumbbells", "no equipment"),
		),
		mcp.WithBoolean("body_weight_only",
			mcp.Description("Whether to include only body weight exercises"),
			mcp.DefaultBool(false),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Desired duration of each workout session in minutes"),
		),
	}
	if gen.Name() == generators.NameLLM {
		opts = append(opts, mcp.WithString("additional_info",
			mcp.Description("Any additional information or preferences"),
		))
	}
	return mcp.NewTool(name, opts...)
}

// handleGenerate returns validation failures as tool errors carrying the user-facing
// message, and keeps provider details out of the tool result.
func (s *Server) handleGenerate(gen generators.Generator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := planner.DecodeRequest(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := gen.Generate(ctx, req)
		if ve, ok := planner.AsValidationError(err); ok {
			return mcp.NewToolResultError(ve.Message), nil
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if err != nil {
			s.log.Error().Err(err).Str("tool", request.Params.Name).Msg("tool call failed")
			return mcp.NewToolResultError("Unable to generate a workout plan right now. Please try again later."), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Exercise Catalog",
		mcp.WithResourceDescription("Exercises available per fitness level and equipment, plus body-weight lists"),
		mcp.WithMIMEType("application/json"),
	), s.handleCatalog)
}

func (s *Server) handleCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.catalog.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
