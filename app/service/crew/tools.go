package crew

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blogsmith/app/config"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tmc/langchaingo/tools"
)

// mcpToolAdapter exposes an MCP tool through the langchaingo tools interface
// so the research agent can call it like any other tool.
type mcpToolAdapter struct {
	client client.MCPClient
	tool   mcp.Tool
	name   string
}

func (m *mcpToolAdapter) Name() string {
	return m.name
}

func (m *mcpToolAdapter) Description() string {
	return m.tool.Description
}

func (m *mcpToolAdapter) Call(ctx context.Context, input string) (string, error) {
	callRequest := mcp.CallToolRequest{
		Request: mcp.Request{
			Method: "tools/call",
		},
	}

	callRequest.Params.Name = m.tool.Name

	var args map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(input), "{") {
		if err := json.Unmarshal([]byte(input), &args); err == nil {
			callRequest.Params.Arguments = args
		} else {
			callRequest.Params.Arguments = map[string]interface{}{
				"query": input,
			}
		}
	} else if len(m.tool.InputSchema.Properties) > 0 {
		// Feed the raw topic into the first schema property.
		for propName := range m.tool.InputSchema.Properties {
			callRequest.Params.Arguments = map[string]interface{}{
				propName: input,
			}
			break
		}
	} else {
		callRequest.Params.Arguments = map[string]interface{}{
			"query": input,
		}
	}

	response, err := m.client.CallTool(ctx, callRequest)
	if err != nil {
		return "", fmt.Errorf("MCP tool call failed: %w", err)
	}

	var result strings.Builder
	for _, content := range response.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			result.WriteString(textContent.Text)
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String()), nil
}

// initSearchTools starts the configured stdio MCP server and wraps its tools.
// Returns nil when no server is configured.
func initSearchTools(cfg config.MCPServer) ([]tools.Tool, client.MCPClient, error) {
	if cfg.Command == "" {
		return nil, nil, nil
	}

	mcpClient, err := client.NewStdioMCPClient(cfg.Command, nil, cfg.Args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "blogsmith-researcher",
		Version: "1.0.0",
	}

	if _, err = mcpClient.Initialize(ctx, initRequest); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize MCP client: %w", err)
	}

	toolsResponse, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list MCP tools: %w", err)
	}

	searchTools := make([]tools.Tool, 0, len(toolsResponse.Tools))
	for _, mcpTool := range toolsResponse.Tools {
		searchTools = append(searchTools, &mcpToolAdapter{
			client: mcpClient,
			tool:   mcpTool,
			name:   fmt.Sprintf("search_%s", mcpTool.Name),
		})
	}

	return searchTools, mcpClient, nil
}
