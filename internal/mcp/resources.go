// ABOUTME: MCP resource implementations for the measurement logs.
// ABOUTME: Provides minds://recent and minds://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/minds/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentLimit = 10

func (s *Server) registerResources() {
	// minds://recent - last rows of every log
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "minds://recent",
		Name:        "Recent Entries",
		Description: "Last 10 rows of each measurement log",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// minds://today - rows dated today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "minds://today",
		Name:        "Today's Entries",
		Description: "All measurement rows dated today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := make(map[string][]*models.Entry, len(models.AllCategories))
	for _, c := range models.AllCategories {
		entries, err := s.repo.List(ctx, c, recentLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", c, err)
		}
		result[string(c)] = entries
	}
	return jsonResource("minds://recent", result)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.now().Format(models.DateLayout)

	logs := make(map[string][]*models.Entry, len(models.AllCategories))
	counts := make(map[string]int, len(models.AllCategories))
	for _, c := range models.AllCategories {
		entries, err := s.repo.List(ctx, c, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", c, err)
		}
		todays := []*models.Entry{}
		for _, e := range entries {
			if e.Date == today {
				todays = append(todays, e)
			}
		}
		logs[string(c)] = todays
		counts[string(c)] = len(todays)
	}

	return jsonResource("minds://today", map[string]interface{}{
		"date":   today,
		"logs":   logs,
		"counts": counts,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
