// ABOUTME: MCP tool implementations for the measurement logs.
// ABOUTME: Commits, lists, deletes, and summarises WEFE, CSPR, and mental-mental rows.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/minds/internal/form"
	"github.com/harperreed/minds/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "commit_entry",
		Description: "Record one measurement (wefe, cspr, or mental_mental) with slider values 0-10",
	}, s.handleCommitEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List the most recent rows of one measurement log",
	}, s.handleListEntries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_entries",
		Description: "Delete rows of one measurement log by id; nothing is deleted if any id is missing",
	}, s.handleDeleteEntries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_summary",
		Description: "Get row counts and the latest row of every measurement log",
	}, s.handleGetSummary)
}

// Tool input/output types

type commitEntryInput struct {
	Category string         `json:"category" jsonschema:"Measurement log: wefe, cspr, or mental_mental (alias mm)"`
	Sliders  map[string]int `json:"sliders" jsonschema:"Slider values keyed by name, e.g. wellbeing, excite, focus, energy; missing sliders are 0"`
	Date     string         `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
	Time     string         `json:"time,omitempty" jsonschema:"Time as HH:MM:SS (24h), defaults to now"`
}

type entryOutput struct {
	Entry   *models.Entry `json:"entry"`
	Message string        `json:"message"`
}

type listEntriesInput struct {
	Category string `json:"category" jsonschema:"Measurement log: wefe, cspr, or mental_mental"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listEntriesOutput struct {
	Category string          `json:"category"`
	Columns  []string        `json:"columns"`
	Entries  []*models.Entry `json:"entries"`
	Message  string          `json:"message,omitempty"`
}

type deleteEntriesInput struct {
	Category string  `json:"category" jsonschema:"Measurement log: wefe, cspr, or mental_mental"`
	IDs      []int64 `json:"ids" jsonschema:"Row ids to delete"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type getSummaryInput struct{}

type categorySummary struct {
	Title  string        `json:"title"`
	Table  string        `json:"table"`
	Count  int           `json:"count"`
	Latest *models.Entry `json:"latest,omitempty"`
}

type summaryOutput struct {
	Logs map[string]categorySummary `json:"logs"`
}

// Tool handlers

func (s *Server) handleCommitEntry(ctx context.Context, req *mcp.CallToolRequest, input commitEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	c, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, entryOutput{}, err
	}

	f, err := form.New(c, s.repo, form.WithClock(s.now), form.WithLogger(s.log))
	if err != nil {
		return nil, entryOutput{}, err
	}
	if input.Date != "" {
		if err := f.SetDate(input.Date); err != nil {
			return nil, entryOutput{}, err
		}
	}
	if input.Time != "" {
		if err := f.SetTime(input.Time); err != nil {
			return nil, entryOutput{}, err
		}
	}

	names := make([]string, 0, len(input.Sliders))
	for name := range input.Sliders {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := input.Sliders[name]
		if v < models.SliderMin || v > models.SliderMax {
			return nil, entryOutput{}, fmt.Errorf("%s must be between %d and %d, got %d",
				name, models.SliderMin, models.SliderMax, v)
		}
		if _, err := f.SetSlider(name, v); err != nil {
			return nil, entryOutput{}, err
		}
	}

	e, err := f.Commit(ctx)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to commit entry: %w", err)
	}

	return nil, entryOutput{
		Entry:   e,
		Message: fmt.Sprintf("Recorded %s #%d at %s %s", c, e.ID, e.Date, e.Time),
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, listEntriesOutput, error) {
	c, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, listEntriesOutput{}, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	entries, err := s.repo.List(ctx, c, input.Limit)
	if err != nil {
		return nil, listEntriesOutput{}, fmt.Errorf("failed to list entries: %w", err)
	}

	out := listEntriesOutput{
		Category: string(c),
		Columns:  models.MustSpec(c).Columns(),
		Entries:  entries,
	}
	if len(entries) == 0 {
		out.Message = "No entries found."
	}
	return nil, out, nil
}

func (s *Server) handleDeleteEntries(ctx context.Context, req *mcp.CallToolRequest, input deleteEntriesInput) (*mcp.CallToolResult, simpleOutput, error) {
	c, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if len(input.IDs) == 0 {
		return nil, simpleOutput{}, fmt.Errorf("no ids given")
	}

	n, err := s.repo.Delete(ctx, c, input.IDs...)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete entries: %w", err)
	}

	ids := make([]string, 0, len(input.IDs))
	for _, id := range input.IDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %d %s row(s): %s", n, c, strings.Join(ids, ", ")),
	}, nil
}

func (s *Server) handleGetSummary(ctx context.Context, req *mcp.CallToolRequest, _ getSummaryInput) (*mcp.CallToolResult, summaryOutput, error) {
	out := summaryOutput{Logs: make(map[string]categorySummary, len(models.AllCategories))}
	for _, c := range models.AllCategories {
		spec := models.MustSpec(c)
		n, err := s.repo.Count(ctx, c)
		if err != nil {
			return nil, summaryOutput{}, fmt.Errorf("failed to count %s: %w", c, err)
		}
		cs := categorySummary{Title: spec.Title, Table: spec.Table, Count: n}

		latest, err := s.repo.List(ctx, c, 1)
		if err != nil {
			return nil, summaryOutput{}, fmt.Errorf("failed to list %s: %w", c, err)
		}
		if len(latest) > 0 {
			cs.Latest = latest[0]
		}
		out.Logs[string(c)] = cs
	}
	return nil, out, nil
}
