// ABOUTME: Export and import functionality for measurement logs.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/minds/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for all three logs.
type ExportData struct {
	Version      string          `json:"version" yaml:"version"`
	ID           uuid.UUID       `json:"id" yaml:"id"`
	ExportedAt   time.Time       `json:"exported_at" yaml:"exported_at"`
	Tool         string          `json:"tool" yaml:"tool"`
	WEFE         []*models.Entry `json:"wefe" yaml:"wefe"`
	CSPR         []*models.Entry `json:"cspr" yaml:"cspr"`
	MentalMental []*models.Entry `json:"mental_mental" yaml:"mental_mental"`
}

// Entries returns the exported rows of one category.
func (x *ExportData) Entries(c models.Category) []*models.Entry {
	switch c {
	case models.CategoryWEFE:
		return x.WEFE
	case models.CategoryCSPR:
		return x.CSPR
	case models.CategoryMentalMental:
		return x.MentalMental
	}
	return nil
}

func (x *ExportData) setEntries(c models.Category, entries []*models.Entry) {
	switch c {
	case models.CategoryWEFE:
		x.WEFE = entries
	case models.CategoryCSPR:
		x.CSPR = entries
	case models.CategoryMentalMental:
		x.MentalMental = entries
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ID:         uuid.New(),
		ExportedAt: time.Now(),
		Tool:       "minds",
	}
	for _, c := range models.AllCategories {
		entries, err := d.List(ctx, c, 0)
		if err != nil {
			return nil, err
		}
		data.setEntries(c, entries)
	}
	return data, nil
}

// ImportData appends every exported row as a new row. Source ids are not
// kept. Either all rows are imported or none are.
func (d *DB) ImportData(ctx context.Context, data *ExportData) (int, error) {
	for _, c := range models.AllCategories {
		for _, e := range data.Entries(c) {
			if e.Category == "" {
				e.Category = c
			}
			if e.Category != c {
				return 0, fmt.Errorf("%w: %s row in %s section", models.ErrInvalidEntry, e.Category, c)
			}
			if err := models.ValidateEntry(e); err != nil {
				return 0, fmt.Errorf("import %s row %d: %w", c, e.ID, err)
			}
		}
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	imported := 0
	for _, c := range models.AllCategories {
		spec := models.MustSpec(c)
		for _, e := range data.Entries(c) {
			if _, err := d.insertRow(ctx, tx, spec, e.Args()...); err != nil {
				return 0, fmt.Errorf("import %s: %w", c, err)
			}
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	d.log.Infow("import complete", "rows", imported, "export_id", data.ID)
	return imported, nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, b []byte) (int, error) {
	var data ExportData
	if err := json.Unmarshal(b, &data); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &data)
}

// ExportYAML exports all data as YAML with named slider fields.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                 `yaml:"version"`
		ID         string                 `yaml:"id"`
		ExportedAt string                 `yaml:"exported_at"`
		Tool       string                 `yaml:"tool"`
		Logs       map[string][]yamlEntry `yaml:"logs"`
	}{
		Version:    data.Version,
		ID:         data.ID.String(),
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Logs:       make(map[string][]yamlEntry),
	}

	for _, c := range models.AllCategories {
		spec := models.MustSpec(c)
		rows := make([]yamlEntry, 0, len(data.Entries(c)))
		for _, e := range data.Entries(c) {
			ye := yamlEntry{
				ID:      e.ID,
				Date:    e.Date,
				Time:    e.Time,
				Sliders: make(map[string]int, len(spec.Fields)),
				Summary: e.Summary,
			}
			for i, f := range spec.Fields {
				if i < len(e.Values) {
					ye.Sliders[f.ShortName()] = e.Values[i]
				}
			}
			rows = append(rows, ye)
		}
		yamlData.Logs[string(c)] = rows
	}

	return yaml.Marshal(yamlData)
}

type yamlEntry struct {
	ID      int64          `yaml:"id"`
	Date    string         `yaml:"date"`
	Time    string         `yaml:"time"`
	Sliders map[string]int `yaml:"sliders"`
	Summary *int           `yaml:"summary,omitempty"`
}

// ExportMarkdown exports data as Markdown tables. A nil category exports
// every log; a non-nil since drops rows recorded before it.
func (d *DB) ExportMarkdown(ctx context.Context, category *models.Category, since *time.Time) (string, error) {
	categories := models.AllCategories
	if category != nil {
		categories = []models.Category{*category}
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Minds Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, c := range categories {
		spec, err := models.SpecFor(c)
		if err != nil {
			return "", err
		}
		entries, err := d.List(ctx, c, 0)
		if err != nil {
			return "", err
		}
		if since != nil {
			entries = filterSince(entries, *since)
		}

		headers := []string{"Date", "Time"}
		for _, f := range spec.Fields {
			headers = append(headers, f.Label)
		}
		if spec.HasSummary() {
			headers = append(headers, "Sum")
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", spec.Title))
		sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
		sb.WriteString("|" + strings.Repeat("------|", len(headers)) + "\n")
		for _, e := range entries {
			cells := []string{e.Date, e.Time}
			for _, v := range e.Values {
				cells = append(cells, strconv.Itoa(v))
			}
			if e.Summary != nil {
				cells = append(cells, strconv.Itoa(*e.Summary))
			} else if spec.HasSummary() {
				cells = append(cells, "")
			}
			sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func filterSince(entries []*models.Entry, since time.Time) []*models.Entry {
	var filtered []*models.Entry
	for _, e := range entries {
		at, err := e.RecordedAt()
		if err != nil {
			continue
		}
		if !at.Before(since) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
