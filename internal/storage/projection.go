// ABOUTME: Table projection: a read model bound to one measurement table.
// ABOUTME: Backs the on-screen table view, including multi-row delete by selection.
package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/harperreed/minds/internal/models"
)

// Projection holds the rows of one table as last selected.
type Projection struct {
	repo Repository
	spec *models.Spec
	rows []*models.Entry
}

// NewProjection binds a projection to a category. Call Select to load rows.
func NewProjection(repo Repository, c models.Category) (*Projection, error) {
	spec, err := models.SpecFor(c)
	if err != nil {
		return nil, err
	}
	return &Projection{repo: repo, spec: spec}, nil
}

// Category returns the bound category.
func (p *Projection) Category() models.Category {
	return p.spec.Category
}

// Headers returns the column headers, id first.
func (p *Projection) Headers() []string {
	return append([]string{"id"}, p.spec.Columns()...)
}

// Select re-queries the full table.
func (p *Projection) Select(ctx context.Context) error {
	rows, err := p.repo.List(ctx, p.spec.Category, 0)
	if err != nil {
		return err
	}
	p.rows = rows
	return nil
}

// Rows returns the rows from the last Select.
func (p *Projection) Rows() []*models.Entry {
	return p.rows
}

// Len returns the number of rows from the last Select.
func (p *Projection) Len() int {
	return len(p.rows)
}

// DeleteRows removes the rows at the given view positions and re-selects.
func (p *Projection) DeleteRows(ctx context.Context, indexes ...int) (int64, error) {
	if len(indexes) == 0 {
		return 0, nil
	}
	sorted := append([]int(nil), indexes...)
	sort.Ints(sorted)

	ids := make([]int64, 0, len(sorted))
	for _, i := range sorted {
		if i < 0 || i >= len(p.rows) {
			return 0, fmt.Errorf("row %d out of range (0-%d)", i, len(p.rows)-1)
		}
		ids = append(ids, p.rows[i].ID)
	}

	n, err := p.repo.Delete(ctx, p.spec.Category, ids...)
	if err != nil {
		return 0, err
	}
	return n, p.Select(ctx)
}
