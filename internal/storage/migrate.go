// ABOUTME: Data migration between minds databases.
// ABOUTME: Copies every row of the three logs from a source store to a destination.

package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/minds/internal/models"
)

// MigrateSummary holds counts of migrated rows per log.
type MigrateSummary struct {
	WEFE         int
	CSPR         int
	MentalMental int
}

// Total returns the number of rows copied.
func (s *MigrateSummary) Total() int {
	return s.WEFE + s.CSPR + s.MentalMental
}

func (s *MigrateSummary) add(c models.Category) {
	switch c {
	case models.CategoryWEFE:
		s.WEFE++
	case models.CategoryCSPR:
		s.CSPR++
	case models.CategoryMentalMental:
		s.MentalMental++
	}
}

// MigrateData copies all rows from src to dst storage in id order.
// Rows get new ids in the destination.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, c := range models.AllCategories {
		entries, err := src.List(ctx, c, 0)
		if err != nil {
			return nil, fmt.Errorf("list source %s: %w", c, err)
		}
		for _, e := range entries {
			srcID := e.ID
			copied := *e
			copied.ID = 0
			if _, err := dst.Insert(ctx, &copied); err != nil {
				return nil, fmt.Errorf("copy %s #%d: %w", c, srcID, err)
			}
			summary.add(c)
		}
	}

	return summary, nil
}
