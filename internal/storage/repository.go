// ABOUTME: Repository interface for measurement storage.
// ABOUTME: Defines the contract used by forms, the MCP server, and the terminal UI.
package storage

import (
	"context"

	"github.com/harperreed/minds/internal/models"
)

// Repository defines the storage interface for measurement logs.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Entry operations
	Insert(ctx context.Context, e *models.Entry) (int64, error)
	List(ctx context.Context, c models.Category, limit int) ([]*models.Entry, error)
	Get(ctx context.Context, c models.Category, id int64) (*models.Entry, error)
	Delete(ctx context.Context, c models.Category, ids ...int64) (int64, error)
	Count(ctx context.Context, c models.Category) (int, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) (int, error)

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
