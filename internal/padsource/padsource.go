package padsource

import (
	"context"

	"github.com/crcresearch/padcheck/internal/pad"
)

// DataSource is the read surface of the PAD analytics data. Implementations
// return raw rows; normalization into display cards happens in the service.
type DataSource interface {
	// ListProjects returns every known project row.
	ListProjects(ctx context.Context) ([]pad.Record, error)
	// ProjectCards returns all card rows for a project, identified by name
	// or by numeric id rendered as a string.
	ProjectCards(ctx context.Context, project string) ([]pad.Record, error)
	// CardByID returns a single card row, or nil when no such card exists.
	CardByID(ctx context.Context, id int) (pad.Record, error)
}
