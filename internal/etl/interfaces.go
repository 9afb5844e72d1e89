package etl

import (
	"context"

	"github.com/BartekS5/gdpetl/pkg/models"
)

// Fetcher retrieves the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Loader persists a transformed table to one destination.
type Loader interface {
	Load(ctx context.Context, table *models.Table) error
}
