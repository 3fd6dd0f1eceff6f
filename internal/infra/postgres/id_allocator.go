package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// IDAllocator draws visitor IDs from the visitor_ids sequence, which survives
// restarts and is shared by every instance using the same database.
type IDAllocator struct {
	pool *pgxpool.Pool
}

func NewIDAllocator(pool *pgxpool.Pool) *IDAllocator {
	return &IDAllocator{pool: pool}
}

func (a *IDAllocator) Next(ctx context.Context) (int64, error) {
	var id int64
	if err := a.pool.QueryRow(ctx, `SELECT nextval('visitor_ids')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("next visitor id: %w", err)
	}
	return id, nil
}
