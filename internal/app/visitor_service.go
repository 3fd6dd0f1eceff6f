package app

import (
	"context"
	"fmt"
	"time"

	"visitor-trivia-service/internal/domain"
)

// IDAllocator hands out visitor identifiers. Next must be safe for concurrent use
// and return 1 on its first call against a fresh store.
type IDAllocator interface {
	Next(ctx context.Context) (int64, error)
}

// VisitorService assigns identities to callers and computes time since their last visit.
type VisitorService struct {
	ids IDAllocator
	now func() time.Time
}

func NewVisitorService(ids IDAllocator) *VisitorService {
	return NewVisitorServiceWithClock(ids, time.Now)
}

// NewVisitorServiceWithClock allows deterministic timestamps in tests.
func NewVisitorServiceWithClock(ids IDAllocator, now func() time.Time) *VisitorService {
	return &VisitorService{ids: ids, now: now}
}

// Track resolves the visitor behind a request from its parsed cookies.
// Returning visitors keep their identifier; everyone else gets a fresh one.
func (s *VisitorService) Track(ctx context.Context, cookies domain.VisitCookies) (domain.Visit, error) {
	now := s.now()

	if cookies.Returning() {
		return domain.Visit{
			VisitorID:             cookies.VisitorID,
			Visited:               true,
			SecondsSinceLastVisit: domain.ElapsedSeconds(now.UnixMilli(), cookies.LastVisitMillis),
			At:                    now,
		}, nil
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("allocate visitor id: %w", err)
	}
	return domain.Visit{VisitorID: id, At: now}, nil
}
