package schedule

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)

	// UpdateStatus transitions id from one status to another in a single
	// conditional statement. It reports false when the row was not in the
	// expected status anymore (or is gone), so callers can surface a
	// stale-state conflict instead of clobbering a concurrent transition.
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)

	// DeleteInStatus removes id only while it still has the given status.
	DeleteInStatus(ctx context.Context, id string, status Status) (bool, error)

	// ListForPartyBetween returns the party's schedules with date in
	// [from, to), ordered by date ascending.
	ListForPartyBetween(ctx context.Context, party Party, partyID string, from, to time.Time) ([]Schedule, error)

	// ListByMember returns the member's full history, date ascending.
	ListByMember(ctx context.Context, memberID string) ([]Schedule, error)
}

// CounterpartyChecker verifies that the opposite role entity exists before a
// proposal references it. Wired to the roster service.
type CounterpartyChecker interface {
	MemberExists(ctx context.Context, memberID string) (bool, error)
	TrainerExists(ctx context.Context, trainerID string) (bool, error)
}
