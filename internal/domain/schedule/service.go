package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	parties CounterpartyChecker
}

func NewService(repo Repository, parties CounterpartyChecker) *Service {
	return &Service{repo: repo, parties: parties}
}

// Propose creates a schedule in the acting party's initial state. The entry
// state is fixed here and never re-derived.
func (s *Service) Propose(ctx context.Context, input ProposeInput) (*Schedule, error) {
	if input.Date.IsZero() {
		return nil, &ValidationError{Field: "date", Reason: "is required"}
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, &ValidationError{Field: "location", Reason: "is required"}
	}

	var memberID, trainerID string
	switch input.Party {
	case PartyMember:
		memberID, trainerID = input.ActorID, input.CounterpartyID
		exists, err := s.parties.TrainerExists(ctx, trainerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCounterpartyNotFound
		}
	case PartyTrainer:
		memberID, trainerID = input.CounterpartyID, input.ActorID
		exists, err := s.parties.MemberExists(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCounterpartyNotFound
		}
	default:
		return nil, &ValidationError{Field: "party", Reason: "must be MEMBER or TRAINER"}
	}

	sch := &Schedule{
		ID:        uuid.NewString(),
		Date:      input.Date.UTC(),
		Location:  strings.TrimSpace(input.Location),
		Status:    input.Party.ProposedStatus(),
		MemberID:  memberID,
		TrainerID: trainerID,
	}
	if target := strings.TrimSpace(input.TrainingTarget); target != "" {
		sch.TrainingTarget = &target
	}

	if err := s.repo.Create(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

// Accept confirms the counterparty's proposal. A party can never accept its
// own proposal: the only acceptable source state is the one proposed by the
// other side.
func (s *Service) Accept(ctx context.Context, party Party, actorID, scheduleID string) (*Schedule, error) {
	return s.transition(ctx, party, actorID, scheduleID, StatusScheduled)
}

// Reject declines the counterparty's proposal.
func (s *Service) Reject(ctx context.Context, party Party, actorID, scheduleID string) (*Schedule, error) {
	return s.transition(ctx, party, actorID, scheduleID, StatusRejected)
}

func (s *Service) transition(ctx context.Context, party Party, actorID, scheduleID string, to Status) (*Schedule, error) {
	sch, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if sch.ownerID(party) != actorID {
		return nil, ErrNotParticipant
	}

	from := party.CounterProposedStatus()
	if sch.Status != from {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, scheduleID, from, to)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrStaleStatus
	}

	sch.Status = to
	sch.UpdatedAt = time.Now().UTC()
	return sch, nil
}

// Cancel resolves a schedule the acting party no longer wants. A confirmed
// session keeps an audit row (CANCELED); the party's own pending proposal and
// rejected sessions are removed outright. The counterparty's live proposal
// cannot be canceled, only rejected.
func (s *Service) Cancel(ctx context.Context, party Party, actorID, scheduleID string) (*CancelOutcome, error) {
	sch, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if sch.ownerID(party) != actorID {
		return nil, ErrNotParticipant
	}

	switch sch.Status {
	case StatusScheduled:
		updated, err := s.repo.UpdateStatus(ctx, scheduleID, StatusScheduled, StatusCanceled)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, ErrStaleStatus
		}
		sch.Status = StatusCanceled
		sch.UpdatedAt = time.Now().UTC()
		return &CancelOutcome{Schedule: *sch}, nil

	case party.ProposedStatus(), StatusRejected:
		deleted, err := s.repo.DeleteInStatus(ctx, scheduleID, sch.Status)
		if err != nil {
			return nil, err
		}
		if !deleted {
			return nil, ErrStaleStatus
		}
		return &CancelOutcome{Schedule: *sch, Deleted: true}, nil

	default:
		return nil, ErrInvalidTransition
	}
}

// ListMonth returns the party's schedules for one calendar month, date
// ascending. The window is [first of month, first of next month).
func (s *Service) ListMonth(ctx context.Context, party Party, partyID string, month time.Time) ([]Schedule, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return s.repo.ListForPartyBetween(ctx, party, partyID, start, end)
}

// History returns a member's complete schedule list, date ascending.
func (s *Service) History(ctx context.Context, memberID string) ([]Schedule, error) {
	return s.repo.ListByMember(ctx, memberID)
}
