package roster

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureMember returns the member entity for userID, creating it on first
// access. Safe to call repeatedly; the unique constraint on user_id keeps a
// concurrent double-create down to a single row.
func (s *Service) EnsureMember(ctx context.Context, userID string) (*Member, error) {
	m, err := s.repo.GetMemberByUserID(ctx, userID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	if err := s.repo.CreateMember(ctx, &Member{ID: uuid.NewString(), UserID: userID}); err != nil {
		return nil, err
	}
	// re-read: the insert may have been a no-op if another request won
	return s.repo.GetMemberByUserID(ctx, userID)
}

// EnsureTrainer mirrors EnsureMember for the trainer role.
func (s *Service) EnsureTrainer(ctx context.Context, userID string) (*Trainer, error) {
	t, err := s.repo.GetTrainerByUserID(ctx, userID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrTrainerNotFound) {
		return nil, err
	}

	if err := s.repo.CreateTrainer(ctx, &Trainer{ID: uuid.NewString(), UserID: userID}); err != nil {
		return nil, err
	}
	return s.repo.GetTrainerByUserID(ctx, userID)
}

// AddMember puts memberID under trainerID's management. The pair is unique;
// a second add is a conflict.
func (s *Service) AddMember(ctx context.Context, trainerID, memberID string) (*TrainerMember, error) {
	if _, err := s.repo.GetMemberByID(ctx, memberID); err != nil {
		return nil, err
	}

	exists, err := s.repo.EdgeExists(ctx, trainerID, memberID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyManaged
	}

	edge := &TrainerMember{
		TrainerID:   trainerID,
		MemberID:    memberID,
		PTStartDate: time.Now().UTC(),
	}
	if err := s.repo.CreateEdge(ctx, edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// ListMembers pages through the trainer's roster. Page and limit fall back to
// 1/10 when unset.
func (s *Service) ListMembers(ctx context.Context, trainerID string, page, limit int) ([]ManagedMember, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return s.repo.ListManagedMembers(ctx, trainerID, limit, (page-1)*limit)
}

// GetManagedMember returns one member of the trainer's roster. A member that
// exists but is not under this trainer is a permission failure, not a lookup
// failure.
func (s *Service) GetManagedMember(ctx context.Context, trainerID, memberID string) (*ManagedMember, error) {
	if _, err := s.repo.GetMemberByID(ctx, memberID); err != nil {
		return nil, err
	}

	managed, err := s.repo.GetManagedMember(ctx, trainerID, memberID)
	if err != nil {
		return nil, err
	}
	return managed, nil
}

// RelatedTrainers lists the trainers holding a management edge to memberID.
func (s *Service) RelatedTrainers(ctx context.Context, memberID string) ([]RelatedTrainer, error) {
	return s.repo.ListRelatedTrainers(ctx, memberID)
}

// TrainerExists reports whether a trainer entity with the given id exists.
func (s *Service) TrainerExists(ctx context.Context, trainerID string) (bool, error) {
	_, err := s.repo.GetTrainerByID(ctx, trainerID)
	if errors.Is(err, ErrTrainerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemberExists reports whether a member entity with the given id exists.
func (s *Service) MemberExists(ctx context.Context, memberID string) (bool, error) {
	_, err := s.repo.GetMemberByID(ctx, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
