package roster

import "context"

type Repository interface {
	// CreateMember/CreateTrainer must be no-ops when a row for the same
	// user id already exists, so Ensure* stays safe under concurrency.
	CreateMember(ctx context.Context, m *Member) error
	GetMemberByUserID(ctx context.Context, userID string) (*Member, error)
	GetMemberByID(ctx context.Context, id string) (*Member, error)

	CreateTrainer(ctx context.Context, t *Trainer) error
	GetTrainerByUserID(ctx context.Context, userID string) (*Trainer, error)
	GetTrainerByID(ctx context.Context, id string) (*Trainer, error)

	EdgeExists(ctx context.Context, trainerID, memberID string) (bool, error)
	CreateEdge(ctx context.Context, edge *TrainerMember) error
	ListManagedMembers(ctx context.Context, trainerID string, limit, offset int) ([]ManagedMember, int64, error)
	GetManagedMember(ctx context.Context, trainerID, memberID string) (*ManagedMember, error)
	ListRelatedTrainers(ctx context.Context, memberID string) ([]RelatedTrainer, error)
}
