package roster

import (
	"context"
	"errors"

	domain "pt-scheduler-go/internal/domain/roster"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMember(ctx context.Context, m *domain.Member) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *PostgresRepository) GetMemberByUserID(ctx context.Context, userID string) (*domain.Member, error) {
	var m domain.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, id string) (*domain.Member, error) {
	var m domain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) CreateTrainer(ctx context.Context, t *domain.Trainer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(t).Error
}

func (r *PostgresRepository) GetTrainerByUserID(ctx context.Context, userID string) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTrainerNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) GetTrainerByID(ctx context.Context, id string) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTrainerNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) EdgeExists(ctx context.Context, trainerID, memberID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.TrainerMember{}).
		Where("trainer_id = ? AND member_id = ?", trainerID, memberID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) CreateEdge(ctx context.Context, edge *domain.TrainerMember) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyManaged
		}
		return err
	}
	return nil
}

const managedMemberColumns = `
	members.id as member_id,
	users.id as user_id,
	users.username,
	users.name,
	users.email,
	users.phone_number,
	trainer_members.pt_start_date`

func (r *PostgresRepository) ListManagedMembers(ctx context.Context, trainerID string, limit, offset int) ([]domain.ManagedMember, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.TrainerMember{}).
		Joins("join members on members.id = trainer_members.member_id").
		Joins("join users on users.id = members.user_id").
		Where("trainer_members.trainer_id = ?", trainerID)

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []domain.ManagedMember
	err := query.
		Select(managedMemberColumns).
		Order("trainer_members.pt_start_date asc, members.id asc").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *PostgresRepository) GetManagedMember(ctx context.Context, trainerID, memberID string) (*domain.ManagedMember, error) {
	var member domain.ManagedMember
	err := r.db.WithContext(ctx).
		Model(&domain.TrainerMember{}).
		Select(managedMemberColumns).
		Joins("join members on members.id = trainer_members.member_id").
		Joins("join users on users.id = members.user_id").
		Where("trainer_members.trainer_id = ? AND trainer_members.member_id = ?", trainerID, memberID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotManaged
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListRelatedTrainers(ctx context.Context, memberID string) ([]domain.RelatedTrainer, error) {
	var trainers []domain.RelatedTrainer
	err := r.db.WithContext(ctx).
		Model(&domain.TrainerMember{}).
		Select(`
			trainers.id as trainer_id,
			users.id as user_id,
			users.username,
			users.name,
			users.email,
			users.phone_number,
			trainer_members.pt_start_date`).
		Joins("join trainers on trainers.id = trainer_members.trainer_id").
		Joins("join users on users.id = trainers.user_id").
		Where("trainer_members.member_id = ?", memberID).
		Order("trainer_members.pt_start_date asc").
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}
