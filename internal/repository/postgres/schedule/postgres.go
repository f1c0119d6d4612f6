package schedule

import (
	"context"
	"errors"
	"time"

	domain "pt-scheduler-go/internal/domain/schedule"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *domain.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateStatus is a single conditional UPDATE. RowsAffected == 0 means a
// concurrent transition got there first (or the row is gone); the caller
// decides how to surface that.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Schedule{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteInStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&domain.Schedule{}, "id = ? AND status = ?", id, status)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListForPartyBetween(ctx context.Context, party domain.Party, partyID string, from, to time.Time) ([]domain.Schedule, error) {
	column := "member_id"
	if party == domain.PartyTrainer {
		column = "trainer_id"
	}

	var schedules []domain.Schedule
	err := r.db.WithContext(ctx).
		Where(column+" = ? AND date >= ? AND date < ?", partyID, from, to).
		Order("date asc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *PostgresRepository) ListByMember(ctx context.Context, memberID string) ([]domain.Schedule, error) {
	var schedules []domain.Schedule
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("date asc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
