package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/mapper"
	"hand-analysis-be/internal/model"
	"hand-analysis-be/internal/repository/contract"
	"hand-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HandHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HandHistoryMapper
}

func NewHandHistoryRepository(db *gorm.DB) contract.HandHistoryRepository {
	return &HandHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewHandHistoryMapper(),
	}
}

func (r *HandHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HandHistoryRepositoryImpl) Create(ctx context.Context, history *entity.HandHistory) error {
	m := r.mapper.ToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.ToEntity(m)
	return nil
}

func (r *HandHistoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HandHistory, error) {
	var m model.HandHistory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *HandHistoryRepositoryImpl) FindAllSummaries(ctx context.Context, userId uuid.UUID) ([]*entity.HandHistory, error) {
	var models []*model.HandHistory
	err := r.db.WithContext(ctx).
		Select("id", "hand_id", "title", "evaluation", "markdown", "created_at").
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.HandHistory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *HandHistoryRepositoryImpl) UpdateTitle(ctx context.Context, id uuid.UUID, title string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.HandHistory{}).
		Where("id = ?", id).
		Update("title", title)
	return res.RowsAffected, res.Error
}

func (r *HandHistoryRepositoryImpl) UpdateConversation(ctx context.Context, id uuid.UUID, conversation json.RawMessage) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.HandHistory{}).
		Where("id = ?", id).
		Update("conversation", datatypes.JSON(conversation))
	return res.RowsAffected, res.Error
}

func (r *HandHistoryRepositoryImpl) DeleteAllByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.HandHistory{})
	return res.RowsAffected, res.Error
}
