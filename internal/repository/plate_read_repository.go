package repository

import (
	"context"

	"gorm.io/gorm"

	"plate-service/internal/model"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type PlateReadRepository struct {
	db *gorm.DB
}

func NewPlateReadRepository(db *gorm.DB) *PlateReadRepository {
	return &PlateReadRepository{db: db}
}

func (r *PlateReadRepository) Create(ctx context.Context, read *model.PlateRead) error {
	return r.db.WithContext(ctx).Create(read).Error
}

type PlateReadListFilter struct {
	Status *model.OutcomeStatus
	Plate  *string
	Limit  int
}

// EffectiveLimit clamps Limit into [1, MaxListLimit], defaulting to
// DefaultListLimit.
func (f PlateReadListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

func (r *PlateReadRepository) List(ctx context.Context, filter PlateReadListFilter) ([]model.PlateRead, error) {
	var reads []model.PlateRead
	query := r.db.WithContext(ctx).Model(&model.PlateRead{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Plate != nil {
		query = query.Where("plate = ?", *filter.Plate)
	}

	if err := query.Order("detected_at DESC").Limit(filter.EffectiveLimit()).Find(&reads).Error; err != nil {
		return nil, err
	}

	return reads, nil
}
