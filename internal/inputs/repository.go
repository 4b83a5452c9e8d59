package inputs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
)

// Repository defines persistence for inputs and their cost history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, input *models.Input) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Input, error)
	List(ctx context.Context, onlyActive bool) ([]models.Input, error)
	Update(ctx context.Context, id uuid.UUID, cols []repo.Column) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CreateCost(ctx context.Context, cost *models.InputCost) error
	ListCosts(ctx context.Context, inputID uuid.UUID) ([]models.InputCost, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, input *models.Input) error {
	return r.DB(ctx).Create(input).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Input, error) {
	var input models.Input
	if err := r.DB(ctx).Where("id = ?", id).First(&input).Error; err != nil {
		return nil, err
	}
	return &input, nil
}

func (r *repository) List(ctx context.Context, onlyActive bool) ([]models.Input, error) {
	query := r.DB(ctx).Model(&models.Input{})
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	var rows []models.Input
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, cols []repo.Column) error {
	res := r.DB(ctx).Model(&models.Input{}).Where("id = ?", id).Updates(repo.Assignments(cols))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.Update(ctx, id, []repo.Column{{Name: "active", Value: false}})
}

func (r *repository) CreateCost(ctx context.Context, cost *models.InputCost) error {
	return r.DB(ctx).Omit("Input").Create(cost).Error
}

// ListCosts returns the history newest first, in current-cost resolution order.
func (r *repository) ListCosts(ctx context.Context, inputID uuid.UUID) ([]models.InputCost, error) {
	var rows []models.InputCost
	if err := r.DB(ctx).
		Where("input_id = ?", inputID).
		Order("valid_from DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
