package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
)

// Repository defines persistence for products and their BOM lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, onlyActive bool) ([]models.Product, error)
	Update(ctx context.Context, id uuid.UUID, cols []repo.Column) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeleteBOM(ctx context.Context, productID uuid.UUID) error
	CreateBOMLine(ctx context.Context, line *models.BOMLine) error
	ExistingInputIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, onlyActive bool) ([]models.Product, error) {
	query := r.DB(ctx).Model(&models.Product{})
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update applies cols to the product; gorm.ErrRecordNotFound when no row matched.
func (r *repository) Update(ctx context.Context, id uuid.UUID, cols []repo.Column) error {
	res := r.DB(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(repo.Assignments(cols))
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

func (r *repository) DeleteBOM(ctx context.Context, productID uuid.UUID) error {
	return r.DB(ctx).Where("product_id = ?", productID).Delete(&models.BOMLine{}).Error
}

func (r *repository) CreateBOMLine(ctx context.Context, line *models.BOMLine) error {
	return r.DB(ctx).Omit("Product", "Input").Create(line).Error
}

func (r *repository) ExistingInputIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := r.DB(ctx).Model(&models.Input{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}
