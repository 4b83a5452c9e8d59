package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/costing"
	"github.com/angelmondragon/costlab-backend/pkg/db"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

// Service exposes product catalog and BOM operations.
type Service interface {
	ListProducts(ctx context.Context, onlyActive bool) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeactivateProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ReplaceBOM(ctx context.Context, productID uuid.UUID, items []BOMItemInput) (*BOMReplaceResult, error)
	GetProductFull(ctx context.Context, productID uuid.UUID) (*ProductFullDTO, error)
}

type service struct {
	repo    Repository
	tx      db.Transactor
	costing costing.Service
}

// NewService constructs a product service instance.
func NewService(repo Repository, tx db.Transactor, costingSvc costing.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor required")
	}
	if costingSvc == nil {
		return nil, fmt.Errorf("costing service required")
	}
	return &service{repo: repo, tx: tx, costing: costingSvc}, nil
}

func (s *service) ListProducts(ctx context.Context, onlyActive bool) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Active:      true,
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, translateWriteError(err, "insert product")
	}
	return NewProductDTO(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	cols := input.Columns()
	if len(cols) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No fields to update")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, productID, cols); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Product")
		}
		return nil, translateWriteError(err, "update product")
	}
	return s.load(ctx, productID)
}

// DeactivateProduct soft-deletes the product; repeated calls succeed.
func (s *service) DeactivateProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	if err := s.repo.Deactivate(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate product")
	}
	return s.load(ctx, productID)
}

// ReplaceBOM swaps the product's whole BOM atomically.
func (s *service) ReplaceBOM(ctx context.Context, productID uuid.UUID, items []BOMItemInput) (*BOMReplaceResult, error) {
	if err := validateBOMItems(items); err != nil {
		return nil, err
	}

	result := &BOMReplaceResult{ProductID: productID, Items: make([]BOMLineDTO, 0, len(items))}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.FindByID(ctx, productID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("Product")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		if err := ensureInputsExist(ctx, txRepo, items); err != nil {
			return err
		}

		if err := txRepo.DeleteBOM(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete bom lines")
		}

		for _, item := range items {
			line := &models.BOMLine{
				ProductID:       productID,
				InputID:         item.InputID,
				QuantityPerUnit: item.QuantityPerUnit,
				WastageRate:     decimal.Zero,
				Notes:           item.Notes,
			}
			if item.WastageRate != nil {
				line.WastageRate = *item.WastageRate
			}
			if err := txRepo.CreateBOMLine(ctx, line); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert bom line")
			}
			result.Items = append(result.Items, newBOMLineDTO(*line))
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace bom")
	}
	return result, nil
}

func ensureInputsExist(ctx context.Context, repo Repository, items []BOMItemInput) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.InputID)
	}
	existing, err := repo.ExistingInputIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inputs")
	}
	fields := pkgerrors.FieldErrors{}
	for i, item := range items {
		if _, ok := existing[item.InputID]; !ok {
			fields.Add(fmt.Sprintf("items[%d].input_id", i), "Input not found")
		}
	}
	return fields.Err()
}

func (s *service) GetProductFull(ctx context.Context, productID uuid.UUID) (*ProductFullDTO, error) {
	product, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	rows, err := s.costing.MaterialLines(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &ProductFullDTO{Product: product, BOM: make([]FullBOMLineDTO, 0, len(rows))}
	for _, row := range rows {
		out.BOM = append(out.BOM, newFullBOMLineDTO(row))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return NewProductDTO(product), nil
}

func translateWriteError(err error, op string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Product SKU already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
