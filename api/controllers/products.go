package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/api/validators"
	productsvc "github.com/angelmondragon/costlab-backend/internal/products"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

const productIDParam = "id"

// ListProducts returns products, active only unless ?active=false.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		list, err := svc.ListProducts(r.Context(), validators.OnlyActive(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct soft-deletes; repeating it on an inactive product succeeds.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.DeactivateProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ReplaceProductBOM swaps the product's whole bill of materials in one transaction.
func ReplaceProductBOM(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceBOMRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ReplaceBOM(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetProductFull(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		full, err := svc.GetProductFull(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, full)
	}
}

type createProductRequest struct {
	SKU         *string `json:"sku" validate:"omitempty,min=1"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
	Active      *bool   `json:"active"`
}

func (r createProductRequest) toInput() productsvc.CreateProductInput {
	return productsvc.CreateProductInput{
		SKU:         validators.SanitizeOptional(r.SKU, 0),
		Name:        validators.SanitizeString(r.Name, 0),
		Description: r.Description,
		PhotoURL:    validators.SanitizeOptional(r.PhotoURL, 0),
		Active:      r.Active,
	}
}

type updateProductRequest struct {
	SKU         *string `json:"sku" validate:"omitempty,min=1"`
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
	Active      *bool   `json:"active"`
}

func (r updateProductRequest) toInput() productsvc.UpdateProductInput {
	return productsvc.UpdateProductInput{
		SKU:         validators.SanitizeOptional(r.SKU, 0),
		Name:        validators.SanitizeOptional(r.Name, 0),
		Description: r.Description,
		PhotoURL:    validators.SanitizeOptional(r.PhotoURL, 0),
		Active:      r.Active,
	}
}

type replaceBOMRequest struct {
	Items []bomItemRequest `json:"items" validate:"required,min=1,dive"`
}

type bomItemRequest struct {
	InputID         string           `json:"input_id" validate:"required,uuid"`
	QuantityPerUnit *decimal.Decimal `json:"quantity_per_unit" validate:"required"`
	WastageRate     *decimal.Decimal `json:"wastage_rate"`
	Notes           *string          `json:"notes"`
}

func (r replaceBOMRequest) toInput() []productsvc.BOMItemInput {
	items := make([]productsvc.BOMItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, productsvc.BOMItemInput{
			InputID:         uuid.MustParse(item.InputID),
			QuantityPerUnit: *item.QuantityPerUnit,
			WastageRate:     item.WastageRate,
			Notes:           item.Notes,
		})
	}
	return items
}
