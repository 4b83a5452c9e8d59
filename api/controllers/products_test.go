package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productsvc "github.com/angelmondragon/costlab-backend/internal/products"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

type stubProductService struct {
	onlyActive *bool
	created    *productsvc.CreateProductInput
	updated    *productsvc.UpdateProductInput
	bomItems   []productsvc.BOMItemInput
	err        error
}

func (s *stubProductService) ListProducts(_ context.Context, onlyActive bool) ([]productsvc.ProductDTO, error) {
	s.onlyActive = &onlyActive
	return []productsvc.ProductDTO{}, s.err
}

func (s *stubProductService) CreateProduct(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: uuid.New(), SKU: input.SKU, Name: input.Name, Active: true}, nil
}

func (s *stubProductService) UpdateProduct(_ context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	s.updated = &input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: id, Name: "updated"}, nil
}

func (s *stubProductService) DeactivateProduct(_ context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: id, Active: false}, nil
}

func (s *stubProductService) ReplaceBOM(_ context.Context, id uuid.UUID, items []productsvc.BOMItemInput) (*productsvc.BOMReplaceResult, error) {
	s.bomItems = items
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.BOMReplaceResult{ProductID: id, Items: []productsvc.BOMLineDTO{}}, nil
}

func (s *stubProductService) GetProductFull(_ context.Context, id uuid.UUID) (*productsvc.ProductFullDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductFullDTO{Product: &productsvc.ProductDTO{ID: id}, BOM: []productsvc.FullBOMLineDTO{}}, nil
}

func TestListProductsActiveFilter(t *testing.T) {
	svc := &stubProductService{}
	handler := ListProducts(svc, testLogger())

	rec := serve(handler, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *svc.onlyActive)
	assert.JSONEq(t, `[]`, rec.Body.String())

	serve(handler, http.MethodGet, "/products?active=false", "", nil)
	assert.False(t, *svc.onlyActive)

	serve(handler, http.MethodGet, "/products?active=0", "", nil)
	assert.True(t, *svc.onlyActive, "only the literal false widens the listing")
}

func TestCreateProduct(t *testing.T) {
	svc := &stubProductService{}
	rec := serve(CreateProduct(svc, testLogger()), http.MethodPost, "/products",
		`{"sku":" SOAP-1 ","name":"  Soap ","photo_url":"https://cdn.example.com/soap.png","unknown":1}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Soap", svc.created.Name)
	assert.Equal(t, "SOAP-1", *svc.created.SKU)

	var body productsvc.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Soap", body.Name)
}

func TestCreateProductValidation(t *testing.T) {
	svc := &stubProductService{}
	rec := serve(CreateProduct(svc, testLogger()), http.MethodPost, "/products", `{"photo_url":"not a url"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Validation error", body.Error)
	assert.Equal(t, "is required", body.Details["name"])
	assert.Equal(t, "must be a valid URL", body.Details["photo_url"])
	assert.Nil(t, svc.created)
}

func TestCreateProductMissingBody(t *testing.T) {
	rec := serve(CreateProduct(&stubProductService{}, testLogger()), http.MethodPost, "/products", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is required", decodeError(t, rec).Details["body"])
}

func TestCreateProductConflict(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeConflict, "Product SKU already exists")}
	rec := serve(CreateProduct(svc, testLogger()), http.MethodPost, "/products", `{"name":"Soap","sku":"A"}`, nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Product SKU already exists", decodeError(t, rec).Error)
}

func TestUpdateProductInvalidID(t *testing.T) {
	svc := &stubProductService{}
	rec := serve(UpdateProduct(svc, testLogger()), http.MethodPatch, "/products/nope", `{"name":"x"}`, map[string]string{"id": "nope"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must be a valid UUID", decodeError(t, rec).Details["id"])
	assert.Nil(t, svc.updated)
}

func TestUpdateProductPassesOnlyProvidedFields(t *testing.T) {
	svc := &stubProductService{}
	id := uuid.New()
	rec := serve(UpdateProduct(svc, testLogger()), http.MethodPatch, "/products/"+id.String(), `{"active":false}`, map[string]string{"id": id.String()})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated)
	assert.Nil(t, svc.updated.Name)
	require.NotNil(t, svc.updated.Active)
	assert.False(t, *svc.updated.Active)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.NotFound("Product")}
	id := uuid.New().String()
	rec := serve(DeleteProduct(svc, testLogger()), http.MethodDelete, "/products/"+id, "", map[string]string{"id": id})

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Product not found", body.Error)
	assert.Equal(t, string(pkgerrors.CodeNotFound), body.Code)
}

func TestReplaceProductBOM(t *testing.T) {
	svc := &stubProductService{}
	id := uuid.New().String()
	inputID := uuid.New()
	payload := `{"items":[{"input_id":"` + inputID.String() + `","quantity_per_unit":"2.5","wastage_rate":0.1,"notes":"outer"}]}`
	rec := serve(ReplaceProductBOM(svc, testLogger()), http.MethodPost, "/products/"+id+"/bom", payload, map[string]string{"id": id})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.bomItems, 1)
	assert.Equal(t, inputID, svc.bomItems[0].InputID)
	assert.Equal(t, "2.5", svc.bomItems[0].QuantityPerUnit.String())
	assert.Equal(t, "0.1", svc.bomItems[0].WastageRate.String())
}

func TestReplaceProductBOMValidation(t *testing.T) {
	id := uuid.New().String()
	handler := ReplaceProductBOM(&stubProductService{}, testLogger())

	rec := serve(handler, http.MethodPost, "/products/"+id+"/bom", `{"items":[]}`, map[string]string{"id": id})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must contain at least 1 item(s)", decodeError(t, rec).Details["items"])

	rec = serve(handler, http.MethodPost, "/products/"+id+"/bom", `{"items":[{"input_id":"x"}]}`, map[string]string{"id": id})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Equal(t, "must be a valid UUID", details["items[0].input_id"])
	assert.Equal(t, "is required", details["items[0].quantity_per_unit"])
}

func TestGetProductFullInternalError(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.Wrap(pkgerrors.CodeInternal, assert.AnError, "load product")}
	id := uuid.New().String()
	rec := serve(GetProductFull(svc, testLogger()), http.MethodGet, "/products/"+id+"/full", "", map[string]string{"id": id})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Internal server error", body.Error)
	assert.Empty(t, body.Details)
}

func TestNilServiceIsInternalError(t *testing.T) {
	rec := serve(ListProducts(nil, testLogger()), http.MethodGet, "/products", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
