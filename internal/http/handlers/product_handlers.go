package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
)

// GetProductsHandler godoc
// @Summary List products
// @Description Lists the product catalog, optionally filtered by name, vendor or low stock
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param name query string false "Product name contains"
// @Param vendor query string false "Vendor id contains"
// @Param low_stock query bool false "Only products at or below their reorder level"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Failure 502 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		Name:   q.Get("name"),
		Vendor: q.Get("vendor"),
	}
	if lowStr := q.Get("low_stock"); lowStr != "" {
		low, err := strconv.ParseBool(lowStr)
		if err != nil {
			http.Error(w, "invalid low_stock value", http.StatusBadRequest)
			return
		}
		filter.LowStock = low
	}

	products, err := repo.FilterProducts(r.Context(), productRepo, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = newProductResponse(p)
	}
	_ = writeJSON(w, http.StatusOK, ProductsSearchResult{Data: response, Meta: Meta{TotalCount: len(response)}})
}

// CreateProductHandler godoc
// @Summary Add a product
// @Description Creates a product; the id is generated. Sales price must be greater than purchase price.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Product data"
// @Success 201 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateNewProduct(req); len(errs) > 0 {
		_ = writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}
	created, err := productRepo.CreateProduct(r.Context(), models.Product{
		ProductName:   strings.TrimSpace(req.ProductName),
		SKUID:         req.SKUID,
		VendorID:      req.VendorID,
		PurchasePrice: *req.PurchasePrice,
		SalesPrice:    *req.SalesPrice,
		Stock:         req.Stock,
		ReorderLevel:  req.ReorderLevel,
		Status:        status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	log.WithField("product_id", created.ProductID).Info("✅ product created")
	_ = writeJSON(w, http.StatusCreated, newProductResponse(created))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, newProductResponse(product))
}

// UpdateProductPricesHandler godoc
// @Summary Edit product prices
// @Description Sets purchase and sales price. Sales price must be greater than purchase price.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param prices body PricesRequest true "New prices"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /products/{id}/prices [put]
func UpdateProductPricesHandler(w http.ResponseWriter, r *http.Request) {
	var req PricesRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validatePrices(req); len(errs) > 0 {
		_ = writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
		return
	}

	product, err := productRepo.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	product.PurchasePrice = *req.PurchasePrice
	product.SalesPrice = *req.SalesPrice

	updated, err := productRepo.UpdateProduct(r.Context(), product)
	if err != nil {
		writeError(w, err)
		return
	}
	log.WithField("product_id", updated.ProductID).Info("product prices updated")
	_ = writeJSON(w, http.StatusOK, newProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := productRepo.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	log.WithField("product_id", id).Info("product deleted")
	w.WriteHeader(http.StatusNoContent)
}
