package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/token/tokenmiddleware"
)

type ProductRequest struct {
	SKU          string  `json:"sku" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0"`
	Inventory    int64   `json:"inventory" validate:"gte=0"`
	DeliveryTime string  `json:"deliveryTime"`
	IsActive     bool    `json:"isActive"`
	VendorID     string  `json:"vendorId"`
	CategoryID   string  `json:"categoryId"`
}

func (req ProductRequest) toCommand() service.ProductCommand {
	return service.ProductCommand{
		SKU:          req.SKU,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Inventory:    req.Inventory,
		DeliveryTime: req.DeliveryTime,
		IsActive:     req.IsActive,
		VendorID:     req.VendorID,
		CategoryID:   req.CategoryID,
	}
}

// CreateProductHandler handles POST /api/products.
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product, err := productService.Create(r.Context(), userID, req.toCommand())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, product)
	}
}

// UpdateProductHandler handles PUT /api/products/{id}.
func UpdateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product, err := productService.Update(r.Context(), chi.URLParam(r, "id"), userID, req.toCommand())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, product)
	}
}

// DeleteProductHandler handles DELETE /api/products/{id}.
func DeleteProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := productService.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			writeError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetProductHandler handles GET /api/products/{id}.
func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		product, err := productService.Find(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, product)
	}
}

// ListProductsHandler handles GET /api/products with the onlyMine query flag.
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		userID, _ := tokenmiddleware.FromContext(r.Context())
		onlyMine := r.URL.Query().Get("onlyMine") == "true"

		products, err := productService.All(r.Context(), userID, onlyMine)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, products)
	}
}
