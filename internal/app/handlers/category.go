package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code"`
}

type CategoryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}

func toCategoryView(category *models.ProductCategory) CategoryView {
	return CategoryView{
		ID:        category.ID,
		Name:      category.Name,
		Code:      category.Code,
		CreatedOn: category.CreatedOn,
		UpdatedOn: category.UpdatedOn,
	}
}

// CreateCategoryHandler handles POST /api/product-categories.
func CreateCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req CategoryRequest
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

		category, err := categoryService.Create(r.Context(), service.CategoryCommand{Name: req.Name, Code: req.Code})
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, toCategoryView(category))
	}
}

// UpdateCategoryHandler handles PUT /api/product-categories/{id}.
func UpdateCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req CategoryRequest
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

		category, err := categoryService.Update(r.Context(), chi.URLParam(r, "id"),
			service.CategoryCommand{Name: req.Name, Code: req.Code})
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, toCategoryView(category))
	}
}

// DeleteCategoryHandler handles DELETE /api/product-categories/{id}.
func DeleteCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		if err := categoryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetCategoryHandler handles GET /api/product-categories/{id}.
func GetCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCategoryHandler"
		logger := log.With(slog.String("op", op))

		category, err := categoryService.Find(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toCategoryView(category))
	}
}

// ListCategoriesHandler handles GET /api/product-categories.
func ListCategoriesHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := categoryService.All(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		views := make([]CategoryView, 0, len(categories))
		for _, c := range categories {
			views = append(views, toCategoryView(c))
		}
		writeJSON(w, logger, http.StatusOK, views)
	}
}
