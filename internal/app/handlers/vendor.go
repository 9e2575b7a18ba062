package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/token/tokenmiddleware"
)

type VendorRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code"`
}

type VendorView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedBy *string   `json:"createdBy,omitempty"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}

func toVendorView(vendor *models.Vendor) VendorView {
	return VendorView{
		ID:        vendor.ID,
		Name:      vendor.Name,
		Code:      vendor.Code,
		CreatedBy: vendor.CreatedBy,
		CreatedOn: vendor.CreatedOn,
		UpdatedOn: vendor.UpdatedOn,
	}
}

// CreateVendorHandler handles POST /api/vendors.
func CreateVendorHandler(log *slog.Logger, vendorService service.VendorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateVendorHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req VendorRequest
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

		vendor, err := vendorService.Create(r.Context(), userID, service.VendorCommand{Name: req.Name, Code: req.Code})
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, toVendorView(vendor))
	}
}

// UpdateVendorHandler handles PUT /api/vendors/{id}.
func UpdateVendorHandler(log *slog.Logger, vendorService service.VendorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateVendorHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req VendorRequest
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

		vendor, err := vendorService.Update(r.Context(), chi.URLParam(r, "id"), userID,
			service.VendorCommand{Name: req.Name, Code: req.Code})
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, toVendorView(vendor))
	}
}

// DeleteVendorHandler handles DELETE /api/vendors/{id}.
func DeleteVendorHandler(log *slog.Logger, vendorService service.VendorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteVendorHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := vendorService.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			writeError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetVendorHandler handles GET /api/vendors/{id}.
func GetVendorHandler(log *slog.Logger, vendorService service.VendorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetVendorHandler"
		logger := log.With(slog.String("op", op))

		vendor, err := vendorService.Find(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toVendorView(vendor))
	}
}

// ListVendorsHandler handles GET /api/vendors. The onlyMine query flag
// narrows the listing to vendors created by the caller.
func ListVendorsHandler(log *slog.Logger, vendorService service.VendorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListVendorsHandler"
		logger := log.With(slog.String("op", op))

		userID, _ := tokenmiddleware.FromContext(r.Context())
		onlyMine := r.URL.Query().Get("onlyMine") == "true"

		vendors, err := vendorService.All(r.Context(), userID, onlyMine)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		views := make([]VendorView, 0, len(vendors))
		for _, v := range vendors {
			views = append(views, toVendorView(v))
		}
		writeJSON(w, logger, http.StatusOK, views)
	}
}
