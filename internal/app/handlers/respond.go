package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/storage"
)

var validate = validator.New()

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeError maps service and storage failures onto HTTP statuses: missing
// rows are 404, domain validation failures are 400, bad credentials are 401,
// an unconfigured file store is 503, everything else is 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrVendorNotFound),
		errors.Is(err, storage.ErrCategoryNotFound),
		errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrAddressNotFound),
		errors.Is(err, storage.ErrCardNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrUploadNotFound):
		status = http.StatusNotFound
		msg = "not found"
	case errors.Is(err, storage.ErrEmailTaken),
		errors.Is(err, storage.ErrCodeTaken),
		errors.Is(err, storage.ErrSKUTaken),
		errors.Is(err, service.ErrInsufficientInventory),
		errors.Is(err, service.ErrProductInactive),
		errors.Is(err, service.ErrOrderNotEditable),
		errors.Is(err, service.ErrWrongOldPassword),
		errors.Is(err, service.ErrUploadTooBig),
		errors.Is(err, service.ErrUploadTypeNotAllowed),
		errors.Is(err, service.ErrUploadCapacity):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		msg = service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUploadsDisabled):
		status = http.StatusServiceUnavailable
		msg = service.ErrUploadsDisabled.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
	} else {
		logger.Warn("request rejected", slog.Any("error", err))
	}
	writeJSON(w, logger, status, errorResponse{Error: msg})
}
