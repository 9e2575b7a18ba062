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

type AddressRequest struct {
	Type      string `json:"type" validate:"required,oneof=shipping billing"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Line1     string `json:"line1" validate:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

type AddressView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	Zipcode   string    `json:"zipcode"`
	Country   string    `json:"country"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}

func toAddressView(address *models.Address) AddressView {
	return AddressView{
		ID:        address.ID,
		Type:      address.Type,
		FirstName: address.FirstName,
		LastName:  address.LastName,
		Line1:     address.Line1,
		Line2:     address.Line2,
		City:      address.City,
		State:     address.State,
		Zipcode:   address.Zipcode,
		Country:   address.Country,
		CreatedOn: address.CreatedOn,
		UpdatedOn: address.UpdatedOn,
	}
}

func (req AddressRequest) toCommand() service.AddressCommand {
	return service.AddressCommand{
		Type:      req.Type,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		State:     req.State,
		Zipcode:   req.Zipcode,
		Country:   req.Country,
	}
}

// CreateAddressHandler handles POST /api/addresses.
func CreateAddressHandler(log *slog.Logger, addressService service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req AddressRequest
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

		address, err := addressService.Create(r.Context(), userID, req.toCommand())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusCreated, toAddressView(address))
	}
}

// UpdateAddressHandler handles PUT /api/addresses/{id}.
func UpdateAddressHandler(log *slog.Logger, addressService service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req AddressRequest
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

		address, err := addressService.Update(r.Context(), chi.URLParam(r, "id"), userID, req.toCommand())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toAddressView(address))
	}
}

// DeleteAddressHandler handles DELETE /api/addresses/{id}.
func DeleteAddressHandler(log *slog.Logger, addressService service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := addressService.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			writeError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetAddressHandler handles GET /api/addresses/{id}.
func GetAddressHandler(log *slog.Logger, addressService service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		address, err := addressService.Find(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toAddressView(address))
	}
}

// ListAddressesHandler handles GET /api/addresses.
func ListAddressesHandler(log *slog.Logger, addressService service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListAddressesHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		addresses, err := addressService.All(r.Context(), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		views := make([]AddressView, 0, len(addresses))
		for _, a := range addresses {
			views = append(views, toAddressView(a))
		}
		writeJSON(w, logger, http.StatusOK, views)
	}
}
