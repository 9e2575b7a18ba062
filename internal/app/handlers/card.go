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

type CardRequest struct {
	Name      string    `json:"name" validate:"required"`
	Number    string    `json:"number" validate:"required"`
	ExpiresOn time.Time `json:"expiresOn" validate:"required"`
}

type CardView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	ExpiresOn time.Time `json:"expiresOn"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}

func toCardView(card *models.Card) CardView {
	return CardView{
		ID:        card.ID,
		Name:      card.Name,
		Number:    card.Number,
		ExpiresOn: card.ExpiresOn,
		CreatedOn: card.CreatedOn,
		UpdatedOn: card.UpdatedOn,
	}
}

// CreateCardHandler handles POST /api/cards.
func CreateCardHandler(log *slog.Logger, cardService service.CardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCardHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req CardRequest
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

		card, err := cardService.Create(r.Context(), userID,
			service.CardCommand{Name: req.Name, Number: req.Number, ExpiresOn: req.ExpiresOn})
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusCreated, toCardView(card))
	}
}

// UpdateCardHandler handles PUT /api/cards/{id}.
func UpdateCardHandler(log *slog.Logger, cardService service.CardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCardHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req CardRequest
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

		card, err := cardService.Update(r.Context(), chi.URLParam(r, "id"), userID,
			service.CardCommand{Name: req.Name, Number: req.Number, ExpiresOn: req.ExpiresOn})
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toCardView(card))
	}
}

// DeleteCardHandler handles DELETE /api/cards/{id}.
func DeleteCardHandler(log *slog.Logger, cardService service.CardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCardHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := cardService.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			writeError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetCardHandler handles GET /api/cards/{id}.
func GetCardHandler(log *slog.Logger, cardService service.CardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCardHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		card, err := cardService.Find(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toCardView(card))
	}
}

// ListCardsHandler handles GET /api/cards.
func ListCardsHandler(log *slog.Logger, cardService service.CardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCardsHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cards, err := cardService.All(r.Context(), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		views := make([]CardView, 0, len(cards))
		for _, c := range cards {
			views = append(views, toCardView(c))
		}
		writeJSON(w, logger, http.StatusOK, views)
	}
}
