package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
)

// UserExcerptView hides email and credentials from user listings.
type UserExcerptView struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedOn time.Time `json:"createdOn"`
}

func toUserExcerptView(user *models.User) UserExcerptView {
	return UserExcerptView{
		ID:        user.ID,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedOn: user.CreatedOn,
	}
}

// ListUsersHandler handles GET /api/users.
func ListUsersHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := userService.All(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		views := make([]UserExcerptView, 0, len(users))
		for _, u := range users {
			views = append(views, toUserExcerptView(u))
		}
		writeJSON(w, logger, http.StatusOK, views)
	}
}

// GetUserHandler handles GET /api/users/{id}.
func GetUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUserHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		user, err := userService.Find(r.Context(), id)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, toUserExcerptView(user))
	}
}

// ForbiddenHandler rejects user administration over HTTP; accounts are
// managed out of band.
func ForbiddenHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ForbiddenHandler"
		logger := log.With(slog.String("op", op))

		logger.Warn("user administration attempted", slog.String("path", r.URL.Path))
		writeJSON(w, logger, http.StatusForbidden, errorResponse{Error: "user administration is not allowed"})
	}
}
