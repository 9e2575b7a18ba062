package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/token/tokenmiddleware"
)

// multipart parse buffer; larger files spill to disk
const maxUploadMemory = 16 << 20

type UploadView struct {
	ID        string    `json:"id"`
	RelatedTo string    `json:"relatedTo"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	Location  string    `json:"location"`
	ProductID *string   `json:"productId,omitempty"`
	CreatedOn time.Time `json:"createdOn"`
}

func toUploadView(upload *models.Upload) UploadView {
	return UploadView{
		ID:        upload.ID,
		RelatedTo: upload.RelatedTo,
		Name:      upload.Name,
		Type:      upload.Type,
		Size:      upload.Size,
		Location:  upload.S3Location,
		ProductID: upload.ProductID,
		CreatedOn: upload.CreatedOn,
	}
}

// CreateUploadHandler handles POST /api/uploads. The request is multipart:
// a "file" part plus "relatedTo" and optional "productId" fields.
func CreateUploadHandler(log *slog.Logger, uploadService service.UploadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateUploadHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := tokenmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			logger.Error("invalid request: multipart parse error", slog.Any("error", err))
			http.Error(w, "invalid multipart request", http.StatusBadRequest)
			return
		}

		relatedTo := r.FormValue("relatedTo")
		if relatedTo != models.UploadRelatedToProduct && relatedTo != models.UploadRelatedToUser {
			http.Error(w, "relatedTo must be product or user", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.Error("invalid request: missing file part", slog.Any("error", err))
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		body, err := io.ReadAll(file)
		if err != nil {
			logger.Error("failed to read file part", slog.Any("error", err))
			http.Error(w, "failed to read file", http.StatusBadRequest)
			return
		}

		upload, err := uploadService.Create(r.Context(), userID, service.UploadCommand{
			RelatedTo: relatedTo,
			Name:      header.Filename,
			Type:      header.Header.Get("Content-Type"),
			Body:      body,
			ProductID: r.FormValue("productId"),
		})
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, toUploadView(upload))
	}
}

// GetUploadHandler handles GET /api/uploads/{id}.
func GetUploadHandler(log *slog.Logger, uploadService service.UploadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUploadHandler"
		logger := log.With(slog.String("op", op))

		upload, err := uploadService.Find(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, toUploadView(upload))
	}
}

// DownloadUploadHandler handles GET /api/uploads/{id}/download and streams
// the object body.
func DownloadUploadHandler(log *slog.Logger, uploadService service.UploadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DownloadUploadHandler"
		logger := log.With(slog.String("op", op))

		upload, body, err := uploadService.Download(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", upload.Type)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", upload.Name))
		if _, err := io.Copy(w, body); err != nil {
			logger.Error("failed to stream object", slog.Any("error", err))
		}
	}
}

// DeleteUploadHandler handles DELETE /api/uploads/{id}.
func DeleteUploadHandler(log *slog.Logger, uploadService service.UploadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUploadHandler"
		logger := log.With(slog.String("op", op))

		if err := uploadService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
