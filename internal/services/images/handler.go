package images

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"bakeshop/internal/logger"
	"bakeshop/internal/web"
)

// 10 MiB cap on uploaded files.
const maxUploadBytes = 10 << 20

// Handler handles the image HTTP routes.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new images handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// UploadImage handles POST /api/{imgCollection}/uploadImage/{id}.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("imgCollection")
	id := r.PathValue("id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		web.ErrorMessage(w, http.StatusInternalServerError, "There was an issue uploading the file")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		web.ErrorMessage(w, http.StatusInternalServerError, "There was an issue uploading the file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		web.ErrorMessage(w, http.StatusInternalServerError, "There was an issue uploading the file")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	listing, err := h.service.Upload(ctx, collection, id, data)
	if err != nil {
		h.respondError(w, "image_upload_failed", err)
		return
	}
	web.JSON(w, http.StatusOK, listing)
}

// DeleteImage handles DELETE /api/{collection}/delImage/{id}.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	listing, err := h.service.Delete(ctx, r.PathValue("collection"), r.PathValue("id"))
	if err != nil {
		h.respondError(w, "image_delete_failed", err)
		return
	}
	web.JSON(w, http.StatusOK, listing)
}

func (h *Handler) respondError(w http.ResponseWriter, action string, err error) {
	var blob *BlobFailure
	if errors.As(err, &blob) {
		web.ErrorMessage(w, http.StatusInternalServerError, blob.Msg)
		return
	}
	h.logger.Error(action, "Image operation failed", "", err, nil)
	web.StoreError(w)
}
