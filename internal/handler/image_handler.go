package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/auth"
	"github.com/prn-tf/chronicle/internal/service"
)

// ImageHandler serves image upload and download. One file per request;
// combining several images into an entry is the client's concern.
type ImageHandler struct {
	images  *service.ImageService
	maxSize int64
	logger  zerolog.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images *service.ImageService, maxSize int64, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{
		images:  images,
		maxSize: maxSize,
		logger:  logger.With().Str("handler", "image").Logger(),
	}
}

// uploadResponse carries the reference to a stored image.
type uploadResponse struct {
	Reference string `json:"reference"`
}

// Upload handles POST /images with a multipart "file" field.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.FromContext(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if h.maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	key, err := h.images.Upload(r.Context(), file, header.Size)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Reference: key})
}

// Download handles GET /images/{ref}.
func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.FromContext(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	body, err := h.images.Download(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn().Err(err).Msg("image download interrupted")
	}
}
