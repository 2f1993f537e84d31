package handlers

import (
	stdErrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type BlobHandler struct {
	blobs storage.BlobStore
}

func NewBlobHandler(blobs storage.BlobStore) *BlobHandler {
	return &BlobHandler{blobs: blobs}
}

// GetBlob godoc
//	@Summary		Download a stored file
//	@Description	Serves a file previously stored through an upload, such as a profile photo.
//	@Tags			Blobs
//	@Produce		octet-stream
//	@Param			key	path		string					true	"Blob key"
//	@Success		200	{file}		binary					"File content"
//	@Failure		404	{object}	response.ErrorResponse	"Not found"
//	@Router			/blobs/{key} [get]
func (h *BlobHandler) GetBlob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		key := r.PathValue("key")

		blob, err := h.blobs.Get(r.Context(), key)
		if err != nil {
			if stdErrors.Is(err, storage.ErrBlobNotFound) {
				response.Error(w, errors.NotFoundError("File not found"))
				return
			}

			logger.Error("Failed to read blob", slog.String("key", key), slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Failed to read file").WithError(err))
			return
		}

		w.Header().Set("Content-Type", blob.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
		w.Header().Set("Cache-Control", "private, max-age=300")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(blob.Data)
	}
}
