package handler

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/utils"
	"github.com/folio-cms/folio/shared/validation"
	"github.com/go-chi/chi/v5"
)

// UploadMedia takes the multipart field "file" and returns the public url of the stored copy.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	limits := h.cfg.Public.Media.UploadLimits()
	tooLarge := &errors.ErrorWithStatusCode{
		Message:    "File exceeds the limit of " + limits.Describe(),
		StatusCode: http.StatusRequestEntityTooLarge,
		Kind:       errors.KindValidation,
	}
	if err := limits.Parse(w, r); err != nil {
		logger.Log.Debug("media upload rejected", "error", err)
		utils.WriteErrorAndStatusCode(w, tooLarge)
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, err := limits.FormFile(r, "file")
	if err != nil {
		switch {
		case stderrors.Is(err, validation.ErrPayloadTooLarge):
			utils.WriteErrorAndStatusCode(w, tooLarge)
		case stderrors.Is(err, validation.ErrMissingFile):
			utils.WriteErrorAndStatusCode(w, errors.Validation("Field file is required"))
		case stderrors.Is(err, validation.ErrInvalidMimeType):
			utils.WriteErrorAndStatusCode(w, errors.Validation("Unsupported media type"))
		default:
			utils.WriteErrorAndStatusCode(w, errors.Validation(err.Error()))
		}
		return
	}
	defer upload.File.Close()

	url, err := h.media.Upload(r.Context(), upload.File, upload.MimeType)
	respond(w, http.StatusCreated, api.MediaResponse{URL: url}, err)
}

func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	rc, mimeType, err := h.media.Open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, rc); err != nil {
		logger.Log.Debug("media copy interrupted", "error", err)
	}
}
