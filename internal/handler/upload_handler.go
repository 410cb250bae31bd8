package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"nebulanotes/internal/service"
)

// UploadPostImage accepts the multipart "image" field from the markdown
// editor and answers with the URL to embed.
func (h *Handlers) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, "image", service.MaxPostImageSize)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			writeError(w, "File is larger than "+humanize.IBytes(service.MaxPostImageSize)+".", http.StatusBadRequest)
			return
		}
		slog.Warn("read post image failed", "error", err)
		writeError(w, "Choose an image file to upload.", http.StatusBadRequest)
		return
	}

	result, err := h.Upload.UploadPostImage(r.Context(), upload)
	if err != nil {
		if errors.Is(err, service.ErrUpload) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("post image upload failed", "error", err)
		writeError(w, "Image processing failed. Try again later.", http.StatusInternalServerError)
		return
	}

	slog.Info("post image uploaded", "file", result.FileName, "storage", result.Storage)
	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, "avatar", service.MaxAvatarSize)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			err = service.ErrAvatarSize
		} else {
			slog.Warn("read avatar failed", "error", err)
			err = service.ErrAvatarMissing
		}
	} else {
		err = h.Profile.UpdateAvatar(r.Context(), upload)
	}

	h.finishProfile(w, r, err, "saved", "avatar")
}
