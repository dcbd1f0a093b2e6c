package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"learnly/internal/app/storage"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/randx"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

// PresignUploadInput defines the JSON input structure for generating an upload URL.
type PresignUploadInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// mediaKeyPrefix namespaces every media object under its owner's id.
func mediaKeyPrefix(userID string) string {
	return fmt.Sprintf("media/%s/", userID)
}

// HandlePresignUpload generates a time-limited pre-signed URL for uploading a
// media file. Object keys are namespaced under the caller's user id, so one
// user can never overwrite another's files.
func HandlePresignUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input PresignUploadInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := storage.ValidateFileSize(input.FileSize); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if err := storage.ValidateFileType(input.FileName, input.MimeType); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		fileExt := strings.ToLower(filepath.Ext(input.FileName))
		fileKey := mediaKeyPrefix(caller.ID) + randx.NewID() + fileExt

		url, err := deps.StorageService.PresignUpload(
			r.Context(),
			fileKey,
			input.MimeType,
			input.FileSize,
			storage.PresignedURLDuration,
		)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		data := map[string]any{
			"presignedUrl": url,
			"fileKey":      fileKey,
			"fileName":     input.FileName,
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandlePresignDownload generates a time-limited pre-signed URL for a stored
// media file and redirects to it. Any signed-in user may fetch media, since
// posts embed the keys in their public record.
func HandlePresignDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		fileKey := r.URL.Query().Get("k")
		if fileKey == "" || !strings.HasPrefix(fileKey, "media/") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "a valid file key is required"))
			return
		}

		url, err := deps.StorageService.PresignDownload(r.Context(), fileKey, storage.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}
