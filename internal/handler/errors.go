package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeJSONBytes writes an already encoded JSON body, as stored in the
// page cache.
func writeJSONBytes(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

// Dashboard messages keyed by "<marker>=<value>".
var noticeMessages = map[string]string{
	"saved=hero":          "Hero section updated.",
	"saved=avatar":        "Profile photo updated.",
	"saved=meta":          "Basic information updated.",
	"saved=links":         "Profile links updated.",
	"saved=skills_text":   "Skills section text updated.",
	"saved=projects_text": "Projects section title updated.",
	"saved=posts_text":    "Posts section text updated.",
	"saved=skill":         "Skill added.",
	"updated=skill":       "Skill updated.",
	"deleted=skill":       "Skill deleted.",
	"saved=project":       "Project added.",
	"updated=project":     "Project updated.",
	"deleted=project":     "Project deleted.",
	"saved=post":          "Post created.",
	"updated=post":        "Post updated.",
	"deleted=post":        "Post deleted.",
}

var dashboardErrorMessages = map[string]string{
	"validation":        "Some fields are invalid. Check them and save again.",
	"slug":              "The title cannot produce a valid slug. Adjust it and try again.",
	"slug_exists":       "That slug already exists. Change the title or slug.",
	"image_unavailable": "Some images never finished uploading. Upload them again before saving.",
	"publish_failed":    "Publishing failed and nothing was written. Try again later.",
	"missing_post":      "The requested post could not be found.",
	"avatar_missing":    "Choose a photo to upload.",
	"avatar_size":       "The photo is too large. Upload a file under 25MB.",
	"avatar_type":       "Only JPG, PNG and WebP photos are supported.",
	"avatar_write":      "The photo could not be uploaded. Try again later.",
}

var loginErrorMessages = map[string]string{
	"config":       "AUTH_SECRET has not been configured.",
	"no_admin":     "No admin account exists yet. Run the seed or upsert-admin command first.",
	"invalid":      "Check the account and password format.",
	"credentials":  "Incorrect account or password.",
	"rate_limited": "Too many login attempts. Wait a minute and try again.",
}
