package xl

import (
	"encoding/base64"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// DefaultMaxAttachment bounds the request body accepted by AttachmentHandler.
const DefaultMaxAttachment = 64 << 20

// AttachmentHandler is the server side of AttachmentSaver: it decodes the
// base64 form field "data" and sends it back as a file attachment named by
// the "fileName" query parameter, with the "contentType" query parameter as
// its content type.
type AttachmentHandler struct {
	MaxBytes int64
	Log      *zap.Logger
}

func (h *AttachmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxAttachment
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseForm(); err != nil {
		log.Warn("attachment form", zap.Error(err))
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	fileName := filepath.Base(query.Get("fileName"))
	if fileName == "." || fileName == "/" {
		http.Error(w, "missing fileName", http.StatusBadRequest)
		return
	}
	contentType := query.Get("contentType")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(r.PostForm.Get("data"))
	if err != nil {
		log.Warn("attachment data", zap.String("file", fileName), zap.Error(err))
		http.Error(w, "invalid data", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Warn("attachment write", zap.String("file", fileName), zap.Error(err))
		return
	}
	log.Info("attachment sent",
		zap.String("file", fileName),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(data)),
		zap.Stringer("archive", ArchiveHash(data)))
}
