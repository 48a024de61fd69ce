package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kulipoly/internal/storage"
)

// maxUploadSize is the maximum allowed file upload size (50 MB).
const maxUploadSize = 50 << 20

// allowedMediaTypes defines MIME types accepted for upload. They cover the
// image, video and file blocks of blog content.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"video/mp4":       true,
	"video/webm":      true,
	"application/pdf": true,
	"application/zip": true,
}

type mediaDeleteRequest struct {
	URL string `json:"url"`
}

// MediaUpload stores a multipart "file" field and returns its public URL.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.media == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 50 MB")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	contentType := detectType(sniff[:n], header.Filename)
	if !allowedMediaTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed", contentType))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process file")
		return
	}

	key := storage.NewKey(header.Filename, time.Now())
	if err := a.media.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	slog.Info("media uploaded", "key", key, "type", contentType, "size", header.Size)
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: map[string]any{
		"url":          a.media.FileURL(key),
		"key":          key,
		"content_type": contentType,
		"size":         header.Size,
	}})
}

// MediaDelete removes an uploaded object by its public URL.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	if a.media == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}
	var req mediaDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	key, ok := a.media.KeyFromURL(req.URL)
	if !ok {
		writeError(w, http.StatusBadRequest, "URL does not point to uploaded media")
		return
	}
	if err := a.media.Delete(r.Context(), key); err != nil {
		slog.Error("media delete failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}
	writeOK(w, nil)
}

// detectType sniffs the content type, recognising SVG by extension since
// sniffing reports it as XML or text.
func detectType(head []byte, filename string) string {
	ct := http.DetectContentType(head)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(ct, "xml") || strings.Contains(ct, "text/plain")) {
		return "image/svg+xml"
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
