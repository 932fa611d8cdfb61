package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mediastash/mediastash/internal/media"
	"github.com/mediastash/mediastash/internal/utils"
)

// Media is the service behind every file route. Assigned once at startup.
var Media *media.Service

const streamChunkSize = 32 << 10 // 32 KiB

// POST /api/v1/files
// UploadFile godoc
// @Summary Upload a media file
// @Description Uploads a single file and generates a thumbnail when possible. A failed thumbnail never fails the upload.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload "Invalid form or disallowed file type"
// @Failure 413 {object} utils.Payload "File exceeds the size limit"
// @Router /api/v1/files [post]
func UploadFile(w http.ResponseWriter, r *http.Request) {
	src, header, err := r.FormFile("file")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid file upload form")
		return
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	file, err := Media.Upload(r.Context(), header.Filename, contentType, header.Size, src)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "File uploaded successfully",
		Data:    file,
	})
}

func writeUploadError(w http.ResponseWriter, err error) {
	var sizeErr *media.SizeExceededError
	switch {
	case errors.Is(err, media.ErrInvalidFileType):
		utils.JSONError(w, http.StatusBadRequest, "File type is not allowed")
	case errors.As(err, &sizeErr):
		utils.JSONError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File size %d exceeds the %d byte limit", sizeErr.Actual, sizeErr.Max))
	default:
		utils.JSONError(w, http.StatusInternalServerError, "Failed to store file")
	}
}

// GET /api/v1/files
// ListFiles godoc
// @Summary List uploaded files
// @Description Returns one page of file metadata, newest first.
// @Tags Files
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} utils.Payload
// @Router /api/v1/files [get]
func ListFiles(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	files, total, err := Media.List(r.Context(), page, size)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to list files")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Files retrieved successfully",
		Data: map[string]any{
			"total": total,
			"files": files,
		},
	})
}

// GET /api/v1/files/{id}
// GetFile godoc
// @Summary Retrieve file metadata
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Unknown file id"
// @Router /api/v1/files/{id} [get]
func GetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	file, err := Media.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File retrieved successfully",
		Data: map[string]any{
			"file":         file,
			"hasThumbnail": file.HasThumbnail(),
		},
	})
}

// GET /api/v1/files/{id}/content
// StreamFile godoc
// @Summary Stream file content
// @Description Serves the raw bytes, honoring a single-range Range header for video seeking.
// @Tags Files
// @Produce octet-stream
// @Param id path string true "File ID"
// @Param Range header string false "Byte range, e.g. bytes=0-1023"
// @Success 200 "Full content"
// @Success 206 "Partial content"
// @Failure 404 {object} utils.Payload "Unknown file id"
// @Failure 416 "Requested range not satisfiable"
// @Router /api/v1/files/{id}/content [get]
func StreamFile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	content, err := Media.Stream(r.Context(), id, r.Header.Get("Range"))
	if err != nil {
		var rangeErr *media.RangeNotSatisfiableError
		if errors.As(err, &rangeErr) {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", rangeErr.Size))
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		writeLookupError(w, err)
		return
	}

	serveContent(w, r, content)
}

// GET /api/v1/files/{id}/thumbnail
// GetThumbnail godoc
// @Summary Retrieve the generated thumbnail
// @Tags Files
// @Produce jpeg
// @Param id path string true "File ID"
// @Success 200 "JPEG thumbnail"
// @Failure 404 {object} utils.Payload "Unknown id or no thumbnail"
// @Router /api/v1/files/{id}/thumbnail [get]
func GetThumbnail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	content, err := Media.Thumbnail(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	serveContent(w, r, content)
}

// DELETE /api/v1/files/{id}
// DeleteFile godoc
// @Summary Delete a file
// @Description Removes the file, its thumbnail, and its metadata. Idempotent.
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 204 "Deleted"
// @Router /api/v1/files/{id} [delete]
func DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := Media.Delete(r.Context(), id); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// serveContent writes a media.Content to the response, flushing as it
// goes so memory stays bounded regardless of file size. The body is
// closed on every exit path; a failed write (client gone) aborts the loop.
func serveContent(w http.ResponseWriter, r *http.Request, content *media.Content) {
	body, err := content.Open(r.Context())
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to open file content")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Accept-Ranges", "bytes")
	if content.Partial() {
		spec := content.Range
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", spec.Start, spec.End, content.TotalSize))
		w.Header().Set("Content-Length", strconv.FormatInt(spec.Length(), 10))
		w.WriteHeader(http.StatusPartialContent)
	} else {
		if content.TotalSize > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(content.TotalSize, 10))
		}
		w.WriteHeader(http.StatusOK)
	}

	if r.Method == http.MethodHead {
		return
	}

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, streamChunkSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				// Client disconnected; stop reading promptly.
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if rerr != nil {
			return
		}
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid file id")
		return uuid.Nil, false
	}
	return id, true
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, media.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "File not found")
		return
	}
	utils.JSONError(w, http.StatusInternalServerError, "Internal server error")
}
