package handlers

import (
	"errors"
	"fmt"
	"io"
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxUploadBytes = 16 << 20

type UploadHandler struct {
	Reloader ports.DatasetReloader
	// Uploaded files are kept here for audit.
	Dir string
}

// Upload replaces one dataset collection from a CSV file. The swap is all-or-nothing.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	kind := domain.DatasetKind(strings.ToLower(strings.TrimSpace(r.FormValue("type"))))
	switch kind {
	case domain.DatasetHospitals, domain.DatasetProviders, domain.DatasetOrders:
	default:
		writeError(w, r, http.StatusBadRequest, "invalid type, must be hospitals, providers, or orders")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	name := filepath.Base(strings.TrimSpace(header.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		writeError(w, r, http.StatusBadRequest, "no file selected")
		return
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		writeError(w, r, http.StatusBadRequest, "invalid file type, only csv files are allowed")
		return
	}

	saved, err := h.save(file, kind, name)
	if err != nil {
		writeInternalError(w, r, "upload.save", err)
		return
	}
	defer saved.Close()

	n, err := h.Reloader.Reload(r.Context(), kind, saved)
	if errors.Is(err, ports.ErrInvalidCSV) || errors.Is(err, ports.ErrUnknownDataset) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse csv file: %v", err))
		return
	}
	if err != nil {
		writeInternalError(w, r, "upload.Reload", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.UploadResponse{
		Success: true,
		Message: fmt.Sprintf("%s data updated successfully", kind),
		Records: n,
	})
}

// save copies the upload into Dir and returns the stored file rewound for reading.
func (h *UploadHandler) save(src io.Reader, kind domain.DatasetKind, name string) (*os.File, error) {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", h.Dir, err)
	}

	path := filepath.Join(h.Dir, fmt.Sprintf("%s-%d-%s", kind, time.Now().UnixNano(), name))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write upload file %q: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rewind upload file %q: %w", path, err)
	}
	return f, nil
}
