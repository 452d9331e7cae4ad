package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	"github.com/movelabhq/movelab/infrastructure/api/v1/dto"
)

// ImageHandler serves annotation image upload and download.
type ImageHandler struct {
	workshops *service.WorkshopService
	maxBytes  int64
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(workshops *service.WorkshopService, maxBytes int64) *ImageHandler {
	return &ImageHandler{workshops: workshops, maxBytes: maxBytes}
}

// Routes registers the image endpoints.
func (h *ImageHandler) Routes(r chi.Router) {
	r.Post("/images", h.upload)
	r.Get("/images/{id}", h.download)
	r.Delete("/images/{id}", h.delete)
}

func (h *ImageHandler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "read image")
		return
	}

	img, err := h.workshops.UploadImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.FromImage(img))
}

func (h *ImageHandler) download(w http.ResponseWriter, r *http.Request) {
	img, err := h.workshops.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(img.Size()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data())
}

func (h *ImageHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workshops.DeleteImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
