package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/domain/editor"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	"github.com/movelabhq/movelab/infrastructure/api/v1/dto"
	"github.com/movelabhq/movelab/internal/config"
)

// WorkshopHandler serves the workshop CRUD and rendering endpoints.
type WorkshopHandler struct {
	workshops *service.WorkshopService
}

// NewWorkshopHandler creates a WorkshopHandler.
func NewWorkshopHandler(workshops *service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshops: workshops}
}

// Routes registers the workshop endpoints.
func (h *WorkshopHandler) Routes(r chi.Router) {
	r.Get("/workshops", h.list)
	r.Post("/workshops", h.create)
	r.Post("/workshops/import", h.importYAML)
	r.Get("/workshops/{id}", h.get)
	r.Put("/workshops/{id}", h.update)
	r.Delete("/workshops/{id}", h.delete)
	r.Get("/workshops/{id}/export", h.exportYAML)
	r.Post("/workshops/{id}/steps", h.addStep)
	r.Patch("/workshops/{id}/steps/{stepID}", h.updateStep)
	r.Delete("/workshops/{id}/steps/{stepID}", h.removeStep)
	r.Post("/workshops/{id}/steps/{stepID}/move", h.moveStep)
	r.Get("/workshops/{id}/steps/{stepID}/rendered", h.renderStep)
}

func (h *WorkshopHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = config.DefaultWorkshopPageLen
	}

	if query := r.URL.Query().Get("q"); query != "" {
		workshops, err := h.workshops.SearchWorkshops(r.Context(), query)
		if err != nil {
			respondError(w, r, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, dto.FromWorkshops(workshops))
		return
	}

	workshops, err := h.workshops.ListWorkshops(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromWorkshops(workshops))
}

func (h *WorkshopHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.WorkshopRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.workshops.CreateWorkshop(r.Context(), req.Title, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.FromWorkshop(created))
}

func (h *WorkshopHandler) get(w http.ResponseWriter, r *http.Request) {
	workshop, err := h.workshops.GetWorkshop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromWorkshop(workshop))
}

func (h *WorkshopHandler) update(w http.ResponseWriter, r *http.Request) {
	var req dto.WorkshopRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.workshops.UpdateWorkshop(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromWorkshop(updated))
}

func (h *WorkshopHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workshops.DeleteWorkshop(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkshopHandler) importYAML(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r, 1<<20)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	imported, err := h.workshops.ImportWorkshop(r.Context(), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.FromWorkshop(imported))
}

func (h *WorkshopHandler) exportYAML(w http.ResponseWriter, r *http.Request) {
	data, err := h.workshops.ExportWorkshop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *WorkshopHandler) addStep(w http.ResponseWriter, r *http.Request) {
	var req dto.StepRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	step, err := h.workshops.AddStep(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description, req.SourceCode)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.FromStep(step))
}

func (h *WorkshopHandler) updateStep(w http.ResponseWriter, r *http.Request) {
	var req dto.StepUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := service.StepUpdate{
		Title:            req.Title,
		Description:      req.Description,
		SourceCode:       req.SourceCode,
		DiffWithPrevious: req.DiffWithPrevious,
	}
	if req.Annotations != nil {
		annotations, err := toAnnotations(req.Annotations)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.Annotations = annotations
		update.SetAnnotations = true
	}
	if req.HighlightedLines != nil {
		update.HighlightedLines = req.HighlightedLines
		update.SetHighlights = true
	}

	step, err := h.workshops.UpdateStep(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "stepID"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromStep(step))
}

func (h *WorkshopHandler) removeStep(w http.ResponseWriter, r *http.Request) {
	err := h.workshops.RemoveStep(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "stepID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkshopHandler) moveStep(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveStepRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.workshops.MoveStep(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "stepID"), req.Position)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkshopHandler) renderStep(w http.ResponseWriter, r *http.Request) {
	rendered, err := h.workshops.RenderStep(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "stepID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromRenderedStep(rendered))
}

func toAnnotations(requests []dto.AnnotationRequest) ([]editor.Annotation, error) {
	annotations := make([]editor.Annotation, 0, len(requests))
	for i, req := range requests {
		lines, err := editor.NewLineSet(req.Lines...)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i+1, err)
		}
		ann := editor.NewAnnotation(lines, req.Content)
		if req.ImageID != "" || req.ImageURL != "" {
			ann = ann.WithImage(editor.NewImageRef(req.ImageID, req.ImageURL))
		}
		annotations = append(annotations, ann)
	}
	return annotations, nil
}
