package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	"github.com/movelabhq/movelab/infrastructure/api/v1/dto"
)

// PlaygroundHandler serves the region, edit-guard and package endpoints.
type PlaygroundHandler struct {
	playground *service.PlaygroundService
	packages   *service.PackageService
}

// NewPlaygroundHandler creates a PlaygroundHandler.
func NewPlaygroundHandler(playground *service.PlaygroundService, packages *service.PackageService) *PlaygroundHandler {
	return &PlaygroundHandler{playground: playground, packages: packages}
}

// Routes registers the playground endpoints.
func (h *PlaygroundHandler) Routes(r chi.Router) {
	r.Post("/playground/regions", h.regions)
	r.Post("/playground/guard", h.guard)
	r.Post("/packages/compile", h.compile)
	r.Post("/packages/publish", h.publish)
}

func (h *PlaygroundHandler) regions(w http.ResponseWriter, r *http.Request) {
	var req dto.RegionsRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	regions := h.playground.Regions(req.Source, req.LineCount)
	middleware.WriteJSON(w, http.StatusOK, dto.FromRegions(regions))
}

func (h *PlaygroundHandler) guard(w http.ResponseWriter, r *http.Request) {
	var req dto.GuardRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.playground.Decide(service.GuardQuery{
		Source:    req.Source,
		Key:       req.Key,
		StartLine: req.StartLine,
		EndLine:   req.EndLine,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromGuardDecision(decision))
}

func (h *PlaygroundHandler) compile(w http.ResponseWriter, r *http.Request) {
	var req dto.PackageRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.packages.Compile(r.Context(), req.ToPackage())
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromBuildOutcome(outcome))
}

func (h *PlaygroundHandler) publish(w http.ResponseWriter, r *http.Request) {
	var req dto.PackageRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.packages.Publish(r.Context(), req.ToPackage())
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromBuildOutcome(outcome))
}
