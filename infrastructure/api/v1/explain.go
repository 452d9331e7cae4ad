package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	"github.com/movelabhq/movelab/infrastructure/api/v1/dto"
)

// ExplainHandler serves the AI explanation endpoint.
type ExplainHandler struct {
	explain *service.ExplainService
}

// NewExplainHandler creates an ExplainHandler.
func NewExplainHandler(explain *service.ExplainService) *ExplainHandler {
	return &ExplainHandler{explain: explain}
}

// Routes registers the explain endpoint.
func (h *ExplainHandler) Routes(r chi.Router) {
	r.Post("/explain", h.explainCode)
}

func (h *ExplainHandler) explainCode(w http.ResponseWriter, r *http.Request) {
	var req dto.ExplainRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	explanation, err := h.explain.Explain(r.Context(), req.Code, req.Question)
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ExplainResponse{
		Markdown: explanation.Markdown,
		HTML:     explanation.HTML,
	})
}
