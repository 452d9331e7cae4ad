package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	"github.com/movelabhq/movelab/infrastructure/api/v1/dto"
)

// ContractHandler serves the contract explorer endpoints.
type ContractHandler struct {
	explorer *service.ExplorerService
}

// NewContractHandler creates a ContractHandler.
func NewContractHandler(explorer *service.ExplorerService) *ContractHandler {
	return &ContractHandler{explorer: explorer}
}

// Routes registers the explorer endpoints.
func (h *ContractHandler) Routes(r chi.Router) {
	r.Get("/contracts/{address}", h.explore)
	r.Post("/contracts/view", h.view)
}

func (h *ContractHandler) explore(w http.ResponseWriter, r *http.Request) {
	state, err := h.explorer.Explore(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.FromAccountState(state))
}

func (h *ContractHandler) view(w http.ResponseWriter, r *http.Request) {
	var req dto.ViewCallRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.explorer.CallView(r.Context(), req.ToViewRequest())
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := dto.ViewCallResponse{}
	for _, result := range results {
		resp.Results = append(resp.Results, []byte(result))
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}
