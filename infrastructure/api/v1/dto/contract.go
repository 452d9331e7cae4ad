package dto

import (
	"encoding/json"

	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/domain/contract"
)

// FunctionResponse is one function of a published module.
type FunctionResponse struct {
	Name              string   `json:"name"`
	Visibility        string   `json:"visibility"`
	IsEntry           bool     `json:"is_entry"`
	IsView            bool     `json:"is_view"`
	GenericTypeParams int      `json:"generic_type_params"`
	Params            []string `json:"params,omitempty"`
	Returns           []string `json:"returns,omitempty"`
}

// ModuleResponse is one published module.
type ModuleResponse struct {
	Name               string             `json:"name"`
	FullyQualifiedName string             `json:"fully_qualified_name"`
	Functions          []FunctionResponse `json:"functions,omitempty"`
}

// ResourceResponse is one stored resource.
type ResourceResponse struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AccountStateResponse is everything shown for one explored account.
type AccountStateResponse struct {
	Address   string             `json:"address"`
	Modules   []ModuleResponse   `json:"modules"`
	Resources []ResourceResponse `json:"resources"`
}

// ViewCallRequest executes a read-only view function.
type ViewCallRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments,omitempty"`
	Arguments     []any    `json:"arguments,omitempty"`
}

// ViewCallResponse carries the raw view results.
type ViewCallResponse struct {
	Results []json.RawMessage `json:"results"`
}

// ExplainRequest asks for an explanation of code.
type ExplainRequest struct {
	Code     string `json:"code"`
	Question string `json:"question,omitempty"`
}

// ExplainResponse is an explanation in markdown and HTML.
type ExplainResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// FromAccountState maps an explored account.
func FromAccountState(state service.AccountState) AccountStateResponse {
	resp := AccountStateResponse{
		Address:   state.Address.String(),
		Modules:   make([]ModuleResponse, 0, len(state.Modules)),
		Resources: make([]ResourceResponse, 0, len(state.Resources)),
	}
	for _, m := range state.Modules {
		mr := ModuleResponse{
			Name:               m.Name(),
			FullyQualifiedName: m.FullyQualifiedName(),
		}
		for _, fn := range m.Functions() {
			mr.Functions = append(mr.Functions, FunctionResponse{
				Name:              fn.Name(),
				Visibility:        fn.Visibility(),
				IsEntry:           fn.IsEntry(),
				IsView:            fn.IsView(),
				GenericTypeParams: fn.GenericTypeParams(),
				Params:            fn.Params(),
				Returns:           fn.Returns(),
			})
		}
		resp.Modules = append(resp.Modules, mr)
	}
	for _, r := range state.Resources {
		resp.Resources = append(resp.Resources, ResourceResponse{
			Type: r.TypeTag(),
			Data: r.Data(),
		})
	}
	return resp
}

// ToViewRequest maps a view call to the domain form.
func (r ViewCallRequest) ToViewRequest() contract.ViewRequest {
	return contract.ViewRequest{
		Function:      r.Function,
		TypeArguments: r.TypeArguments,
		Arguments:     r.Arguments,
	}
}
