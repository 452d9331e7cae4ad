package dto

import (
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/toolchain"
)

// RegionsRequest asks for the editable regions of a source buffer.
type RegionsRequest struct {
	Source    string `json:"source"`
	LineCount int    `json:"line_count,omitempty"`
}

// RegionResponse is one editable region.
type RegionResponse struct {
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RegionsResponse lists the editable regions of a buffer.
type RegionsResponse struct {
	Regions []RegionResponse `json:"regions"`
}

// GuardRequest asks for an edit-guard decision.
type GuardRequest struct {
	Source    string `json:"source"`
	Key       string `json:"key"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// GuardResponse is the guard's verdict.
type GuardResponse struct {
	Allowed         bool `json:"allowed"`
	ValidateAfter   bool `json:"validate_after"`
	EditableRegions int  `json:"editable_regions"`
}

// PackageRequest compiles or publishes a package.
type PackageRequest struct {
	Name           string            `json:"name"`
	Sources        map[string]string `json:"sources"`
	NamedAddresses map[string]string `json:"named_addresses,omitempty"`
}

// DiagnosticResponse is one compiler diagnostic.
type DiagnosticResponse struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// BuildResponse is a compile or publish outcome.
type BuildResponse struct {
	Success     bool                 `json:"success"`
	Diagnostics []DiagnosticResponse `json:"diagnostics,omitempty"`
	Output      string               `json:"output,omitempty"`
}

// FromRegions maps region infos.
func FromRegions(regions []service.RegionInfo) RegionsResponse {
	resp := RegionsResponse{Regions: make([]RegionResponse, 0, len(regions))}
	for _, r := range regions {
		resp.Regions = append(resp.Regions, RegionResponse{
			StartLine:   r.StartLine,
			EndLine:     r.EndLine,
			Title:       r.Title,
			Description: r.Description,
		})
	}
	return resp
}

// FromGuardDecision maps a guard decision.
func FromGuardDecision(d service.GuardDecision) GuardResponse {
	return GuardResponse{
		Allowed:         d.Allowed,
		ValidateAfter:   d.ValidateAfter,
		EditableRegions: d.EditableRegions,
	}
}

// ToPackage maps a package request to the toolchain form.
func (r PackageRequest) ToPackage() toolchain.Package {
	return toolchain.Package{
		Name:           r.Name,
		Sources:        r.Sources,
		NamedAddresses: r.NamedAddresses,
	}
}

// FromBuildOutcome maps a build outcome.
func FromBuildOutcome(outcome service.BuildOutcome) BuildResponse {
	resp := BuildResponse{
		Success: outcome.Success,
		Output:  outcome.Output,
	}
	for _, d := range outcome.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, DiagnosticResponse{
			Severity: string(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	return resp
}
