package service

import (
	"fmt"

	"github.com/movelabhq/movelab/domain/editor"
)

// PlaygroundService answers the playground's region and edit-guard queries.
// It is stateless: every query re-derives regions from the submitted source,
// matching the full-replace recomputation the editor performs on each
// change event.
type PlaygroundService struct{}

// NewPlaygroundService creates a PlaygroundService.
func NewPlaygroundService() *PlaygroundService {
	return &PlaygroundService{}
}

// RegionInfo is one editable region in API-friendly form.
type RegionInfo struct {
	StartLine   int
	EndLine     int
	Title       string
	Description string
}

// Regions parses source for editable regions, clamped to lineCount when it
// is positive.
func (s *PlaygroundService) Regions(source string, lineCount int) []RegionInfo {
	tracker := editor.NewTrackerFromText(source)
	regions := tracker.Regions()
	if lineCount > 0 {
		regions = tracker.ClampToDocument(lineCount)
	}

	infos := make([]RegionInfo, 0, len(regions))
	for _, r := range regions {
		infos = append(infos, RegionInfo{
			StartLine:   r.StartLine(),
			EndLine:     r.EndLine(),
			Title:       r.Title(),
			Description: r.Description(),
		})
	}
	return infos
}

// GuardQuery is one edit-guard decision request.
type GuardQuery struct {
	Source    string
	Key       string
	StartLine int
	EndLine   int
}

// GuardDecision is the guard's verdict in API-friendly form.
type GuardDecision struct {
	Allowed         bool
	ValidateAfter   bool
	EditableRegions int
}

// keyKinds maps wire key names to guard classifications.
var keyKinds = map[string]editor.KeyKind{
	"navigation": editor.KeyNavigation,
	"character":  editor.KeyCharacter,
	"backspace":  editor.KeyBackspace,
	"delete":     editor.KeyDelete,
	"enter":      editor.KeyEnter,
	"tab":        editor.KeyTab,
	"paste":      editor.KeyPaste,
}

// Decide runs the edit guard for one key event.
func (s *PlaygroundService) Decide(query GuardQuery) (GuardDecision, error) {
	kind, ok := keyKinds[query.Key]
	if !ok {
		return GuardDecision{}, fmt.Errorf("%w: unknown key kind %q", ErrInvalidInput, query.Key)
	}
	if query.StartLine < 1 || query.EndLine < query.StartLine {
		return GuardDecision{}, fmt.Errorf("%w: selection [%d, %d] is not valid", ErrInvalidInput, query.StartLine, query.EndLine)
	}

	tracker := editor.NewTrackerFromText(query.Source)
	guard := editor.NewGuard(tracker)

	var selection editor.Selection
	if query.StartLine == query.EndLine {
		selection = editor.NewCursor(query.StartLine)
	} else {
		selection = editor.NewSelection(query.StartLine, query.EndLine)
	}

	decision := guard.Decide(editor.NewKeyEvent(kind), selection)
	return GuardDecision{
		Allowed:         decision != editor.DecisionBlock,
		ValidateAfter:   decision == editor.DecisionApplyThenValidate,
		EditableRegions: len(tracker.Regions()),
	}, nil
}
