package render

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp classifies one block of a line diff.
type DiffOp int

const (
	// DiffEqual lines are present in both versions.
	DiffEqual DiffOp = iota
	// DiffDelete lines are only in the previous version.
	DiffDelete
	// DiffInsert lines are only in the current version.
	DiffInsert
)

// DiffBlock is a run of consecutive lines sharing one diff operation.
type DiffBlock struct {
	Op    DiffOp
	Lines []string
}

// DiffLines computes a line-level diff between a step and its predecessor,
// used for steps flagged to render as a diff instead of an annotated buffer.
func DiffLines(previous, current string) []DiffBlock {
	dmp := diffmatchpatch.New()

	prevChars, currChars, lineArray := dmp.DiffLinesToChars(previous, current)
	diffs := dmp.DiffMain(prevChars, currChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	blocks := make([]DiffBlock, 0, len(diffs))
	for _, d := range diffs {
		lines := splitDiffLines(d.Text)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, DiffBlock{
			Op:    toDiffOp(d.Type),
			Lines: lines,
		})
	}
	return blocks
}

func toDiffOp(t diffmatchpatch.Operation) DiffOp {
	switch t {
	case diffmatchpatch.DiffDelete:
		return DiffDelete
	case diffmatchpatch.DiffInsert:
		return DiffInsert
	default:
		return DiffEqual
	}
}

func splitDiffLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
