package editor

import (
	"strings"
	"testing"
)

func trackedText() string {
	return strings.Join([]string{
		"module demo {",
		"// @editable-begin One - first",
		"a",
		"b",
		"c",
		"// @editable-end",
		"x",
		"// @editable-begin Two - second",
		"d",
		"e",
		"// @editable-end",
		"}",
	}, "\n")
}

func TestTracker_QueryBeforeSetText(t *testing.T) {
	tracker := NewTracker()

	if len(tracker.Regions()) != 0 {
		t.Error("unmounted tracker should hold no regions")
	}
	if tracker.IsLineEditable(1) {
		t.Error("IsLineEditable should be false before any text is set")
	}
	if tracker.IsRangeEditable(1, 2) {
		t.Error("IsRangeEditable should be false before any text is set")
	}
}

func TestTracker_IsLineEditable(t *testing.T) {
	tracker := NewTrackerFromText(trackedText())

	for _, line := range []int{3, 4, 5, 9, 10} {
		if !tracker.IsLineEditable(line) {
			t.Errorf("IsLineEditable(%d) = false, want true", line)
		}
	}
	for _, line := range []int{1, 2, 6, 7, 8, 11, 12} {
		if tracker.IsLineEditable(line) {
			t.Errorf("IsLineEditable(%d) = true, want false", line)
		}
	}
}

func TestTracker_IsRangeEditable(t *testing.T) {
	tracker := NewTrackerFromText(trackedText())

	if !tracker.IsRangeEditable(3, 5) {
		t.Error("IsRangeEditable(3, 5) = false, want true for a full region")
	}
	if !tracker.IsRangeEditable(4, 4) {
		t.Error("IsRangeEditable(4, 4) = false, want true inside a region")
	}
	if tracker.IsRangeEditable(4, 7) {
		t.Error("IsRangeEditable(4, 7) = true, want false across a region boundary")
	}
	if tracker.IsRangeEditable(5, 9) {
		t.Error("IsRangeEditable(5, 9) = true, want false spanning two regions")
	}
	if tracker.IsRangeEditable(7, 7) {
		t.Error("IsRangeEditable(7, 7) = true, want false on an unregioned line")
	}
}

func TestTracker_SetTextReplacesRegions(t *testing.T) {
	tracker := NewTrackerFromText(trackedText())
	if len(tracker.Regions()) != 2 {
		t.Fatalf("Regions() length = %d, want 2", len(tracker.Regions()))
	}

	tracker.SetText("no sentinels here")
	if len(tracker.Regions()) != 0 {
		t.Errorf("Regions() length after replace = %d, want 0", len(tracker.Regions()))
	}
	if tracker.IsLineEditable(3) {
		t.Error("IsLineEditable(3) should be false after regions were replaced")
	}
}

func TestTracker_ClampToDocument(t *testing.T) {
	tests := []struct {
		name      string
		region    Region
		lineCount int
		want      []Region
	}{
		{
			name:      "fully inside is identity",
			region:    NewRegion(3, 5, "t", "d"),
			lineCount: 10,
			want:      []Region{NewRegion(3, 5, "t", "d")},
		},
		{
			name:      "end truncated to document length",
			region:    NewRegion(3, 9, "t", "d"),
			lineCount: 5,
			want:      []Region{NewRegion(3, 5, "t", "d")},
		},
		{
			name:      "fully beyond document is dropped",
			region:    NewRegion(7, 9, "t", "d"),
			lineCount: 5,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &Tracker{regions: []Region{tt.region}}
			got := tracker.ClampToDocument(tt.lineCount)
			if len(got) != len(tt.want) {
				t.Fatalf("ClampToDocument() returned %d regions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("region %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTracker_ClampKeepsClampedSet(t *testing.T) {
	tracker := &Tracker{regions: []Region{NewRegion(3, 9, "t", "d")}}
	tracker.ClampToDocument(5)

	if tracker.IsLineEditable(7) {
		t.Error("IsLineEditable(7) should be false after clamping to 5 lines")
	}
	if !tracker.IsLineEditable(5) {
		t.Error("IsLineEditable(5) should be true after clamping to 5 lines")
	}
}

func TestTracker_RegionsReturnsCopy(t *testing.T) {
	tracker := NewTrackerFromText(trackedText())

	regions := tracker.Regions()
	regions[0] = Region{}
	if tracker.Regions()[0].StartLine() != 3 {
		t.Error("Regions() must return a copy")
	}
}
