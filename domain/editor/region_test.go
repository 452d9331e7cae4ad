package editor

import (
	"strings"
	"testing"
)

func TestParseRegions_TitleAndDescription(t *testing.T) {
	text := strings.Join([]string{
		"module demo::counter {",
		"    // @editable-begin Title - Desc",
		"    fun a() {}",
		"    fun b() {}",
		"    fun c() {}",
		"    // @editable-end",
		"}",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 1 {
		t.Fatalf("ParseRegions() returned %d regions, want 1", len(regions))
	}

	r := regions[0]
	if r.StartLine() != 3 || r.EndLine() != 5 {
		t.Errorf("region span = [%d, %d], want [3, 5]", r.StartLine(), r.EndLine())
	}
	if r.Title() != "Title" {
		t.Errorf("Title() = %q, want %q", r.Title(), "Title")
	}
	if r.Description() != "Desc" {
		t.Errorf("Description() = %q, want %q", r.Description(), "Desc")
	}
}

func TestParseRegions_DefaultsWhenUnlabelled(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-begin",
		"let x = 1;",
		"// @editable-end",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 1 {
		t.Fatalf("ParseRegions() returned %d regions, want 1", len(regions))
	}
	if regions[0].Title() != DefaultRegionTitle {
		t.Errorf("Title() = %q, want default", regions[0].Title())
	}
	if regions[0].Description() != DefaultRegionDescription {
		t.Errorf("Description() = %q, want default", regions[0].Description())
	}
}

func TestParseRegions_TitleWithoutDescription(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-begin Storage",
		"let x = 1;",
		"// @editable-end",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 1 {
		t.Fatalf("ParseRegions() returned %d regions, want 1", len(regions))
	}
	if regions[0].Title() != "Storage" {
		t.Errorf("Title() = %q, want %q", regions[0].Title(), "Storage")
	}
	if regions[0].Description() != DefaultRegionDescription {
		t.Errorf("Description() = %q, want default", regions[0].Description())
	}
}

func TestParseRegions_MultiplePairedBlocksInOrder(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-begin First - one",
		"a",
		"// @editable-end",
		"between",
		"// @editable-begin Second - two",
		"b",
		"c",
		"// @editable-end",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 2 {
		t.Fatalf("ParseRegions() returned %d regions, want 2", len(regions))
	}
	lineCount := len(strings.Split(text, "\n"))
	for i, r := range regions {
		if r.StartLine() > r.EndLine() {
			t.Errorf("region %d has start %d > end %d", i, r.StartLine(), r.EndLine())
		}
		if r.StartLine() < 1 || r.EndLine() > lineCount {
			t.Errorf("region %d [%d, %d] out of document bounds", i, r.StartLine(), r.EndLine())
		}
	}
	if regions[0].Title() != "First" || regions[1].Title() != "Second" {
		t.Errorf("regions out of source order: %q, %q", regions[0].Title(), regions[1].Title())
	}
	if regions[0].StartLine() != 2 || regions[0].EndLine() != 2 {
		t.Errorf("first region span = [%d, %d], want [2, 2]", regions[0].StartLine(), regions[0].EndLine())
	}
	if regions[1].StartLine() != 6 || regions[1].EndLine() != 7 {
		t.Errorf("second region span = [%d, %d], want [6, 7]", regions[1].StartLine(), regions[1].EndLine())
	}
}

func TestParseRegions_UnterminatedBeginDropped(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-begin Paired - ok",
		"a",
		"// @editable-end",
		"// @editable-begin Dangling - never closed",
		"b",
		"c",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 1 {
		t.Fatalf("ParseRegions() returned %d regions, want 1", len(regions))
	}
	if regions[0].Title() != "Paired" {
		t.Errorf("surviving region = %q, want %q", regions[0].Title(), "Paired")
	}
}

func TestParseRegions_NestedBeginDiscardsOpenRegion(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-begin Outer - dropped",
		"a",
		"// @editable-begin Inner - kept",
		"b",
		"// @editable-end",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 1 {
		t.Fatalf("ParseRegions() returned %d regions, want 1", len(regions))
	}
	if regions[0].Title() != "Inner" {
		t.Errorf("surviving region = %q, want %q", regions[0].Title(), "Inner")
	}
	if regions[0].StartLine() != 4 || regions[0].EndLine() != 4 {
		t.Errorf("region span = [%d, %d], want [4, 4]", regions[0].StartLine(), regions[0].EndLine())
	}
}

func TestParseRegions_EmptyRegionDropped(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-begin Empty - nothing inside",
		"// @editable-end",
	}, "\n")

	if regions := ParseRegions(text); len(regions) != 0 {
		t.Errorf("ParseRegions() returned %d regions, want 0", len(regions))
	}
}

func TestParseRegions_StrayEndIgnored(t *testing.T) {
	text := strings.Join([]string{
		"// @editable-end",
		"a",
	}, "\n")

	if regions := ParseRegions(text); len(regions) != 0 {
		t.Errorf("ParseRegions() returned %d regions, want 0", len(regions))
	}
}

func TestParseRegions_IndentedSentinels(t *testing.T) {
	text := strings.Join([]string{
		"module demo {",
		"        // @editable-begin Body - fill in",
		"        abort 0",
		"        // @editable-end",
		"}",
	}, "\n")

	regions := ParseRegions(text)
	if len(regions) != 1 {
		t.Fatalf("ParseRegions() returned %d regions, want 1", len(regions))
	}
	if regions[0].StartLine() != 3 || regions[0].EndLine() != 3 {
		t.Errorf("region span = [%d, %d], want [3, 3]", regions[0].StartLine(), regions[0].EndLine())
	}
}

func TestParseRegions_EmptyText(t *testing.T) {
	if regions := ParseRegions(""); len(regions) != 0 {
		t.Errorf("ParseRegions(\"\") returned %d regions, want 0", len(regions))
	}
}
