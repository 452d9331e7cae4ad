package editor

import (
	"errors"
	"testing"
)

func TestNewLineSet_Validation(t *testing.T) {
	if _, err := NewLineSet(); !errors.Is(err, ErrEmptyLineSet) {
		t.Errorf("NewLineSet() error = %v, want ErrEmptyLineSet", err)
	}
	if _, err := NewLineSet(0); !errors.Is(err, ErrEmptyLineSet) {
		t.Errorf("NewLineSet(0) error = %v, want ErrEmptyLineSet", err)
	}
	if _, err := NewLineSet(-3); !errors.Is(err, ErrEmptyLineSet) {
		t.Errorf("NewLineSet(-3) error = %v, want ErrEmptyLineSet", err)
	}
}

func TestNewLineSet_DeduplicatesAndSorts(t *testing.T) {
	set, err := NewLineSet(5, 2, 5, 2, 9)
	if err != nil {
		t.Fatalf("NewLineSet: %v", err)
	}

	lines := set.Lines()
	want := []int{2, 5, 9}
	if len(lines) != len(want) {
		t.Fatalf("Lines() length = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Lines()[%d] = %d, want %d", i, lines[i], want[i])
		}
	}
}

func TestLineSet_Contains(t *testing.T) {
	set, _ := NewLineSet(2, 5)

	if !set.Contains(2) || !set.Contains(5) {
		t.Error("Contains should report members")
	}
	if set.Contains(3) || set.Contains(6) {
		t.Error("Contains should reject non-members")
	}
}

func TestLineSet_Clamp(t *testing.T) {
	set, _ := NewLineSet(2, 5, 9)

	clamped, ok := set.Clamp(6)
	if !ok {
		t.Fatal("Clamp(6) dropped the set, want survivors")
	}
	if clamped.Len() != 2 || !clamped.Contains(2) || !clamped.Contains(5) {
		t.Errorf("Clamp(6) = %v, want {2, 5}", clamped.Lines())
	}

	if _, ok := set.Clamp(1); ok {
		t.Error("Clamp(1) kept the set, want dropped")
	}
}

func TestAnnotation_Clamp(t *testing.T) {
	set, _ := NewLineSet(2, 9)
	ann := NewAnnotation(set, "content").WithImage(NewImageRef("img-1", "/images/img-1"))

	clamped, ok := ann.Clamp(5)
	if !ok {
		t.Fatal("Clamp(5) dropped the annotation, want kept")
	}
	if clamped.Lines().Contains(9) {
		t.Error("clamped annotation should not reference line 9")
	}
	if clamped.Content() != "content" {
		t.Error("clamping must not touch content")
	}
	if clamped.Image().ID() != "img-1" {
		t.Error("clamping must not touch the image reference")
	}

	if _, ok := ann.Clamp(1); ok {
		t.Error("Clamp(1) kept the annotation, want dropped")
	}
}

func TestImageRef_IsZero(t *testing.T) {
	if !(ImageRef{}).IsZero() {
		t.Error("zero ImageRef should report IsZero")
	}
	if NewImageRef("id", "url").IsZero() {
		t.Error("populated ImageRef should not report IsZero")
	}
}
