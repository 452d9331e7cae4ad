package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/movelabhq/movelab/domain/editor"
	"github.com/movelabhq/movelab/infrastructure/persistence"
	"github.com/movelabhq/movelab/infrastructure/render"
	"github.com/movelabhq/movelab/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkshopService(t *testing.T) *WorkshopService {
	t.Helper()
	url := fmt.Sprintf("sqlite:///%s", filepath.Join(t.TempDir(), "test.db"))
	db, err := database.NewDatabase(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.Migrate(db))

	return NewWorkshopService(
		persistence.NewWorkshopStore(db),
		persistence.NewImageStore(db),
		render.NewRenderer("github"),
		1024,
	)
}

func TestWorkshopService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	w, err := s.CreateWorkshop(ctx, "Counter basics", "Build a counter")
	require.NoError(t, err)

	got, err := s.GetWorkshop(ctx, w.ID())
	require.NoError(t, err)
	assert.Equal(t, "Counter basics", got.Title())
}

func TestWorkshopService_CreateRejectsEmptyTitle(t *testing.T) {
	s := newWorkshopService(t)

	_, err := s.CreateWorkshop(context.Background(), "", "desc")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWorkshopService_GetNotFound(t *testing.T) {
	s := newWorkshopService(t)

	_, err := s.GetWorkshop(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkshopService_StepLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	w, err := s.CreateWorkshop(ctx, "Workshop", "")
	require.NoError(t, err)

	step, err := s.AddStep(ctx, w.ID(), "Step one", "intro", "line1\nline2\nline3")
	require.NoError(t, err)

	title := "Renamed"
	updated, err := s.UpdateStep(ctx, w.ID(), step.ID(), StepUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title())

	second, err := s.AddStep(ctx, w.ID(), "Step two", "", "x")
	require.NoError(t, err)

	require.NoError(t, s.MoveStep(ctx, w.ID(), second.ID(), 0))
	got, err := s.GetWorkshop(ctx, w.ID())
	require.NoError(t, err)
	first, _ := got.StepAt(0)
	assert.Equal(t, "Step two", first.Title())

	require.NoError(t, s.RemoveStep(ctx, w.ID(), step.ID()))
	got, err = s.GetWorkshop(ctx, w.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.StepCount())
}

func TestWorkshopService_UpdateStepSourceClampsAnnotations(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	w, err := s.CreateWorkshop(ctx, "Workshop", "")
	require.NoError(t, err)
	step, err := s.AddStep(ctx, w.ID(), "Step", "", "l1\nl2\nl3\nl4\nl5")
	require.NoError(t, err)

	lines, err := editor.NewLineSet(2, 5)
	require.NoError(t, err)
	_, err = s.UpdateStep(ctx, w.ID(), step.ID(), StepUpdate{
		Annotations:    []editor.Annotation{editor.NewAnnotation(lines, "spans the tail")},
		SetAnnotations: true,
	})
	require.NoError(t, err)

	source := "l1\nl2\nl3"
	updated, err := s.UpdateStep(ctx, w.ID(), step.ID(), StepUpdate{SourceCode: &source})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Revision())
	require.Len(t, updated.Annotations(), 1)
	assert.False(t, updated.Annotations()[0].Lines().Contains(5))
	assert.True(t, updated.Annotations()[0].Lines().Contains(2))
}

func TestWorkshopService_SearchWorkshops(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	_, err := s.CreateWorkshop(ctx, "Counter basics", "state on chain")
	require.NoError(t, err)
	_, err = s.CreateWorkshop(ctx, "NFT minting", "collections")
	require.NoError(t, err)

	found, err := s.SearchWorkshops(ctx, "counter")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Counter basics", found[0].Title())

	all, err := s.SearchWorkshops(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkshopService_ImportExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	w, err := s.CreateWorkshop(ctx, "Exported", "")
	require.NoError(t, err)
	_, err = s.AddStep(ctx, w.ID(), "Step", "", "code")
	require.NoError(t, err)

	data, err := s.ExportWorkshop(ctx, w.ID())
	require.NoError(t, err)

	require.NoError(t, s.DeleteWorkshop(ctx, w.ID()))

	imported, err := s.ImportWorkshop(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, w.ID(), imported.ID())

	got, err := s.GetWorkshop(ctx, w.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.StepCount())
}

func TestWorkshopService_UploadImage(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	img, err := s.UploadImage(ctx, "diagram.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID())

	got, err := s.GetImage(ctx, img.ID())
	require.NoError(t, err)
	assert.Equal(t, "diagram.png", got.Name())

	_, err = s.UploadImage(ctx, "big.png", "image/png", make([]byte, 2048))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.UploadImage(ctx, "notes.txt", "text/plain", []byte{1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWorkshopService_RenderStep(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	w, err := s.CreateWorkshop(ctx, "Workshop", "")
	require.NoError(t, err)
	step, err := s.AddStep(ctx, w.ID(), "Step", "", "module demo::counter {\n}")
	require.NoError(t, err)

	lines, err := editor.NewLineSet(1)
	require.NoError(t, err)
	_, err = s.UpdateStep(ctx, w.ID(), step.ID(), StepUpdate{
		Annotations:    []editor.Annotation{editor.NewAnnotation(lines, "the *module* line")},
		SetAnnotations: true,
	})
	require.NoError(t, err)

	rendered, err := s.RenderStep(ctx, w.ID(), step.ID())
	require.NoError(t, err)
	assert.Contains(t, rendered.SourceHTML, "counter")
	require.Len(t, rendered.Annotations, 1)
	assert.Contains(t, rendered.Annotations[0].HTML, "<em>module</em>")
	assert.Empty(t, rendered.Diff)
}

func TestWorkshopService_RenderStepDiffMode(t *testing.T) {
	ctx := context.Background()
	s := newWorkshopService(t)

	w, err := s.CreateWorkshop(ctx, "Workshop", "")
	require.NoError(t, err)
	_, err = s.AddStep(ctx, w.ID(), "First", "", "module demo::counter {\n}")
	require.NoError(t, err)
	second, err := s.AddStep(ctx, w.ID(), "Second", "", "module demo::counter {\n    struct Counter has key { value: u64 }\n}")
	require.NoError(t, err)

	lines, err := editor.NewLineSet(2)
	require.NoError(t, err)
	diff := true
	_, err = s.UpdateStep(ctx, w.ID(), second.ID(), StepUpdate{
		Annotations:      []editor.Annotation{editor.NewAnnotation(lines, "ignored in diff view")},
		SetAnnotations:   true,
		DiffWithPrevious: &diff,
	})
	require.NoError(t, err)

	rendered, err := s.RenderStep(ctx, w.ID(), second.ID())
	require.NoError(t, err)
	assert.NotEmpty(t, rendered.Diff)
	assert.Empty(t, rendered.Annotations)
}
