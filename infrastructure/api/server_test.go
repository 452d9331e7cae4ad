package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/domain/contract"
	"github.com/movelabhq/movelab/infrastructure/persistence"
	"github.com/movelabhq/movelab/infrastructure/render"
	"github.com/movelabhq/movelab/infrastructure/toolchain"
	"github.com/movelabhq/movelab/internal/config"
	"github.com/movelabhq/movelab/internal/database"
	"github.com/movelabhq/movelab/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNode struct{}

func (stubNode) Modules(ctx context.Context, address contract.Address) ([]contract.Module, error) {
	return []contract.Module{contract.NewModule(address, "counter", nil)}, nil
}

func (stubNode) Resources(ctx context.Context, address contract.Address) ([]contract.Resource, error) {
	return nil, nil
}

func (stubNode) View(ctx context.Context, request contract.ViewRequest) ([]json.RawMessage, error) {
	return []json.RawMessage{json.RawMessage(`"1"`)}, nil
}

type stubCompiler struct{}

func (stubCompiler) Compile(ctx context.Context, pkg toolchain.Package) (toolchain.Result, error) {
	return toolchain.Result{Success: true, Output: "ok"}, nil
}

func (stubCompiler) Publish(ctx context.Context, pkg toolchain.Package) (toolchain.Result, error) {
	return toolchain.Result{Success: true, Output: "published"}, nil
}

func newTestServer(t *testing.T, opts ...config.AppConfigOption) *Server {
	t.Helper()

	url := fmt.Sprintf("sqlite:///%s", filepath.Join(t.TempDir(), "test.db"))
	db, err := database.NewDatabase(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.Migrate(db))

	cfg := config.NewAppConfig().Apply(opts...)
	renderer := render.NewRenderer(cfg.HighlightStyle())
	workshops := service.NewWorkshopService(
		persistence.NewWorkshopStore(db),
		persistence.NewImageStore(db),
		renderer,
		cfg.MaxImageBytes(),
	)

	services := Services{
		Workshops:  workshops,
		Playground: service.NewPlaygroundService(),
		Packages:   service.NewPackageService(stubCompiler{}),
		Explorer:   service.NewExplorerService(stubNode{}),
		Explain:    service.NewExplainService(nil, renderer),
	}

	logger := log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "error")
	return NewServer(cfg, logger, services, "test")
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/version", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"test"`)
}

func TestServer_WorkshopCRUD(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/workshops", map[string]string{
		"title":       "Counter basics",
		"description": "Build a counter",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/workshops/"+created.ID+"/steps", map[string]string{
		"title":       "Step one",
		"source_code": "module demo::counter {\n}",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/workshops/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Step one")

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/workshops/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/workshops/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateWorkshopValidation(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/workshops", map[string]string{"title": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors")
}

func TestServer_PlaygroundGuard(t *testing.T) {
	s := newTestServer(t)
	source := strings.Join([]string{
		"module demo {",
		"// @editable-begin",
		"x",
		"// @editable-end",
		"}",
	}, "\n")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/playground/guard", map[string]any{
		"source":     source,
		"key":        "character",
		"start_line": 3,
		"end_line":   3,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var decision struct {
		Allowed bool `json:"allowed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.True(t, decision.Allowed)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/api/v1/playground/guard", map[string]any{
		"source":     source,
		"key":        "character",
		"start_line": 1,
		"end_line":   1,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.False(t, decision.Allowed)
}

func TestServer_PlaygroundRegions(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/playground/regions", map[string]any{
		"source": "// @editable-begin T - d\nx\n// @editable-end",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start_line":2`)
}

func TestServer_PackageCompile(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/packages/compile", map[string]any{
		"name":    "counter",
		"sources": map[string]string{"counter": "module demo::counter {}"},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestServer_ContractExplore(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/contracts/0x1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "counter")

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/contracts/garbage", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ExplainNotConfigured(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/explain", map[string]string{"code": "module m {}"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_WriteAuth(t *testing.T) {
	s := newTestServer(t, config.WithAPIKeys([]string{"secret"}))
	h := s.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/workshops", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "reads pass without a key")

	rec = doJSON(t, h, http.MethodPost, "/api/v1/workshops", map[string]string{"title": "W"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/workshops", map[string]string{"title": "W"},
		map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/workshops", map[string]string{"title": "W"},
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ImageUploadAndDownload(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="diagram.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var uploaded struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	require.NotEmpty(t, uploaded.ID)

	rec = doJSON(t, h, http.MethodGet, uploaded.URL, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, rec.Body.Bytes())
}
