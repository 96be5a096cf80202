package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreateProfile(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockBackend) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockBackend) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Profile)
	return p, args.Error(1)
}

func (m *mockBackend) DeleteProfile(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBackend) SaveReading(ctx context.Context, reading *model.MeterReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *mockBackend) ListReadings(ctx context.Context, limit int) ([]model.MeterReading, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]model.MeterReading)
	return r, args.Error(1)
}

func newTestServer(t *testing.T) (*Server, *settings.Store, *mockBackend) {
	t.Helper()
	store := settings.NewStore(nil)
	backend := &mockBackend{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(store, backend, WithLogger(logger))
	t.Cleanup(func() { backend.AssertExpectations(t) })
	return srv, store, backend
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRoot(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestReferenceTables(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler()

	conditions := decode[[]model.LightingCondition](t, do(t, h, http.MethodGet, "/api/conditions", ""))
	assert.Equal(t, model.LightingConditions, conditions)

	filters := decode[[]model.FilterOption](t, do(t, h, http.MethodGet, "/api/filters", ""))
	assert.Equal(t, model.Filters, filters)

	formats := decode[[]model.FilmFormat](t, do(t, h, http.MethodGet, "/api/formats", ""))
	assert.Equal(t, model.FilmFormats, formats)

	iso := decode[[]int](t, do(t, h, http.MethodGet, "/api/iso", ""))
	assert.Equal(t, model.ISOValues, iso)
}

func TestPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodOptions, "/api/settings", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestSettings_GetPatchReset(t *testing.T) {
	srv, store, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, 50.0, got["focalLength"])
	assert.Equal(t, "None", got["selectedFilter"])
	assert.Equal(t, false, got["useRedFilter"])

	rec = do(t, h, http.MethodPatch, "/api/settings", `{"selectedFilter":"Red","iso":400}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[map[string]any](t, rec)
	assert.Equal(t, true, got["useRedFilter"])
	assert.Equal(t, model.FilterRed, store.Snapshot().Filter)
	assert.Equal(t, 400, store.Snapshot().ISO)

	rec = do(t, h, http.MethodDelete, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.DefaultCameraSettings(), store.Snapshot())
}

func TestSettings_PatchErrors(t *testing.T) {
	srv, store, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"iso":`},
		{name: "unknown field", body: `{"shutter":1}`},
		{name: "invalid iso", body: `{"iso":123}`},
		{name: "unknown condition", body: `{"selectedCondition":"Moon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPatch, "/api/settings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
			assert.Equal(t, model.DefaultCameraSettings(), store.Snapshot())
		})
	}
}

func TestExposure(t *testing.T) {
	srv, store, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/exposure", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exposure":null}`, rec.Body.String())

	// sunny-16 baseline: f/16 at ISO 100 is 1/100s
	body := `{"selectedCondition":"Clear/Sunny","focalLength":16,"pinholeSize":1}`
	rec = do(t, h, http.MethodPost, "/api/exposure", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[exposureResponse](t, rec)
	require.NotNil(t, resp.Exposure)
	assert.Equal(t, "1/100s", *resp.Exposure)
	assert.InDelta(t, 0.01, resp.Seconds, 1e-12)
	assert.Equal(t, 16.0, resp.ActualFStop)
	assert.Len(t, resp.Ladder, 7)
	assert.Equal(t, -3, resp.Ladder[0].BracketStops)

	// the store is not touched
	assert.Empty(t, store.Snapshot().Condition)
}

func TestExposure_ZeroFieldsArePresent(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body := `{"selectedCondition":"Clear/Sunny","focalLength":16,"pinholeSize":1,"bracketStops":0,"useReciprocityFailure":false}`
	rec := do(t, srv.Handler(), http.MethodPost, "/api/exposure", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"bracketStops", "reciprocityApplied", "filterStops", "seconds", "condition"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, 0.0, raw["bracketStops"])
	assert.Equal(t, false, raw["reciprocityApplied"])
	assert.Equal(t, 0.0, raw["filterStops"])
}

func TestExposure_UsesStoredSettings(t *testing.T) {
	srv, store, _ := newTestServer(t)
	_, err := store.Update(context.Background(), settings.Patch{
		SelectedCondition: ptr("Overcast"),
		FocalLength:       ptr(8.0),
		PinholeSize:       ptr(1.0),
	})
	require.NoError(t, err)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/exposure", `{"selectedFilter":"Yellow"}`)
	resp := decode[exposureResponse](t, rec)
	require.NotNil(t, resp.Exposure)
	assert.Equal(t, "1/50s", *resp.Exposure)
	assert.Equal(t, 1, resp.FilterStops)
}

func TestViewfinder(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/viewfinder", `{"width":1000,"height":600}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[viewfinderResponse](t, rec)
	assert.True(t, resp.Draw)
	assert.Equal(t, "6x6", resp.FilmFormat.Name)
	assert.Equal(t, model.OrientationLandscape, resp.DeviceOrientation)
	assert.InDelta(t, 540, resp.Rect.Width, 1e-6)
	assert.InDelta(t, 540, resp.Rect.Height, 1e-6)

	rec = do(t, h, http.MethodPost, "/api/viewfinder",
		`{"width":600,"height":1000,"filmFormat":{"name":"35mm"},"filmOrientation":"portrait"}`)
	resp = decode[viewfinderResponse](t, rec)
	assert.Equal(t, model.OrientationPortrait, resp.DeviceOrientation)
	assert.InDelta(t, 24.0/36.0, resp.AspectRatio, 1e-9)
	assert.InDelta(t, 552.5, resp.Rect.Height, 1e-6)

	rec = do(t, h, http.MethodPost, "/api/viewfinder", `{"width":0,"height":600}`)
	resp = decode[viewfinderResponse](t, rec)
	assert.False(t, resp.Draw)

	rec = do(t, h, http.MethodPost, "/api/viewfinder", `{"width":10,"height":10,"filmOrientation":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfiles(t *testing.T) {
	srv, store, backend := newTestServer(t)
	h := srv.Handler()

	saved := model.Profile{
		ID:        "p1",
		Name:      "Beach",
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Settings:  model.DefaultCameraSettings(),
	}
	saved.Settings.Condition = "Snow/Sandy"

	backend.On("ListProfiles", mock.Anything).Return([]model.Profile{saved}, nil).Once()
	rec := do(t, h, http.MethodGet, "/api/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]profileResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Beach", list[0].Name)
	assert.Equal(t, "Snow/Sandy", *list[0].Settings.SelectedCondition)

	backend.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
		return p.Name == "Forest" && p.Settings.ISO == 400
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Profile).ID = "p2"
	}).Return(nil).Once()
	rec = do(t, h, http.MethodPost, "/api/profiles", `{"name":" Forest ","settings":{"iso":400}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "p2", decode[profileResponse](t, rec).ID)

	backend.On("GetProfile", mock.Anything, "p1").Return(&saved, nil).Twice()
	rec = do(t, h, http.MethodGet, "/api/profiles/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/profiles/p1/load", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Snow/Sandy", store.Snapshot().Condition)

	backend.On("DeleteProfile", mock.Anything, "p1").Return(nil).Once()
	rec = do(t, h, http.MethodDelete, "/api/profiles/p1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProfiles_Errors(t *testing.T) {
	srv, _, backend := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/profiles", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/profiles", `{"name":"Bad","settings":{"bracketStops":9}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	backend.On("GetProfile", mock.Anything, "missing").Return(nil, common.ErrNotFound).Once()
	rec = do(t, h, http.MethodGet, "/api/profiles/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	backend.On("DeleteProfile", mock.Anything, "missing").Return(common.ErrNotFound).Once()
	rec = do(t, h, http.MethodDelete, "/api/profiles/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	backend.On("ListProfiles", mock.Anything).Return(nil, assert.AnError).Once()
	rec = do(t, h, http.MethodGet, "/api/profiles", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decode[errorResponse](t, rec).Error)
}

func multipartImage(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func grayPNG(t *testing.T, y uint8) []byte {
	t.Helper()
	return testutil.GrayPNG(t, 40, 30, y)
}

func TestAnalyzeBrightness(t *testing.T) {
	srv, _, backend := newTestServer(t)

	backend.On("SaveReading", mock.Anything, mock.MatchedBy(func(r *model.MeterReading) bool {
		return r.Source == "scene.png" && r.PixelCount == 1200
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.MeterReading).ID = "r1"
	}).Return(nil).Once()

	body, contentType := multipartImage(t, "file", "scene.png", grayPNG(t, 90))
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-brightness", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[brightnessResponse](t, rec)
	assert.Equal(t, "r1", got.ID)
	assert.InDelta(t, 90, got.AvgLuminance, 1e-9)
	assert.InDelta(t, 10.5, got.EV, 1e-9)
	assert.Equal(t, 1200, got.PixelCount)
	assert.Equal(t, "Open Shade/Sunset", got.SuggestedCondition)
}

func TestAnalyzeBrightness_BadInput(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler()

	body, contentType := multipartImage(t, "file", "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-brightness", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, contentType = multipartImage(t, "photo", "scene.png", grayPNG(t, 10))
	req = httptest.NewRequest(http.MethodPost, "/api/analyze-brightness", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing file field", decode[errorResponse](t, rec).Error)
}

func TestListReadings(t *testing.T) {
	srv, _, backend := newTestServer(t)
	h := srv.Handler()

	readings := []model.MeterReading{{ID: "r1", Source: "a.png", EV: 12, AvgLuminance: 120, PixelCount: 4}}
	backend.On("ListReadings", mock.Anything, 50).Return(readings, nil).Once()
	backend.On("ListReadings", mock.Anything, 5).Return(readings, nil).Once()

	rec := do(t, h, http.MethodGet, "/api/readings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]readingResponse](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "a.png", got[0].Source)

	rec = do(t, h, http.MethodGet, "/api/readings?limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/readings?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/shutter", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv.Handler(), http.MethodPut, "/api/settings", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func ptr[T any](v T) *T { return &v }
