package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"water-quality-dashboard/internal/adapters/repositories"
	"water-quality-dashboard/internal/adapters/sheets"
	"water-quality-dashboard/internal/api/dto"
	"water-quality-dashboard/internal/domain"
	"water-quality-dashboard/internal/services"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	wb := &domain.Workbook{
		Sheets: []string{"Site A"},
		Readings: map[string][]domain.Reading{
			"Site A": {
				{Sheet: "Site A", Row: 2, Date: &day, Position: domain.Coordinates{Lat: -37.81, Lon: 144.96}, DepthM: 1.2, TemperatureC: 18.4},
				{Sheet: "Site A", Row: 3, Date: &day, Position: domain.Coordinates{Lat: -37.82, Lon: 144.97}, DepthM: 4.8, TemperatureC: 16.1},
			},
		},
	}
	data, err := sheets.EncodeWorkbook(wb)
	if err != nil {
		t.Fatalf("encode workbook: %v", err)
	}

	dashboard := services.NewDashboard(sheets.NewStaticSource(data), sheets.ParseWorkbook, repositories.NewMemoryReadingRepository())
	if _, err := dashboard.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	return NewRouter(dashboard, "Autonomous Drone Water Quality Monitoring", "Survey dashboard")
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body=%q)", err, rec.Body.String())
	}
	return v
}

func TestRouterHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	res := decode[map[string]string](t, rec)
	if res["status"] != "ok" || res["last_loaded"] == "" {
		t.Fatalf("health = %v", res)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouterSheetsAndSliders(t *testing.T) {
	h := newTestRouter(t)

	sheetsRes := decode[dto.ListSheetsResponse](t, do(t, h, http.MethodGet, "/sheets", ""))
	if len(sheetsRes.Options) != 1 || sheetsRes.Options[0].Value != "Site A" {
		t.Fatalf("sheets = %+v", sheetsRes)
	}

	dates := decode[dto.DateSliderResponse](t, do(t, h, http.MethodGet, "/dates?sheet=Site+A", ""))
	if dates.Min != 0 || dates.Max != 0 || len(dates.Marks) != 1 || dates.Marks[0].Label != "15/03" {
		t.Fatalf("dates = %+v", dates)
	}

	depths := decode[dto.DepthSliderResponse](t, do(t, h, http.MethodGet, "/depths?sheet=Site+A&date=0", ""))
	if depths.Min != 1 || depths.Max != 5 || depths.Value != 1 || len(depths.Marks) != 2 {
		t.Fatalf("depths = %+v", depths)
	}
}

func TestRouterFigure(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/figure?sheet=Site+A&date=0&depth=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	fig := decode[dto.FigureResponse](t, rec)
	if fig.Message != "" || len(fig.Points) != 1 || fig.Points[0].Row != 2 {
		t.Fatalf("figure = %+v", fig)
	}
	if fig.MapStyle != "open-street-map" || fig.Zoom < 0 || fig.Zoom > 20 {
		t.Fatalf("figure presentation = %+v", fig)
	}

	// Without a depth the slider's initial value (floor of the shallowest reading) applies.
	fig = decode[dto.FigureResponse](t, do(t, h, http.MethodGet, "/figure?sheet=Site+A", ""))
	if len(fig.Points) != 1 {
		t.Fatalf("default depth figure = %+v", fig)
	}

	fig = decode[dto.FigureResponse](t, do(t, h, http.MethodGet, "/figure?sheet=Site+A&date=0&depth=20", ""))
	if fig.Message != "No data available for depth 20 on the selected date." {
		t.Fatalf("message = %q", fig.Message)
	}
	if fig.Points == nil || len(fig.Points) != 0 {
		t.Fatalf("points = %v, want empty array", fig.Points)
	}
}

func TestRouterFigureErrors(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		target string
		status int
	}{
		{target: "/figure", status: http.StatusBadRequest},
		{target: "/figure?sheet=Nowhere&depth=1", status: http.StatusNotFound},
		{target: "/figure?sheet=Site+A&date=5&depth=1", status: http.StatusBadRequest},
		{target: "/figure?sheet=Site+A&date=x", status: http.StatusBadRequest},
		{target: "/figure?sheet=Site+A&depth=deep", status: http.StatusBadRequest},
	}

	for _, c := range cases {
		rec := do(t, h, http.MethodGet, c.target, "")
		if rec.Code != c.status {
			t.Errorf("GET %s status = %d, want %d", c.target, rec.Code, c.status)
		}
	}
}

func TestRouterRefresh(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodGet, "/refresh", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /refresh status = %d, want 405", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /refresh status = %d, body=%s", rec.Code, rec.Body.String())
	}
	res := decode[dto.RefreshResponse](t, rec)
	if len(res.Options) != 1 || res.LoadedAt.IsZero() {
		t.Fatalf("refresh = %+v", res)
	}
}

func TestRouterViewport(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		name string
		body string
		want dto.ViewportResponse
	}{
		{
			name: "absent arrays",
			body: `{"latitudes": null, "longitudes": null}`,
			want: dto.ViewportResponse{},
		},
		{
			name: "length mismatch",
			body: `{"latitudes": [1, 2, 3], "longitudes": [1, 2]}`,
			want: dto.ViewportResponse{},
		},
		{
			name: "single point",
			body: `{"latitudes": [5.0], "longitudes": [10.0]}`,
			want: dto.ViewportResponse{Zoom: 20, MapZoom: 20, Center: dto.CenterResponse{Lat: 5, Lon: 10}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/viewport", c.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
			}
			if got := decode[dto.ViewportResponse](t, rec); got != c.want {
				t.Fatalf("viewport = %+v, want %+v", got, c.want)
			}
		})
	}

	if rec := do(t, h, http.MethodPost, "/viewport", `{"lat": []}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d, want 400", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/viewport", `{"latitudes": [1e308, 1e308], "longitudes": [1, 2]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("overflowing coordinates status = %d, want 422", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["error"] == "" {
		t.Fatalf("expected error body, got %v", got)
	}
}

func TestRouterIndex(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Autonomous Drone Water Quality Monitoring</title>") {
		t.Fatalf("index missing title")
	}

	if rec := do(t, h, http.MethodGet, "/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET /missing status = %d, want 404", rec.Code)
	}
}
