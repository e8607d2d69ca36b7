package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicpulse/api/internal/domain/response"
)

func newTestHandler(rs []*response.SurveyResponse) (*Handler, *echo.Echo) {
	h := NewHandler(NewService(&mockSource{rs: rs}))
	return h, echo.New()
}

func TestHandler_GetSummary(t *testing.T) {
	h, e := newTestHandler([]*response.SurveyResponse{
		makeResp(5, 3, 10, time.Now()),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetSummary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var summary DashboardSummary
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.TotalResponses != 1 {
		t.Errorf("expected 1 response, got %d", summary.TotalResponses)
	}
	if summary.NPS != 100 {
		t.Errorf("expected NPS 100, got %d", summary.NPS)
	}
}

func TestHandler_ListResponses_PaginatesAfterFiltering(t *testing.T) {
	now := time.Now()
	var rs []*response.SurveyResponse
	for i := 0; i < 5; i++ {
		rs = append(rs, makeResp(4, 2, 9, now.Add(time.Duration(i)*time.Minute)))
	}
	h, e := newTestHandler(rs)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/responses?band=promoter&limit=2&offset=4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListResponses(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var page struct {
		Data  []json.RawMessage `json:"data"`
		Total int               `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &page)
	if page.Total != 5 {
		t.Errorf("total should count the filtered set, got %d", page.Total)
	}
	if len(page.Data) != 1 {
		t.Errorf("expected last page with 1 row, got %d", len(page.Data))
	}
}

func TestHandler_ListResponses_BadDateParam(t *testing.T) {
	h, e := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/responses?from=notadate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListResponses(c)
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListResponses_DateOnlyToIsInclusive(t *testing.T) {
	lateInDay := time.Date(2026, 4, 2, 23, 50, 0, 0, time.UTC)
	h, e := newTestHandler([]*response.SurveyResponse{
		makeResp(4, 2, 8, lateInDay),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/responses?to=2026-04-02", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListResponses(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var page struct {
		Total int `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &page)
	if page.Total != 1 {
		t.Errorf("a date-only upper bound should cover the whole day, got total %d", page.Total)
	}
}

func TestHandler_GetBodyZones(t *testing.T) {
	h, e := newTestHandler([]*response.SurveyResponse{
		makeResp(4, 2, 8, time.Now()),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/body-zones", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetBodyZones(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var zones []ZoneCount
	json.Unmarshal(rec.Body.Bytes(), &zones)
	if len(zones) != 1 || zones[0].Zone != "back" {
		t.Errorf("unexpected zones: %+v", zones)
	}
}
