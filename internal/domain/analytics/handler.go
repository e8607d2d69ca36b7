package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicpulse/api/internal/platform/auth"
	"github.com/clinicpulse/api/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := api.Group("/analytics", auth.RequireRole("admin", "clinician", "reception"))
	staff.GET("/summary", h.GetSummary)
	staff.GET("/trend", h.GetTrend)
	staff.GET("/body-zones", h.GetBodyZones)
	staff.GET("/referrals", h.GetReferrals)
	staff.GET("/responses", h.ListResponses)
}

func (h *Handler) GetSummary(c echo.Context) error {
	summary, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetTrend(c echo.Context) error {
	points, err := h.svc.Trend(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, points)
}

func (h *Handler) GetBodyZones(c echo.Context) error {
	zones, err := h.svc.BodyZones(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, zones)
}

func (h *Handler) GetReferrals(c echo.Context) error {
	sources, err := h.svc.Referrals(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sources)
}

// ListResponses serves the filterable, sortable response table. Filters
// always apply to the full collection; pagination happens after.
func (h *Handler) ListResponses(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	key := ParseSortKey(c.QueryParam("sort"))

	rows, err := h.svc.Responses(c.Request().Context(), f, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pg := pagination.FromContext(c)
	total := len(rows)
	start := pg.Offset
	if start > total {
		start = total
	}
	end := start + pg.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[start:end], total, pg.Limit, pg.Offset))
}

func filterFromQuery(c echo.Context) (Filter, error) {
	f := Filter{
		Search:        c.QueryParam("search"),
		Band:          ParseBand(c.QueryParam("band")),
		TreatmentType: c.QueryParam("treatment_type"),
	}
	if v := c.QueryParam("has_comments"); v != "" {
		has := v == "true" || v == "1"
		f.HasComments = &has
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return Filter{}, err
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return Filter{}, err
		}
		// Date-only upper bounds are inclusive of the whole day.
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &t
	}
	return f, nil
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
