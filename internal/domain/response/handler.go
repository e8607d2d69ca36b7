package response

import (
	"net/http"

	"github.com/google/uuid"
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

// RegisterRoutes wires the public submission endpoint and the role-gated
// staff endpoints. Submission is deliberately unauthenticated: patients
// fill in the form from a kiosk or a link, without an account.
func (h *Handler) RegisterRoutes(public, api *echo.Group) {
	public.POST("/responses", h.SubmitResponse)

	staff := api.Group("", auth.RequireRole("admin", "clinician", "reception"))
	staff.GET("/responses", h.ListResponses)
	staff.GET("/responses/export", h.ExportResponses)
	staff.GET("/responses/:id", h.GetResponse)
}

func (h *Handler) SubmitResponse(c echo.Context) error {
	var sr SurveyResponse
	if err := c.Bind(&sr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Submit(c.Request().Context(), &sr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sr)
}

func (h *Handler) GetResponse(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sr, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "response not found")
	}
	return c.JSON(http.StatusOK, sr)
}

func (h *Handler) ListResponses(c echo.Context) error {
	pg := pagination.FromContext(c)
	rs, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(rs, total, pg.Limit, pg.Offset))
}

func (h *Handler) ExportResponses(c echo.Context) error {
	rs, err := h.svc.FetchAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	blob, err := ExportCSV(rs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="survey-responses.csv"`)
	return c.Blob(http.StatusOK, "text/csv", blob)
}
