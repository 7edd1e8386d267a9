package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
)

type dashboardApi struct {
	dash    *student.DashboardController
	metrics *metrics
}

func registerDashboardAPI(g *echo.Group, dash *student.DashboardController, m *metrics) {
	api := dashboardApi{dash: dash, metrics: m}

	dg := g.Group("/dashboard")
	dg.GET("", api.overview)
	dg.POST("/attendance", api.markAttendance)
	dg.PUT("/profile", api.updateProfile)
	dg.GET("/search", api.search)
}

func (api *dashboardApi) overview(ctx echo.Context) error {
	ov, err := api.dash.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *dashboardApi) markAttendance(ctx echo.Context) error {
	var data AttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceRequest")
	}

	if _, err := api.dash.MarkAttendance(ctx.Request().Context(), data.Present); err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	api.metrics.attendanceMarks.WithLabelValues(strconv.FormatBool(data.Present)).Inc()
	return api.overview(ctx)
}

func (api *dashboardApi) updateProfile(ctx echo.Context) error {
	var data student.ProfileUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProfileUpdate")
	}

	if _, err := api.dash.UpdateProfile(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return api.overview(ctx)
}

func (api *dashboardApi) search(ctx echo.Context) error {
	sum, err := api.dash.Search(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return errors.Wrap(err, "searching")
	}
	return ctx.JSON(http.StatusOK, sum)
}
