package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
)

type sessionApi struct {
	auth    *student.AuthenticationService
	dash    *student.DashboardController
	metrics *metrics
}

func registerSessionAPI(g *echo.Group, pending echo.MiddlewareFunc, auth *student.AuthenticationService, dash *student.DashboardController, m *metrics) {
	api := sessionApi{auth: auth, dash: dash, metrics: m}

	sg := g.Group("/session")
	sg.POST("/login", api.login, pending)
	sg.POST("/logout", api.logout)
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	_, err := api.auth.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	api.metrics.logins.WithLabelValues(result(err)).Inc()
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}

	ov, err := api.dash.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *sessionApi) logout(ctx echo.Context) error {
	if err := api.dash.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.NoContent(http.StatusNoContent)
}
