package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
)

type studentApi struct {
	svc     *student.RegistrationService
	metrics *metrics
}

func registerStudentAPI(g *echo.Group, pending echo.MiddlewareFunc, svc *student.RegistrationService, m *metrics) {
	api := studentApi{svc: svc, metrics: m}

	g.GET("/choices", api.choices)
	g.POST("/students/register", api.register, pending)
}

func (api *studentApi) choices(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ChoicesResponse{
		Genders:     student.Genders,
		Departments: student.Departments,
		Years:       student.Years,
	})
}

func (api *studentApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	rec, err := api.svc.Register(ctx.Request().Context(), data)
	api.metrics.registrations.WithLabelValues(result(err)).Inc()
	if err != nil {
		return errors.Wrap(err, "registering student")
	}
	return ctx.JSON(http.StatusCreated, rec.Profile())
}
