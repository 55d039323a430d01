package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/teacher"
)

var errTchrNotFoundInCtx = errors.New("teacher object not found in echo.Context")

type teacherApi struct {
	svc        teacher.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerTeacherAPI(g *echo.Group, deps ServerDeps) {
	api := teacherApi{
		svc:        deps.TeacherSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	tg := g.Group("/teachers")

	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/stats", api.stats)

	// detail endpoints
	dg := tg.Group("/:id", ctxTeacherMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/classes", api.addClass)
}

// Handlers

func (api *teacherApi) query(ctx echo.Context) error {
	filter := new(teacher.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []teacher.Teacher{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	teachers, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	ordering.Apply(teachers)
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tchr, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}

	return ctx.JSON(http.StatusCreated, tchr)
}

func (api *teacherApi) stats(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}

	stats := DashboardStats{
		Summary:       teacher.Summarize(teachers),
		TopPerformers: teacher.TopPerformers(teachers, 3),
	}
	// an empty roster reports zero averages, never NaN
	if rating, err := teacher.AverageRating(teachers); err == nil {
		stats.AverageRating = rating
	}
	if attendance, err := teacher.AverageAttendance(teachers); err == nil {
		stats.AverageAttendance = attendance
	}
	if stats.TopPerformers == nil {
		stats.TopPerformers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tchr, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchrNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, tchr)
}

func (api *teacherApi) update(ctx echo.Context) error {
	tchr, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchrNotFoundInCtx, "retrieving object from context")
	}

	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(tchr, api.validate); err != nil {
		return err
	}

	tchr, err := api.svc.Update(tchr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}

	return ctx.JSON(http.StatusOK, tchr)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	tchr, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchrNotFoundInCtx, "retrieving object from context")
	}

	if err := api.svc.Delete(tchr.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) addClass(ctx echo.Context) error {
	tchr, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchrNotFoundInCtx, "retrieving object from context")
	}

	var data AddClassRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddClassRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tchr, err := api.svc.AddClass(tchr.ID, data.Class)
	if err != nil {
		return errors.Wrap(err, "adding class")
	}
	return ctx.JSON(http.StatusOK, tchr)
}

// ctxTeacherMiddleware resolves the :id param and stores the matching
// Teacher under "object"; unknown IDs surface as a 404 notice.
func ctxTeacherMiddleware(svc teacher.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tchr, err := svc.GetByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == teacher.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding teacher by ID")
			}
			ctx.Set("object", tchr)
			return next(ctx)
		}
	}
}

type (
	DashboardStats struct {
		Summary           teacher.Summary   `json:"summary"`
		AverageRating     float64           `json:"average_rating"`
		AverageAttendance float64           `json:"average_attendance"`
		TopPerformers     []teacher.Teacher `json:"top_performers"`
	}

	AddClassRequest struct {
		Class string `json:"class" validate:"required"`
	}
)

func (ar *AddClassRequest) Validate(validate *validator.Validate) error {
	ar.Class = core.CleanString(ar.Class)
	return validate.Struct(ar)
}
