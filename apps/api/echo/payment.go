package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/payment"
	"github.com/walimuhq/walimu/core/teacher"
)

type paymentApi struct {
	svc        teacher.ServiceInterface
	ledger     *payment.Ledger
	processor  *payment.Processor
	validate   *validator.Validate
	translator ut.Translator
}

func registerPaymentAPI(g *echo.Group, deps ServerDeps) {
	api := paymentApi{
		svc:        deps.TeacherSvc,
		ledger:     deps.Ledger,
		processor:  deps.Processor,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	pg := g.Group("/payments")

	pg.GET("", api.history)
	pg.GET("/stats", api.stats)
	pg.GET("/teachers", api.teachersByStatus)
	pg.POST("/process", api.process)
}

// Handlers

func (api *paymentApi) history(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}

	search := core.CleanString(ctx.QueryParam("search"))
	sortKey := core.CleanString(ctx.QueryParam("sort"), true /* lower */)

	events := api.ledger.Events(teachers, search, sortKey)
	if events == nil {
		events = []payment.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *paymentApi) stats(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teacher.SummarizePayroll(teachers))
}

func (api *paymentApi) teachersByStatus(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}

	status := core.CleanString(ctx.QueryParam("status"), true /* lower */)
	teachers = payment.FilterByStatus(teachers, status)
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *paymentApi) process(ctx echo.Context) error {
	var data payment.ProcessRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProcessRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// detached from the request context: control returns to the caller
	// immediately and the paid transition applies after the fixed delay
	if _, err := api.processor.Process(context.Background(), data); err != nil {
		return err
	}

	return ctx.JSON(http.StatusAccepted, payment.Result{
		TeacherID: data.TeacherID,
		State:     payment.StateProcessing,
		Amount:    data.Amount,
	})
}
