package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/analytics"
	"github.com/trezcool/gradebook/core/gradebook"
)

var chartWidth = 50

type analyticsApi struct {
	book *gradebook.Book
}

func registerAnalyticsAPI(g *echo.Group, book *gradebook.Book) {
	api := analyticsApi{book: book}

	ag := g.Group("/analytics")
	ag.GET("/subjects", api.subjects)
	ag.GET("/averages", api.averages)
	ag.GET("/chart", api.chart)
}

func (api *analyticsApi) subjects(ctx echo.Context) error {
	bars, err := api.book.ChartBars()
	if err != nil {
		return errors.Wrap(err, "computing subject averages")
	}
	return ctx.JSON(http.StatusOK, bars)
}

func (api *analyticsApi) averages(ctx echo.Context) error {
	avgs, err := api.book.AveragePerSubject()
	if err != nil {
		return errors.Wrap(err, "computing subject averages")
	}
	return ctx.JSON(http.StatusOK, avgs)
}

func (api *analyticsApi) chart(ctx echo.Context) error {
	bars, err := api.book.ChartBars()
	if err != nil {
		return errors.Wrap(err, "computing subject averages")
	}

	var b strings.Builder
	if err = analytics.RenderBarChart(&b, bars, chartWidth); err != nil {
		return err
	}
	return ctx.String(http.StatusOK, b.String())
}
