package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/gradebook"
)

type subjectApi struct {
	book *gradebook.Book
}

func registerSubjectAPI(g *echo.Group, book *gradebook.Book) {
	api := subjectApi{book: book}
	obj := subjectMiddleware(book)

	sg := g.Group("/subjects")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	sg.GET("/:code", api.retrieve, obj)
	sg.PUT("/:code", api.update, obj)
	sg.DELETE("/:code", api.destroy)
}

func ctxSubject(ctx echo.Context) (directory.Subject, error) {
	subject, ok := ctx.Get(contextObjectKey).(directory.Subject)
	if !ok {
		return directory.Subject{}, errors.Wrap(errObjNotFoundInCtx, "retrieving subject from context")
	}
	return subject, nil
}

// Handlers

func (api *subjectApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	subjects, err := api.book.ListSubjects(ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data directory.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}

	subject, err := api.book.AddSubject(data)
	if err != nil {
		return errors.Wrap(err, "adding subject")
	}
	return ctx.JSON(http.StatusCreated, subject)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	subject, err := ctxSubject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subject)
}

func (api *subjectApi) update(ctx echo.Context) error {
	subject, err := ctxSubject(ctx)
	if err != nil {
		return err
	}

	var data directory.UpdateSubject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}

	subject, err = api.book.UpdateSubject(subject.Code, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, subject)
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	if err := api.book.RemoveSubject(ctx.Param("code")); err != nil {
		return errors.Wrap(err, "removing subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}
