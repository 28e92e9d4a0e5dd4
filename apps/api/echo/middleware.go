package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/gradebook/core/gradebook"
)

var contextObjectKey = "object"

// studentMiddleware loads the Student identified by the `:id` path param into the context.
func studentMiddleware(book *gradebook.Book) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			student, err := book.GetStudent(ctx.Param("id"))
			if err != nil {
				return err
			}
			ctx.Set(contextObjectKey, student)
			return next(ctx)
		}
	}
}

// subjectMiddleware loads the Subject identified by the `:code` path param into the context.
func subjectMiddleware(book *gradebook.Book) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			subject, err := book.GetSubject(ctx.Param("code"))
			if err != nil {
				return err
			}
			ctx.Set(contextObjectKey, subject)
			return next(ctx)
		}
	}
}
