package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/gradebook"
)

type gradeApi struct {
	book *gradebook.Book
}

func registerGradeAPI(g *echo.Group, book *gradebook.Book) {
	api := gradeApi{book: book}

	gg := g.Group("/grades")
	gg.PUT("", api.record)
	gg.POST("", api.record)
}

func (api *gradeApi) record(ctx echo.Context) error {
	var data RecordGradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RecordGradeRequest")
	}

	mark, err := grade.ParseMark(data.Mark)
	if err != nil {
		return err
	}
	g, err := api.book.RecordGrade(grade.NewGrade{
		StudentID:   data.StudentID,
		SubjectCode: data.SubjectCode,
		Mark:        mark,
	})
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusOK, g)
}
